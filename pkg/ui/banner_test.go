package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetNoColor(true)
	SetOutput(&out, &errOut)
	t.Cleanup(func() {
		SetOutput(os.Stdout, os.Stderr)
	})
	return &out, &errOut
}

func TestPrintResult_GoesToStdout(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintResult(ToneSuccess, "Flag claimed successfully!")

	assert.Equal(t, "Flag claimed successfully!\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestStatusHelpers_GoToStderr(t *testing.T) {
	out, errOut := captureOutput(t)

	PrintError("boom")
	PrintWarning("careful")
	PrintSuccess("done")
	PrintInfo("fyi")

	assert.Empty(t, out.String())
	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[X] boom")
	assert.Contains(t, lines[1], "[!] careful")
	assert.Contains(t, lines[2], "[+] done")
	assert.Contains(t, lines[3], "fyi")
}

func TestPrintTarget(t *testing.T) {
	out, _ := captureOutput(t)

	PrintTarget("12", "Vulnerable Web Server")

	assert.Contains(t, out.String(), "12")
	assert.Contains(t, out.String(), "Vulnerable Web Server")
}

func TestUserAgent(t *testing.T) {
	assert.True(t, strings.HasPrefix(UserAgent(), "ectf/"))
	assert.True(t, strings.HasSuffix(UserAgent(), Version))
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	assert.Equal(t, "plain", PassStyle.Render("plain"))
}
