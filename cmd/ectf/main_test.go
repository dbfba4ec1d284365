package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/jsonutil"
	"github.com/Rising-Edge-Group/ectf-public/pkg/prompt"
	"github.com/Rising-Edge-Group/ectf-public/pkg/session"
)

// fakePlatform serves just enough of echoCTF.RED for the commands.
func fakePlatform(t *testing.T, notification string) *httptest.Server {
	t.Helper()
	srv, _ := countingPlatform(t, notification)
	return srv
}

// countingPlatform is fakePlatform plus a count of requests received.
func countingPlatform(t *testing.T, notification string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	const head = `<html><head><meta name="csrf-token" content="tok"></head>`
	mux := http.NewServeMux()
	mux.HandleFunc("GET /target/{id}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, head+"</html>")
	})
	mux.HandleFunc("POST /target/{id}/spin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /dashboard", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s<body><script>\n  $.notify({\"message\":\"%s\"});\n</script></body></html>", head, notification)
	})
	mux.HandleFunc("POST /claim", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /targets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<table><tr data-key="5"><td>Alpha10.0.0.5</td></tr><tr data-key="6"><td>Bravo Box10.0.0.6</td></tr></table>`)
	})
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func writeConfig(t *testing.T, instance string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".echoctf.json")
	body := fmt.Sprintf(`{"instance_url": %q, "_identity-red": "cookie"}`, instance)
	require.NoError(t, os.WriteFile(path, []byte(body), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(nil, &out, &errOut)
	a.prompter = prompt.NewReader(strings.NewReader(stdin), &errOut)
	code := a.execute(context.Background(), append([]string{"--no-color"}, args...))
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestSpinCommand(t *testing.T) {
	srv := fakePlatform(t, "")
	cfg := writeConfig(t, srv.URL, 0o600)

	r := runCLI(t, "", "--config", cfg, "spin", "12")
	assert.Equal(t, defaults.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Spinning target with ID: 12")
	assert.Contains(t, r.stderr, "Spin request sent")
}

func TestSpinCommand_BadTargetID(t *testing.T) {
	srv := fakePlatform(t, "")
	cfg := writeConfig(t, srv.URL, 0o600)

	for _, args := range [][]string{
		{"spin", "twelve"},
		{"spin"},
		{"spin", "1", "2"},
	} {
		r := runCLI(t, "", append([]string{"--config", cfg}, args...)...)
		assert.Equal(t, defaults.ExitUserError, r.code, "%v: %s", args, r.stderr)
	}
}

func TestClaimCommand(t *testing.T) {
	tests := []struct {
		notification string
		wantCode     int
		wantLine     string
	}{
		{"Flag [F] claimed for 1,250 points", defaults.ExitSuccess, "Flag claimed successfully!"},
		{"Flag [F] claimed before", defaults.ExitClaimRejected, "(!) This flag has already been claimed."},
		{"Flag [<strong>F</strong>] does not exist!", defaults.ExitClaimRejected, "(!) The specified flag does not exist."},
		{"Welcome!", defaults.ExitUnknownResponse, unknownResponseMessage},
	}

	for _, tt := range tests {
		t.Run(tt.notification, func(t *testing.T) {
			srv := fakePlatform(t, tt.notification)
			cfg := writeConfig(t, srv.URL, 0o600)

			r := runCLI(t, "", "--config", cfg, "claim", "F")
			assert.Equal(t, tt.wantCode, r.code, r.stderr)
			assert.Contains(t, r.stdout, "Attempting to claim the given flag...")
			assert.Contains(t, r.stdout, tt.wantLine)
		})
	}
}

func TestTargetsCommand(t *testing.T) {
	srv := fakePlatform(t, "")
	cfg := writeConfig(t, srv.URL, 0o600)

	r := runCLI(t, "", "--config", cfg, "targets")
	require.Equal(t, defaults.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Alpha")
	assert.Contains(t, r.stdout, "Bravo Box")
	assert.Less(t, strings.Index(r.stdout, "Alpha"), strings.Index(r.stdout, "Bravo Box"))
}

func TestTargetsCommand_JSON(t *testing.T) {
	srv := fakePlatform(t, "")
	cfg := writeConfig(t, srv.URL, 0o600)

	r := runCLI(t, "", "--config", cfg, "targets", "--json")
	require.Equal(t, defaults.ExitSuccess, r.code, r.stderr)

	var got []session.Target
	require.NoError(t, jsonutil.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, []session.Target{{Name: "Alpha", ID: "5"}, {Name: "Bravo Box", ID: "6"}}, got)
}

func TestMissingConfigPrompts(t *testing.T) {
	srv := fakePlatform(t, "Flag [F] claimed before")
	missing := filepath.Join(t.TempDir(), "absent.json")

	r := runCLI(t, srv.URL+"\ncookie\n", "--config", missing, "claim", "F")
	assert.Equal(t, defaults.ExitClaimRejected, r.code, r.stderr)
	assert.Contains(t, r.stderr, "Configuration file not found: "+missing)
	assert.Contains(t, r.stderr, "Proceeding without it.")
	assert.Contains(t, r.stderr, "echoCTF.RED instance URL: ")
	assert.Contains(t, r.stderr, "Identity-RED Cookie: ")
}

func TestMissingConfig_NoInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")
	r := runCLI(t, "", "--config", missing, "spin", "1")
	assert.Equal(t, defaults.ExitUserError, r.code)
}

func TestInsecureConfig(t *testing.T) {
	for _, mode := range []os.FileMode{0o644, 0o640, 0o601} {
		t.Run(mode.String(), func(t *testing.T) {
			srv, hits := countingPlatform(t, "Flag [F] claimed for 10 points")
			cfg := writeConfig(t, srv.URL, mode)

			for _, args := range [][]string{{"spin", "1"}, {"claim", "F"}, {"targets"}} {
				r := runCLI(t, "", append([]string{"--config", cfg}, args...)...)
				assert.Equal(t, defaults.ExitUserError, r.code, args)
				assert.Contains(t, r.stderr, "File permissions must be 600: "+cfg)
			}
			assert.Zero(t, hits.Load(), "no request may reach the platform")
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	_, hits := countingPlatform(t, "")
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	r := runCLI(t, "", "--config", path, "claim", "F")
	assert.Equal(t, defaults.ExitUserError, r.code)
	assert.Contains(t, r.stderr, "Error parsing the configuration file")
	assert.Zero(t, hits.Load())
}

func TestInvalidInstanceURL(t *testing.T) {
	cfg := writeConfig(t, "echoctf.red", 0o600)
	r := runCLI(t, "", "--config", cfg, "targets")
	assert.Equal(t, defaults.ExitUserError, r.code)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	cfg := writeConfig(t, url, 0o600)

	r := runCLI(t, "", "--config", cfg, "--timeout", "2s", "claim", "F")
	assert.Equal(t, defaults.ExitNetworkError, r.code)
	assert.Contains(t, r.stderr, "Could not reach the platform")
}

func TestTokenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>maintenance</body></html>")
	}))
	defer srv.Close()
	cfg := writeConfig(t, srv.URL, 0o600)

	r := runCLI(t, "", "--config", cfg, "spin", "3")
	assert.Equal(t, defaults.ExitInternalError, r.code)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"bogus"},
		{"--no-such-flag"},
		{"claim"},
		{"--timeout", "0s", "--config", "/nonexistent", "spin", "1"},
		{"--proxy", "ftp://proxy", "--config", "/nonexistent", "spin", "1"},
	} {
		r := runCLI(t, "https://echoctf.red\ncookie\n", args...)
		assert.Equal(t, defaults.ExitUserError, r.code, "%v: %s", args, r.stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	r := runCLI(t, "", "version")
	assert.Equal(t, defaults.ExitSuccess, r.code)
	assert.Contains(t, r.stdout, defaults.Version)
	assert.NotContains(t, r.stderr, "Configuration file not found")
}

func TestMetricsFile(t *testing.T) {
	srv := fakePlatform(t, "Flag [F] claimed for 10 points")
	cfg := writeConfig(t, srv.URL, 0o600)
	metricsPath := filepath.Join(t.TempDir(), "ectf.prom")

	r := runCLI(t, "", "--config", cfg, "--metrics-file", metricsPath, "claim", "F")
	require.Equal(t, defaults.ExitSuccess, r.code, r.stderr)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ectf_claims_total{outcome="claimed-for-points"} 1`)
	assert.Contains(t, string(data), "ectf_flags_accepted_total 1")
}

func TestDebugLogging(t *testing.T) {
	srv := fakePlatform(t, "")
	cfg := writeConfig(t, srv.URL, 0o600)

	r := runCLI(t, "", "--config", cfg, "--debug", "spin", "4")
	require.Equal(t, defaults.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, "run_id=")
	assert.Contains(t, r.stderr, "path=/target/4/spin")
}
