package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
)

// Version can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/Rising-Edge-Group/ectf-public/pkg/ui.Version=1.0.0"
var Version = defaults.Version

// UserAgent returns the User-Agent string sent to the platform
func UserAgent() string {
	return fmt.Sprintf("%s/%s", defaults.ToolName, Version)
}

// Global UI state
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	uiMu   sync.RWMutex
)

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// SetOutput redirects result (out) and status (errOut) output.
// Nil writers leave the current destination in place.
func SetOutput(out, errOut io.Writer) {
	uiMu.Lock()
	defer uiMu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func writers() (io.Writer, io.Writer) {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return stdout, stderr
}

// PrintMiniBanner prints the one-line version banner
func PrintMiniBanner() {
	out, _ := writers()
	fmt.Fprintf(out, "%s %s\n", BannerStyle.Render(defaults.ToolName), VersionStyle.Render("v"+Version))
}

// PrintResult prints a command result line to stdout
func PrintResult(t Tone, message string) {
	out, _ := writers()
	fmt.Fprintln(out, ToneStyle(t).Render(message))
}

// PrintTarget prints one row of the targets listing to stdout
func PrintTarget(id, name string) {
	out, _ := writers()
	fmt.Fprintln(out, IDStyle.Render(id)+" "+NameStyle.Render(name))
}

// PrintStatus prints a plain progress line to stdout
func PrintStatus(message string) {
	out, _ := writers()
	fmt.Fprintln(out, message)
}

// PrintHelp prints contextual help (to stderr)
func PrintHelp(text string) {
	_, errOut := writers()
	fmt.Fprintln(errOut, HelpStyle.Render("  [i] "+text))
}

// PrintSuccess prints a success message (to stderr)
func PrintSuccess(message string) {
	_, errOut := writers()
	fmt.Fprintln(errOut, PassStyle.Render("  [+] "+message))
}

// PrintError prints an error message (to stderr)
func PrintError(message string) {
	_, errOut := writers()
	fmt.Fprintln(errOut, FailStyle.Render("  [X] "+message))
}

// PrintWarning prints a warning message (to stderr)
func PrintWarning(message string) {
	_, errOut := writers()
	fmt.Fprintln(errOut, WarnStyle.Render("  [!] "+message))
}

// PrintInfo prints an info message (to stderr)
func PrintInfo(message string) {
	_, errOut := writers()
	fmt.Fprintf(errOut, "  %s %s\n", InfoStyle.Render("*"), message)
}
