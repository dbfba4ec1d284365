package ui

import (
	"os"

	"golang.org/x/term"
)

// ColorAllowed reports whether colored output should be produced: stdout
// must be a terminal, TERM must not be "dumb" and NO_COLOR must be unset.
func ColorAllowed() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
