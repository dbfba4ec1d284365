// Package prompt reads values from the user's terminal. Secrets are read
// with echo disabled when stdin is a terminal; piped input is read as
// plain lines so the CLI stays scriptable.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before a non-empty answer.
var ErrNoInput = errors.New("prompt: no input")

// Terminal asks questions on out and reads answers from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal file descriptor, or -1 when input is not a TTY
	fd           int
	readPassword func(fd int) ([]byte, error)
}

// NewTerminal prompts on out and reads from in. Secrets are read without
// echo only if in is a terminal.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	t := NewReader(in, out)
	if fd := int(in.Fd()); term.IsTerminal(fd) {
		t.fd = fd
	}
	return t
}

// NewReader reads answers line by line from r, never touching a terminal.
func NewReader(r io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:           bufio.NewReader(r),
		out:          out,
		fd:           -1,
		readPassword: term.ReadPassword,
	}
}

// Ask prints label and returns the first non-empty line, trimmed.
func (t *Terminal) Ask(label string) (string, error) {
	for {
		fmt.Fprint(t.out, decorate(label))
		line, err := t.in.ReadString('\n')
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
		if err != nil {
			fmt.Fprintln(t.out)
			return "", fmt.Errorf("%w: %v", ErrNoInput, err)
		}
	}
}

// AskSecret is Ask with echo disabled on terminals.
func (t *Terminal) AskSecret(label string) (string, error) {
	if t.fd < 0 {
		return t.Ask(label)
	}
	for {
		fmt.Fprint(t.out, decorate(label))
		b, err := t.readPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoInput, err)
		}
		if v := strings.TrimSpace(string(b)); v != "" {
			return v, nil
		}
	}
}

// decorate ends label with ": " unless it already does.
func decorate(label string) string {
	if strings.HasSuffix(label, ": ") {
		return label
	}
	return strings.TrimRight(label, " :") + ": "
}
