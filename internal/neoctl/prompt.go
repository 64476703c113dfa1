package neoctl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// denyAll answers no to everything, so a Manager built without a confirmer
// never destroys data unless forced.
type denyAll struct{}

func (denyAll) Confirm(string) (bool, error) { return false, nil }

// LineConfirmer reads a y/N answer from a line of input.
type LineConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c LineConfirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.Out, "%s [y/N] ", question)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PromptPassword reads a password from the terminal without echo.
func PromptPassword(in *os.File, out io.Writer) (string, error) {
	if !IsTerminal(in) {
		return "", ErrPasswordRequired
	}
	fmt.Fprint(out, "Password for neo4j user: ")
	pw, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	if len(pw) == 0 {
		return "", ErrPasswordRequired
	}
	return string(pw), nil
}
