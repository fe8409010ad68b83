package cli

import (
	"os"

	"golang.org/x/term"
)

// isTerminal and readSecret are replaced in tests.
var (
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	readSecret = func() (string, error) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		return string(b), err
	}
)
