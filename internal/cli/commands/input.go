package commands

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword — подменяемая в тестах обёртка над term.ReadPassword.
var readPassword = term.ReadPassword

// passwordFrom берёт пароль из args[i] или спрашивает его без эха.
func passwordFrom(args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	fmt.Fprint(Out, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(Out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
