package utils

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/keycase-dev/keycase/internal/vault"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadConfirmedPassphrase prompts twice and requires both entries to
// match. The confirmation copy is wiped before returning. Passphrase
// bytes are taken verbatim, so trailing whitespace matters.
func ReadConfirmedPassphrase(prompt string) ([]byte, error) {
	first, err := ReadPassphrase(prompt)
	if err != nil {
		return nil, err
	}
	second, err := ReadPassphrase("Confirm passphrase: ")
	if err != nil {
		vault.Zero(first)
		return nil, err
	}

	match := bytes.Equal(first, second)
	vault.Zero(second)
	if !match {
		vault.Zero(first)
		return nil, fmt.Errorf("passphrases do not match")
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("passphrase must not be empty")
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
