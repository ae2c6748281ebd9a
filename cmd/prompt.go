package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// promptUser asks for the SAP username on the terminal.
func promptUser(system, client string) (string, error) {
	fmt.Fprintf(os.Stderr, "SAP user for %s/%s: ", system, client)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading username: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads the password with echo disabled. The prompt goes to
// stderr; the value is never echoed or logged.
func promptPassword(user, system string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal available for interactive password prompt (use --password-file)")
	}
	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", user, system)
	passwordBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(passwordBytes), nil
}

// readPasswordFile reads a password from a file, stripping trailing
// newlines (files written by echo/printf usually end with one).
func readPasswordFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return "", fmt.Errorf("password file %s is empty", path)
	}
	return string(data), nil
}
