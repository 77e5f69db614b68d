package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a terminal.
var ErrNotInteractive = errors.New("input required but stdin is not a terminal")

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ConfirmPrompt asks for user confirmation and returns true if confirmed.
func ConfirmPrompt(message string) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return true, nil
}

// StringPrompt asks for a non-empty string input.
func StringPrompt(message string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	prompt := promptui.Prompt{
		Label: message,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}
	response, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimSpace(response), nil
}

// SelectPrompt asks user to select from a list of options and returns the index.
func SelectPrompt(message string, options []string) (int, error) {
	if !IsInteractive() {
		return -1, ErrNotInteractive
	}
	sel := promptui.Select{
		Label: message,
		Items: options,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return -1, fmt.Errorf("failed to read selection: %w", err)
	}
	return idx, nil
}

// IsCancellation reports whether err is a user interrupt from a prompt.
func IsCancellation(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
