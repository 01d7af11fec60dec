package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// errNoTerminal is returned by declineCommand when --confirm is set but there
// is nobody to ask.
var errNoTerminal = errors.New("confirmation requires a terminal or ACCESSIBLE=1")

// isAccessibleMode reports whether ACCESSIBLE is set.
func isAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// NewAccessibleForm creates a huh form that switches to plain text prompts
// when ACCESSIBLE is set.
func NewAccessibleForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...)
	if isAccessibleMode() {
		form = form.WithAccessible(true)
	}
	return form
}

// canPrompt reports whether a confirmation prompt can be answered.
func canPrompt() bool {
	if isAccessibleMode() {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// promptRunCommand asks whether a saved command should be executed.
// Aborting the prompt (Ctrl+C) counts as "no".
func promptRunCommand(command string) (bool, error) {
	var confirmed bool

	form := NewAccessibleForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Run this command?").
				Description(command).
				Affirmative("Run").
				Negative("Skip").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return confirmed, nil
}

// declineCommand skips every command. It stands in for promptRunCommand when
// confirmation was requested without a terminal.
func declineCommand(string) (bool, error) {
	return false, errNoTerminal
}
