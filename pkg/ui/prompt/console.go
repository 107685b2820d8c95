// Package prompt provides the interactive console implementation of
// types.Prompt used to resolve link conflicts.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/happenslol/dotgirl/pkg/errors"
)

// Console implements types.Prompt on an interactive terminal
type Console struct{}

// NewConsole creates a new console prompt
func NewConsole() *Console {
	return &Console{}
}

// Confirm asks a yes/no question, defaulting to no
func (c *Console) Confirm(message string) (bool, error) {
	if err := requireTerminal(); err != nil {
		return false, err
	}

	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(false).
		Show(message)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrEnvironment, "failed to show confirmation prompt")
	}

	return result, nil
}

// Select presents choices and returns the index of the chosen one
func (c *Console) Select(message string, choices []string) (int, error) {
	if err := requireTerminal(); err != nil {
		return 0, err
	}

	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(choices).
		Show(message)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrEnvironment, "failed to show selection prompt")
	}

	for i, choice := range choices {
		if choice == selected {
			return i, nil
		}
	}
	return 0, errors.Newf(errors.ErrEnvironment, "prompt returned unknown choice %q", selected)
}

// requireTerminal refuses interaction when stdin is not a terminal, so a
// conflict in a non-interactive run fails cleanly instead of hanging
func requireTerminal() error {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil
	}
	return errors.New(errors.ErrEnvironment, "interactive prompt required but stdin is not a terminal")
}
