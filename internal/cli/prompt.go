package cli

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/rebound/internal/cli/formatter"
)

const minPasswordLen = 6

// StdinIsTerminal reports whether interactive prompts can be shown.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorOrange).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorOrange)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorOrange)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// PromptPassword asks for a password twice with echo disabled.
func PromptPassword(email string) (string, error) {
	var pw, confirm string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Password for "+email).
				EchoMode(huh.EchoModePassword).
				Value(&pw).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != pw {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", err
	}
	return pw, nil
}

func validatePassword(s string) error {
	if len(s) < minPasswordLen {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}
