package cli

import "github.com/charmbracelet/huh"

// confirmPrompt asks a yes/no question on the terminal.
func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCharm()).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
