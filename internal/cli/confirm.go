package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// confirm asks the user to approve a destructive action. yes (from --yes)
// skips the prompt; a non-interactive stdin refuses instead of hanging.
func confirm(app *App, yes bool, prompt string) error {
	if yes {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("refusing without confirmation, pass --yes")
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(prompt).Value(&ok),
	)).Run()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("aborted")
	}
	return nil
}
