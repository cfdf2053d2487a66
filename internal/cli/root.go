package cli

import (
	"github.com/spf13/cobra"

	"github.com/rsoares/grit/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalog  service.CatalogService
	Programs service.ProgramService
	Sessions service.SessionService
	History  service.HistoryService
	Import   service.ImportService

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts are skipped when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "grit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "grit",
		Short:         "Training log and program tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newExerciseCmd(app),
		newProgramCmd(app),
		newSessionCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
