package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsoares/grit/internal/cli/formatter"
)

func newProgramCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "program",
		Aliases: []string{"prog"},
		Short:   "Manage training programs",
	}

	cmd.AddCommand(
		newProgramListCmd(app),
		newProgramShowCmd(app),
		newProgramRemoveCmd(app),
		newProgramImportCmd(app),
	)

	return cmd
}

func newProgramListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Programs.List(context.Background())
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No programs found. Import one with: grit program import FILE")
				return nil
			}
			fmt.Print(formatter.FormatProgramList(rows))
			return nil
		},
	}
}

func newProgramShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show a program's blocks and prescriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Programs.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProgramDetail(detail))
			return nil
		},
	}
}

func newProgramRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove REF",
		Short: "Remove a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			detail, err := app.Programs.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Remove program %q and its blocks?", detail.Name)); err != nil {
				return err
			}
			if err := app.Programs.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed program %s\n", detail.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newProgramImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import programs from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Import.ImportPrograms(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d programs (%d blocks)\n", summary.Programs, summary.Blocks)
			return nil
		},
	}
}
