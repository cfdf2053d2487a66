package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsoares/grit/internal/cli/formatter"
)

func newExerciseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercise",
		Aliases: []string{"ex"},
		Short:   "Manage the exercise catalog",
	}

	cmd.AddCommand(
		newExerciseAddCmd(app),
		newExerciseListCmd(app),
		newExerciseShowCmd(app),
		newExerciseRemoveCmd(app),
		newExerciseVariantCmd(app),
		newExerciseImportCmd(app),
	)

	return cmd
}

func newExerciseAddCmd(app *App) *cobra.Command {
	var muscle, description string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an exercise to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := app.Catalog.Add(context.Background(), args[0], muscle, description)
			if err != nil {
				return err
			}
			fmt.Printf("Added exercise %s (#%d, %s)\n", ex.Name, ex.Seq, ex.Muscle)
			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Primary muscle group")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	_ = cmd.MarkFlagRequired("muscle")

	return cmd
}

func newExerciseListCmd(app *App) *cobra.Command {
	var muscle string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog exercises",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := app.Catalog.List(context.Background(), muscle)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No exercises found.")
				return nil
			}
			fmt.Print(formatter.FormatExerciseList(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Filter by primary muscle group")

	return cmd
}

func newExerciseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show an exercise with records and recent history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Catalog.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatExerciseDetail(detail))
			return nil
		},
	}
}

func newExerciseRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove REF",
		Short: "Remove an exercise from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ex, err := app.Catalog.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := confirm(app, yes, fmt.Sprintf("Remove %q and its variants?", ex.Name)); err != nil {
				return err
			}
			if err := app.Catalog.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed exercise %s\n", ex.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newExerciseVariantCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variant",
		Short: "Manage exercise variants",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add EXERCISE NAME",
		Short: "Add a named variant to an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Catalog.AddVariant(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Added variant %s (#%d)\n", v.Name, v.Seq)
			return nil
		},
	})

	return cmd
}

func newExerciseImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import exercises from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Import.ImportExercises(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d exercises\n", summary.Exercises)
			return nil
		},
	}
}
