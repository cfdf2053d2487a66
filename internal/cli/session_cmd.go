package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsoares/grit/internal/cli/formatter"
	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/service"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Run and inspect training sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionShowCmd(app),
		newSessionEditCmd(app),
		newSessionSwapCmd(app),
		newSessionAddCmd(app),
		newSessionNoteCmd(app),
		newSessionCancelCmd(app),
		newSessionEndCmd(app),
		newSessionLogCmd(app),
	)

	return cmd
}

// exerciseIndexArg parses the 1-based exercise position argument.
func exerciseIndexArg(arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 {
		return 0, fmt.Errorf("exercise position must be a positive number, got %q", arg)
	}
	return idx, nil
}

func newSessionStartCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "start PROGRAM BLOCK",
		Short: "Start a training session from a program block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Sessions.Start(context.Background(), args[0], args[1], week)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatStartResult(res))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week to pick the block from (multi-week programs)")

	return cmd
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Sessions.Show(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSessionView(view))
			return nil
		},
	}
}

func newSessionEditCmd(app *App) *cobra.Command {
	var weight, note string
	var reps, setIndex int
	var rpe float64

	cmd := &cobra.Command{
		Use:   "edit EXERCISE",
		Short: "Log or correct a set for an exercise of the active session",
		Long: `Log or correct a set. EXERCISE is the exercise's position in the session.
Without --set the next free slot is filled; with --set N that exact set is
rewritten (N may exceed the prescription by one to add an extra set).
--weight takes a number or "bw" for bodyweight work.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := exerciseIndexArg(args[0])
			if err != nil {
				return err
			}
			w, bodyweight, err := service.ParseWeightArg(weight)
			if err != nil {
				return err
			}

			req := contract.EditSetRequest{
				ExerciseIndex: idx,
				Weight:        w,
				Bodyweight:    bodyweight,
				Reps:          reps,
				SetIndex:      setIndex,
				Notes:         note,
			}
			if cmd.Flags().Changed("rpe") {
				req.RPE = &rpe
			}

			res, err := app.Sessions.Edit(context.Background(), req)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatEditResult(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&weight, "weight", "", `Weight lifted, or "bw" for bodyweight`)
	cmd.Flags().IntVar(&reps, "reps", 0, "Reps performed")
	cmd.Flags().IntVar(&setIndex, "set", 0, "Set number to rewrite (default: next free)")
	cmd.Flags().Float64Var(&rpe, "rpe", 0, "Perceived exertion (1-10)")
	cmd.Flags().StringVar(&note, "note", "", "Note on this set")
	_ = cmd.MarkFlagRequired("weight")
	_ = cmd.MarkFlagRequired("reps")

	return cmd
}

func newSessionSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap EXERCISE REPLACEMENT",
		Short: "Replace an exercise of the active session, keeping its sets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := exerciseIndexArg(args[0])
			if err != nil {
				return err
			}
			res, err := app.Sessions.Swap(context.Background(), idx, args[1])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatSwapResult(res))
			return nil
		},
	}
}

func newSessionAddCmd(app *App) *cobra.Command {
	var sets int

	cmd := &cobra.Command{
		Use:   "add EXERCISE",
		Short: "Append an exercise to the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Sessions.AddExercise(context.Background(), args[0], sets)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s at position %d (%d sets)\n", res.Exercise, res.Position, res.PlannedSets)
			return nil
		},
	}

	cmd.Flags().IntVar(&sets, "sets", 0, "Planned set count (default: configured fallback)")

	return cmd
}

func newSessionNoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "note EXERCISE TEXT",
		Short: "Attach a note to an exercise of the active session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := exerciseIndexArg(args[0])
			if err != nil {
				return err
			}
			if err := app.Sessions.Note(context.Background(), idx, args[1]); err != nil {
				return err
			}
			fmt.Println("Noted.")
			return nil
		},
	}
}

func newSessionCancelCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the active session and everything logged in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := confirm(app, yes, "Discard the active session and all logged sets?"); err != nil {
				return err
			}
			if err := app.Sessions.Cancel(context.Background()); err != nil {
				return err
			}
			fmt.Println("Session cancelled.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func newSessionEndCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the active session and evaluate personal records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Sessions.End(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatEndSummary(summary))
			return nil
		},
	}
}

func newSessionLogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "log [DATE]",
		Short: "Show the completed session of a day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if len(args) == 1 {
				parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
				}
				day = parsed
			}
			view, err := app.Sessions.Log(context.Background(), day)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSessionView(view))
			return nil
		},
	}
}
