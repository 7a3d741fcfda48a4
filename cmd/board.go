package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nibzard/task-cli/internal/todo"
	"github.com/nibzard/task-cli/internal/ui"
)

func newBoardCommand(a *app) *cobra.Command {
	var (
		interval time.Duration
		noWatch  bool
	)

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show a live, read-only task board",
		Long: `Board opens a full-screen view of the task store.

The view reloads when the tasks file changes and on a periodic tick.
Press 1, 2, or 3 to filter by todo, in-progress, or done, 0 to clear the
filter, r to refresh, h for help, and q to quit. Requires a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateInterval(interval); err != nil {
				return err
			}
			a.logger.Debug("starting board", "interval", interval, "watch", !noWatch)
			return ui.RunBoard(cmd.Context(), a.svc,
				ui.WithRefreshInterval(interval),
				ui.WithWatch(!noWatch),
			)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Periodic refresh interval")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable reloading on file changes")

	return cmd
}

func validateInterval(d time.Duration) error {
	if d <= 0 {
		return &todo.ValidationError{
			Path: "interval",
			Err:  fmt.Errorf("must be positive, got %s", d),
		}
	}
	return nil
}
