package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Mark pending tasks due before today as missed",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Maintenance.SweepMissed(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d overdue task(s) as missed\n", n)
			return nil
		},
	}
}
