package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rebound/internal/cli/formatter"
)

func newRosterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "List every student with a risk assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Teacher.Roster(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRoster(entries))
			return nil
		},
	}
}
