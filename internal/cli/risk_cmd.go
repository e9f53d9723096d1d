package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/rebound/internal/cli/formatter"
	"github.com/alexanderramin/rebound/internal/scheduler"
)

func newRiskCmd() *cobra.Command {
	var in scheduler.RiskInput

	cmd := &cobra.Command{
		Use:     "risk",
		Short:   "Classify a student's risk from raw indicators",
		Example: "  rebound risk --history 4,5,9 --missed 6 --overdue 2 --backlog 8",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range in.StressHistory {
				if s < 1 || s > 10 {
					return fmt.Errorf("stress history values must be between 1 and 10, got %d", s)
				}
			}
			level := scheduler.AssessRisk(in)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", formatter.RiskIndicator(level),
				formatter.Dim(fmt.Sprintf("stress %d, missed %d, overdue %d, backlog %dd",
					in.CurrentStress(), in.MissedTasksCount, in.OverdueTasksCount, in.BacklogDepthDays)))
			return nil
		},
	}
	bindRiskFlags(cmd.Flags(), &in)

	return cmd
}

func bindRiskFlags(fs *pflag.FlagSet, in *scheduler.RiskInput) {
	fs.IntSliceVar(&in.StressHistory, "history", nil, "Stress levels, oldest first")
	fs.IntVar(&in.MissedTasksCount, "missed", 0, "Missed task count")
	fs.IntVar(&in.OverdueTasksCount, "overdue", 0, "Overdue task count")
	fs.IntVar(&in.BacklogDepthDays, "backlog", 0, "Backlog depth in days")
}
