package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rebound/internal/cli/formatter"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/scheduler"
	"github.com/alexanderramin/rebound/internal/service"
)

func newPlanCmd(app *App) *cobra.Command {
	var email string
	var log scheduler.PlanLog

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show a student's recovery plan",
		Long: "Show a student's recovery plan. Without --stress and --hours the\n" +
			"plan is built from the log the student reported today.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			student, err := lookupStudent(cmd, app, email)
			if err != nil {
				return err
			}

			stressSet, hoursSet := cmd.Flags().Changed("stress"), cmd.Flags().Changed("hours")
			var override *scheduler.PlanLog
			switch {
			case stressSet && hoursSet:
				if log.StressLevel < 1 || log.StressLevel > 10 {
					return fmt.Errorf("--stress must be between 1 and 10")
				}
				if log.AvailableHours < 0 || log.AvailableHours > 24 {
					return fmt.Errorf("--hours must be between 0 and 24")
				}
				override = &log
			case stressSet || hoursSet:
				return fmt.Errorf("--stress and --hours must be given together")
			default:
				dash, err := app.Student.Dashboard(ctx, student.ID)
				if err != nil {
					return err
				}
				if dash.TodayLog == nil {
					return fmt.Errorf("%s: %w", student.Email, service.ErrNoDailyLog)
				}
				log = scheduler.PlanLog{StressLevel: dash.TodayLog.StressLevel, AvailableHours: dash.TodayLog.AvailableHours}
			}

			plan, err := app.Student.Plan(ctx, student.ID, override)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(*plan, log, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "student", "", "Student email")
	cmd.Flags().IntVar(&log.StressLevel, "stress", 0, "Stress level 1-10 (overrides today's log)")
	cmd.Flags().Float64Var(&log.AvailableHours, "hours", 0, "Available hours 0-24 (overrides today's log)")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func lookupStudent(cmd *cobra.Command, app *App, email string) (*domain.User, error) {
	u, err := app.Users.GetByEmail(cmd.Context(), domain.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("no user with email %q", email)
	}
	if err != nil {
		return nil, err
	}
	if !u.IsStudent() {
		return nil, fmt.Errorf("%s is a %s, not a student", u.Email, u.Role)
	}
	return u, nil
}
