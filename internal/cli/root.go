package cli

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rebound/internal/httpd"
	"github.com/alexanderramin/rebound/internal/ratelimit"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/service"
)

// App holds everything the commands need. Handler, Server, SweepInterval,
// Limiter and LimitWindow are only read by serve.
type App struct {
	Users       repository.UserRepo
	Student     service.StudentService
	Teacher     service.TeacherService
	Admin       service.AdminService
	Maintenance service.MaintenanceService

	Handler       http.Handler
	Server        httpd.ServerConfig
	SweepInterval time.Duration
	Limiter       ratelimit.Store
	LimitWindow   time.Duration
	Logger        zerolog.Logger

	// IsInteractive reports whether prompts can be shown. Nil means never.
	IsInteractive func() bool
	// PromptPassword asks for a new password for email.
	PromptPassword func(email string) (string, error)
	Now            func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the "rebound" command tree bound to app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rebound",
		Short:         "Student workload and stress recovery planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newPlanCmd(app),
		newRiskCmd(),
		newRosterCmd(app),
		newSweepCmd(app),
		newUserCmd(app),
	)

	return root
}
