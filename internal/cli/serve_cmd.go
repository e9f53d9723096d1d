package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rebound/internal/httpd"
)

type pruner interface {
	Prune()
}

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the missed-task sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.SweepInterval > 0 {
				go every(ctx, app.SweepInterval, app.sweep)
			}
			if p, ok := app.Limiter.(pruner); ok && app.LimitWindow > 0 {
				go every(ctx, app.LimitWindow, func(context.Context) { p.Prune() })
			}

			return httpd.NewServer(app.Server, app.Handler, app.Logger).Run(ctx)
		},
	}
}

func (a *App) sweep(ctx context.Context) {
	n, err := a.Maintenance.SweepMissed(ctx, a.now())
	if err != nil {
		if ctx.Err() == nil {
			a.Logger.Error().Err(err).Msg("missed-task sweep failed")
		}
		return
	}
	a.Logger.Debug().Int64("marked", n).Msg("missed-task sweep")
}

// every runs job once immediately and then every interval until ctx ends.
func every(ctx context.Context, interval time.Duration, job func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
