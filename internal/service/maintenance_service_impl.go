package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/repository"
)

type maintenanceService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewMaintenanceService(tasks repository.TaskRepo, observers ...UseCaseObserver) MaintenanceService {
	return &maintenanceService{tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *maintenanceService) SweepMissed(ctx context.Context, now time.Time) (n int64, err error) {
	startedAt := time.Now()
	cutoff := domain.StartOfDay(now)
	fields := map[string]any{"cutoff": cutoff.Format(time.RFC3339)}
	defer func() {
		fields["marked"] = n
		observe(ctx, s.observer, "sweep-missed", startedAt, fields, err)
	}()

	return s.tasks.MarkOverdueMissed(ctx, cutoff, now)
}
