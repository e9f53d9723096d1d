package domain

import (
	"fmt"
	"time"
)

// DefaultEstimatedMin is the duration assumed for a task created without one.
const DefaultEstimatedMin = 60

type Task struct {
	ID          string
	StudentID   string
	SubjectID   string
	Title       string
	Description string
	Type        TaskType
	Weight      float64 // percent of final grade, 0-100
	DueDate     time.Time
	Status      TaskStatus

	// Informational only; plan selection uses a fixed per-task cost.
	EstimatedMin int

	PriorityScore int
	CompletedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the task still counts toward the student's backlog.
func (t *Task) IsOpen() bool {
	return t.Status == TaskPending || t.Status == TaskMissed
}

// IsOverdue reports whether a pending task's due date lies before now.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status == TaskPending && t.DueDate.Before(now)
}

// MarkCompleted transitions a pending or missed task to Completed.
// Completing an already completed task is a no-op.
func (t *Task) MarkCompleted(now time.Time) error {
	switch t.Status {
	case TaskCompleted:
		return nil
	case TaskPending, TaskMissed:
		t.Status = TaskCompleted
		t.CompletedAt = &now
		t.UpdatedAt = now
		return nil
	default:
		return fmt.Errorf("cannot complete task in status %q", t.Status)
	}
}

// MarkMissed transitions a pending task to Missed. Only pending tasks move.
func (t *Task) MarkMissed(now time.Time) error {
	if t.Status != TaskPending {
		return fmt.Errorf("cannot mark task in status %q as missed", t.Status)
	}
	t.Status = TaskMissed
	t.UpdatedAt = now
	return nil
}

// EffectiveEstimatedMin returns EstimatedMin, falling back to the default.
func (t *Task) EffectiveEstimatedMin() int {
	if t.EstimatedMin <= 0 {
		return DefaultEstimatedMin
	}
	return t.EstimatedMin
}
