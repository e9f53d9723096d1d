package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users ordered by name; an empty role lists everyone.
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id string, hash []byte, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Subject, error)
	Update(ctx context.Context, s *domain.Subject) error
	// Delete removes the subject and, through the foreign key, its tasks.
	Delete(ctx context.Context, id string) error
}

// TaskListFilter narrows ListByStudent. The zero value lists open tasks only.
type TaskListFilter struct {
	IncludeCompleted bool
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByStudent returns the student's tasks ordered by due date.
	ListByStudent(ctx context.Context, studentID string, f TaskListFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	UpdatePriorityScores(ctx context.Context, scores map[string]int, at time.Time) error
	// MarkOverdueMissed flips every Pending task due before cutoff to Missed
	// and returns how many rows changed.
	MarkOverdueMissed(ctx context.Context, cutoff, at time.Time) (int64, error)
}

type DailyLogRepo interface {
	Create(ctx context.Context, l *domain.DailyLog) error
	Update(ctx context.Context, l *domain.DailyLog) error
	// GetByStudentAndDate finds the log for the calendar day of date.
	GetByStudentAndDate(ctx context.Context, studentID string, date time.Time) (*domain.DailyLog, error)
	// ListRecentByStudent returns up to limit newest logs, ordered oldest first.
	ListRecentByStudent(ctx context.Context, studentID string, limit int) ([]*domain.DailyLog, error)
}

type MessageRepo interface {
	Create(ctx context.Context, m *domain.Message) error
	// ListForRecipient returns messages to userID, newest first.
	ListForRecipient(ctx context.Context, userID string) ([]*domain.Message, error)
	// ListConversation returns messages exchanged between a and b, newest first.
	ListConversation(ctx context.Context, a, b string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

type CompletionRepo interface {
	Create(ctx context.Context, c *domain.Completion) error
	// ListByStudent returns up to limit completions, newest first. limit <= 0 means all.
	ListByStudent(ctx context.Context, studentID string, limit int) ([]*domain.Completion, error)
	Count(ctx context.Context, studentID string) (int, error)
	CountSince(ctx context.Context, studentID string, since time.Time) (int, error)
}
