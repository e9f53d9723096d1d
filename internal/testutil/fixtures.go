package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the password every fixture user is created with.
const TestPassword = "password"

var emailCounter atomic.Int64

// Fixed reference time shared by fixtures that do not set their own dates.
var FixtureNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) { u.Role = r }
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) { u.Email = email }
}

func WithAssignedTeacher(id string) UserOption {
	return func(u *domain.User) { u.AssignedTeacherID = id }
}

// NewTestUser builds a student with a unique email and TestPassword hashed at
// the minimum bcrypt cost.
func NewTestUser(name string, opts ...UserOption) *domain.User {
	n := emailCounter.Add(1)
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     fmt.Sprintf("user%d@rebound.test", n),
		Role:      domain.RoleStudent,
		CreatedAt: FixtureNow,
		UpdatedAt: FixtureNow,
	}
	if err := u.SetPassword(TestPassword, bcrypt.MinCost); err != nil {
		panic(err)
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Subject options
type SubjectOption func(*domain.Subject)

func WithGrade(g float64) SubjectOption {
	return func(s *domain.Subject) { s.CurrentGrade = g }
}

func NewTestSubject(studentID, name string, opts ...SubjectOption) *domain.Subject {
	s := &domain.Subject{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Name:      name,
		CreatedAt: FixtureNow,
		UpdatedAt: FixtureNow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = d }
}

func WithWeight(w float64) TaskOption {
	return func(t *domain.Task) { t.Weight = w }
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) { t.Type = tt }
}

func WithEstimatedMin(m int) TaskOption {
	return func(t *domain.Task) { t.EstimatedMin = m }
}

// NewTestTask builds a pending assignment due a week after FixtureNow.
func NewTestTask(studentID, subjectID, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		SubjectID:    subjectID,
		Title:        title,
		Type:         domain.TypeAssignment,
		Weight:       10,
		DueDate:      FixtureNow.AddDate(0, 0, 7),
		Status:       domain.TaskPending,
		EstimatedMin: domain.DefaultEstimatedMin,
		CreatedAt:    FixtureNow,
		UpdatedAt:    FixtureNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestDailyLog(studentID string, date time.Time, stress int, hours float64) *domain.DailyLog {
	return &domain.DailyLog{
		ID:             uuid.New().String(),
		StudentID:      studentID,
		Date:           domain.StartOfDay(date),
		StressLevel:    stress,
		AvailableHours: hours,
		CreatedAt:      date,
		UpdatedAt:      date,
	}
}
