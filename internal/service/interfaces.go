package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rebound/internal/contract"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/scheduler"
)

type AuthService interface {
	// Register creates a student account and signs a session token.
	Register(ctx context.Context, req contract.RegisterRequest) (*contract.AuthResponse, error)
	Login(ctx context.Context, req contract.LoginRequest) (*contract.AuthResponse, error)
	// Authenticate resolves a session token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req contract.ProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req contract.ChangePasswordRequest) error
	// RequestPasswordReset mails a reset link when the email is known and
	// succeeds silently otherwise.
	RequestPasswordReset(ctx context.Context, req contract.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req contract.ResetPasswordRequest) error
}

type StudentService interface {
	Dashboard(ctx context.Context, studentID string) (*contract.DashboardResponse, error)
	ReportDailyLog(ctx context.Context, studentID string, req contract.DailyLogRequest) (*contract.DailyLogResponse, error)
	// Plan builds a recovery plan from today's log, or from override when set.
	Plan(ctx context.Context, studentID string, override *scheduler.PlanLog) (*scheduler.RecoveryPlan, error)

	AddTask(ctx context.Context, studentID string, req contract.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, studentID, taskID string, req contract.UpdateTaskRequest) (*domain.Task, error)
	CompleteTask(ctx context.Context, studentID, taskID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, studentID, taskID string) error

	AddSubject(ctx context.Context, studentID string, req contract.SubjectRequest) (*domain.Subject, error)
	UpdateSubject(ctx context.Context, studentID, subjectID string, req contract.UpdateSubjectRequest) (*domain.Subject, error)
	DeleteSubject(ctx context.Context, studentID, subjectID string) error

	Progress(ctx context.Context, studentID string) (*contract.ProgressResponse, error)
	Workload(ctx context.Context, studentID string) (*contract.WorkloadResponse, error)
	Perspective(ctx context.Context, studentID string, req contract.PerspectiveRequest) (*contract.PerspectiveResponse, error)
	Breakdown(ctx context.Context, req contract.BreakdownRequest) (*contract.BreakdownResponse, error)
	Messages(ctx context.Context, studentID string) ([]*domain.Message, error)
}

type TeacherService interface {
	// Roster lists every student with a risk assessment, most at risk first.
	Roster(ctx context.Context) ([]contract.RosterEntry, error)
	SendMessage(ctx context.Context, fromID string, req contract.SendMessageRequest) (*domain.Message, error)
	Conversation(ctx context.Context, teacherID, studentID string) ([]*domain.Message, error)
}

type AdminService interface {
	ListUsers(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CreateUser(ctx context.Context, req contract.CreateUserRequest) (*domain.User, error)
	// EnsureUser creates the user or, when the email exists, updates name,
	// role and password. The bool reports whether a user was created.
	EnsureUser(ctx context.Context, req contract.CreateUserRequest) (*domain.User, bool, error)
	UpdateUser(ctx context.Context, id string, req contract.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
}

type MaintenanceService interface {
	// SweepMissed marks pending tasks due before now's calendar day as missed.
	SweepMissed(ctx context.Context, now time.Time) (int64, error)
}
