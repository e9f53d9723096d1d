package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/mail"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/testutil"
)

type testEnv struct {
	conn        *sql.DB
	uow         db.UnitOfWork
	users       *repository.SQLiteUserRepo
	subjects    *repository.SQLiteSubjectRepo
	tasks       *repository.SQLiteTaskRepo
	logs        *repository.SQLiteDailyLogRepo
	messages    *repository.SQLiteMessageRepo
	completions *repository.SQLiteCompletionRepo
	pub         *events.MemoryPublisher
	bus         *events.Bus
	mailer      *mail.MemoryMailer
	observer    *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(testutil.NewTestDB(t))
}

// newFileTestEnv backs the env with a file database so goroutines get their
// own pooled connections.
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(testutil.NewFileTestDB(t))
}

func newTestEnvOn(conn *sql.DB) *testEnv {
	pub := &events.MemoryPublisher{}
	return &testEnv{
		conn:        conn,
		uow:         testutil.NewTestUoW(conn),
		users:       repository.NewSQLiteUserRepo(conn),
		subjects:    repository.NewSQLiteSubjectRepo(conn),
		tasks:       repository.NewSQLiteTaskRepo(conn),
		logs:        repository.NewSQLiteDailyLogRepo(conn),
		messages:    repository.NewSQLiteMessageRepo(conn),
		completions: repository.NewSQLiteCompletionRepo(conn),
		pub:         pub,
		bus:         events.NewBus(pub, zerolog.Nop()),
		mailer:      &mail.MemoryMailer{},
		observer:    &recordingObserver{},
	}
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func (e *testEnv) studentService(now time.Time) *studentService {
	return e.studentServiceWithUoW(now, e.uow)
}

func (e *testEnv) studentServiceWithUoW(now time.Time, uow db.UnitOfWork) *studentService {
	svc := NewStudentService(e.users, e.subjects, e.tasks, e.logs, e.messages, e.completions, uow, e.bus, e.observer).(*studentService)
	svc.now = fixedClock(now)
	return svc
}

func (e *testEnv) teacherService(now time.Time) *teacherService {
	svc := NewTeacherService(e.users, e.tasks, e.logs, e.messages, e.bus, e.observer).(*teacherService)
	svc.now = fixedClock(now)
	return svc
}

func (e *testEnv) authService() AuthService {
	tokens := auth.NewManager("test-secret", time.Hour, time.Hour)
	return NewAuthService(e.users, tokens, e.mailer, bcrypt.MinCost, "http://localhost/reset/", e.observer)
}

func (e *testEnv) adminService() AdminService {
	return NewAdminService(e.users, bcrypt.MinCost, e.observer)
}

func (e *testEnv) createUser(t *testing.T, name string, opts ...testutil.UserOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name, opts...)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) createSubject(t *testing.T, studentID, name string) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(studentID, name)
	require.NoError(t, e.subjects.Create(context.Background(), s))
	return s
}

func (e *testEnv) createTask(t *testing.T, studentID, subjectID, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(studentID, subjectID, title, opts...)
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) last(name string) (UseCaseEvent, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.events) - 1; i >= 0; i-- {
		if o.events[i].Name == name {
			return o.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

func hours(h float64) *float64 { return &h }
