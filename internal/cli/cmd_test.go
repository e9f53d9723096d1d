package cli

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/scheduler"
	"github.com/alexanderramin/rebound/internal/service"
	"github.com/alexanderramin/rebound/internal/testutil"
)

type testRepos struct {
	users    *repository.SQLiteUserRepo
	subjects *repository.SQLiteSubjectRepo
	tasks    *repository.SQLiteTaskRepo
	logs     *repository.SQLiteDailyLogRepo
}

// testApp wires a full App backed by an in-memory DB.
func testApp(t *testing.T) (*App, *testRepos) {
	t.Helper()
	conn := testutil.NewTestDB(t)
	r := &testRepos{
		users:    repository.NewSQLiteUserRepo(conn),
		subjects: repository.NewSQLiteSubjectRepo(conn),
		tasks:    repository.NewSQLiteTaskRepo(conn),
		logs:     repository.NewSQLiteDailyLogRepo(conn),
	}
	messages := repository.NewSQLiteMessageRepo(conn)
	bus := events.NewBus(&events.MemoryPublisher{}, zerolog.Nop())

	app := &App{
		Users: r.users,
		Student: service.NewStudentService(r.users, r.subjects, r.tasks, r.logs, messages,
			repository.NewSQLiteCompletionRepo(conn), testutil.NewTestUoW(conn), bus),
		Teacher:     service.NewTeacherService(r.users, r.tasks, r.logs, messages, bus),
		Admin:       service.NewAdminService(r.users, bcrypt.MinCost),
		Maintenance: service.NewMaintenanceService(r.tasks),
		Logger:      zerolog.Nop(),
	}
	return app, r
}

func seedStudent(t *testing.T, r *testRepos) *domain.User {
	t.Helper()
	ctx := context.Background()
	u := testutil.NewTestUser("Ada", testutil.WithEmail("ada@example.com"))
	require.NoError(t, r.users.Create(ctx, u))
	sub := testutil.NewTestSubject(u.ID, "Physics")
	require.NoError(t, r.subjects.Create(ctx, sub))
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(u.ID, sub.ID, "Lab report",
		testutil.WithDueDate(time.Now().UTC().Add(48*time.Hour)), testutil.WithWeight(30))))
	return u
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestRiskCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "risk", "--history", "4,5,9", "--missed", "6", "--overdue", "2", "--backlog", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "CRITICAL")
	assert.Contains(t, out, "stress 9")

	out, err = executeCmd(t, app, "risk")
	require.NoError(t, err)
	assert.Contains(t, out, "LOW")

	_, err = executeCmd(t, app, "risk", "--history", "4,12")
	assert.Error(t, err)
}

func TestPlanCmd_WithOverride(t *testing.T) {
	app, r := testApp(t)
	seedStudent(t, r)

	out, err := executeCmd(t, app, "plan", "--student", "ADA@example.com", "--stress", "2", "--hours", "4")
	require.NoError(t, err)
	assert.Contains(t, out, scheduler.StrategyFullAcceleration)
	assert.Contains(t, out, "Lab report")
	assert.Contains(t, out, "1 of 1 tasks planned")
}

func TestPlanCmd_UsesTodaysLog(t *testing.T) {
	app, r := testApp(t)
	u := seedStudent(t, r)

	_, err := executeCmd(t, app, "plan", "--student", u.Email)
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrNoDailyLog))

	today := domain.StartOfDay(time.Now().UTC())
	require.NoError(t, r.logs.Create(context.Background(), testutil.NewTestDailyLog(u.ID, today, 9, 3)))

	out, err := executeCmd(t, app, "plan", "--student", u.Email)
	require.NoError(t, err)
	assert.Contains(t, out, scheduler.StrategyEmergencyHalt)
	assert.Contains(t, out, "9/10")
}

func TestPlanCmd_BadInput(t *testing.T) {
	app, r := testApp(t)
	seedStudent(t, r)

	_, err := executeCmd(t, app, "plan", "--student", "nobody@example.com", "--stress", "2", "--hours", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user")

	_, err = executeCmd(t, app, "plan", "--student", "ada@example.com", "--stress", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "together")

	_, err = executeCmd(t, app, "plan", "--student", "ada@example.com", "--stress", "11", "--hours", "2")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "plan")
	assert.Error(t, err)
}

func TestRosterCmd(t *testing.T) {
	app, r := testApp(t)
	seedStudent(t, r)

	out, err := executeCmd(t, app, "roster")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "ada@example.com")
}

func TestSweepCmd(t *testing.T) {
	app, r := testApp(t)
	u := seedStudent(t, r)
	ctx := context.Background()
	subjects, err := r.subjects.ListByStudent(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, r.tasks.Create(ctx, testutil.NewTestTask(u.ID, subjects[0].ID, "Old essay",
		testutil.WithDueDate(time.Now().UTC().AddDate(0, 0, -3)))))

	out, err := executeCmd(t, app, "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked 1 overdue task(s) as missed")

	out, err = executeCmd(t, app, "sweep")
	require.NoError(t, err)
	assert.Contains(t, out, "Marked 0")
}

func TestUserAddCmd(t *testing.T) {
	app, r := testApp(t)

	out, err := executeCmd(t, app, "user", "add", "--email", "t@example.com", "--name", "Teach", "--role", "teacher", "--password", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Created teacher Teach")

	out, err = executeCmd(t, app, "user", "add", "--email", "t@example.com", "--name", "Teach Two", "--role", "admin", "--password", "secret456")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated admin Teach Two")

	u, err := r.users.GetByEmail(context.Background(), "t@example.com")
	require.NoError(t, err)
	assert.NoError(t, u.CheckPassword("secret456"))
}

func TestUserAddCmd_PasswordPrompt(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "user", "add", "--email", "s@example.com", "--name", "Stu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password is required")

	var prompted string
	app.IsInteractive = func() bool { return true }
	app.PromptPassword = func(email string) (string, error) {
		prompted = email
		return "prompted-pw", nil
	}
	out, err := executeCmd(t, app, "user", "add", "--email", "s@example.com", "--name", "Stu")
	require.NoError(t, err)
	assert.Equal(t, "s@example.com", prompted)
	assert.Contains(t, out, "Created student Stu")
}

type countingSweeper struct {
	calls atomic.Int32
}

func (c *countingSweeper) SweepMissed(context.Context, time.Time) (int64, error) {
	c.calls.Add(1)
	return 0, nil
}

func TestEvery_RepeatsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	app := &App{Maintenance: sweeper, Logger: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		every(ctx, 5*time.Millisecond, app.sweep)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job loop did not stop")
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, validatePassword("short"))
	assert.NoError(t, validatePassword("long-enough"))
}
