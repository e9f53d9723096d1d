package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/mail"
	"github.com/alexanderramin/rebound/internal/ratelimit"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/scheduler"
	"github.com/alexanderramin/rebound/internal/service"
	"github.com/alexanderramin/rebound/internal/testutil"
)

type testServer struct {
	srv   *httptest.Server
	users *repository.SQLiteUserRepo
}

func newTestServer(t *testing.T, authLimit int, opts ...func(*Deps)) *testServer {
	t.Helper()
	conn := testutil.NewTestDB(t)
	users := repository.NewSQLiteUserRepo(conn)
	tasks := repository.NewSQLiteTaskRepo(conn)
	logs := repository.NewSQLiteDailyLogRepo(conn)
	messages := repository.NewSQLiteMessageRepo(conn)
	bus := events.NewBus(&events.MemoryPublisher{}, zerolog.Nop())
	tokens := auth.NewManager("router-test-secret", time.Hour, time.Hour)

	deps := Deps{
		Auth: service.NewAuthService(users, tokens, &mail.MemoryMailer{}, bcrypt.MinCost, "http://localhost/reset/"),
		Student: service.NewStudentService(users, repository.NewSQLiteSubjectRepo(conn), tasks, logs, messages,
			repository.NewSQLiteCompletionRepo(conn), testutil.NewTestUoW(conn), bus),
		Teacher: service.NewTeacherService(users, tasks, logs, messages, bus),
		Admin:   service.NewAdminService(users, bcrypt.MinCost),
		Limiter: ratelimit.NewMemoryStore(),
		Limits:  RateLimits{Window: time.Minute, APILimit: 1000, AuthLimit: authLimit},
		CORS:    CORSOptions{AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"}},
		Logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, users: users}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if m, ok := out.(map[string]any); ok {
		return resp.StatusCode, m
	}
	return resp.StatusCode, map[string]any{"items": out}
}

func (ts *testServer) register(t *testing.T, name, email string) string {
	t.Helper()
	status, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["token"].(string)
}

func (ts *testServer) loginAs(t *testing.T, role domain.Role) string {
	t.Helper()
	u := testutil.NewTestUser(string(role), testutil.WithRole(role))
	require.NoError(t, ts.users.Create(context.Background(), u))
	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": u.Email, "password": testutil.TestPassword,
	})
	require.Equal(t, http.StatusOK, status, body)
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 100)
	status, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.register(t, "Ada", "ada@example.com")

	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ADA@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "student", user["role"])

	status, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name": "Ada again", "email": "ada@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestStudentRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t, 100)
	status, body := ts.do(t, http.MethodGet, "/api/student/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "not authorized, no token", body["message"])

	status, _ = ts.do(t, http.MethodGet, "/api/student/dashboard", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDailyLogProducesPlan(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "Grace", "grace@example.com")

	status, subject := ts.do(t, http.MethodPost, "/api/student/subject", token, map[string]any{"name": "Physics"})
	require.Equal(t, http.StatusCreated, status, subject)

	due := time.Now().UTC().Add(48 * time.Hour).Format(time.RFC3339)
	status, task := ts.do(t, http.MethodPost, "/api/student/task", token, map[string]any{
		"subjectId": subject["id"], "title": "Lab report", "dueDate": due, "weightage": 30,
	})
	require.Equal(t, http.StatusCreated, status, task)
	assert.Equal(t, "Pending", task["status"])

	status, body := ts.do(t, http.MethodPost, "/api/student/log", token, map[string]any{
		"stressLevel": 5, "availableTime": 3,
	})
	require.Equal(t, http.StatusCreated, status, body)
	plan := body["recoveryPlan"].(map[string]any)
	assert.Equal(t, scheduler.StrategyBalancedRecovery, plan["strategy"])
	assert.Len(t, plan["recommendedTasks"], 1)

	status, dash := ts.do(t, http.MethodGet, "/api/student/dashboard", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, dash["todayLog"])
	assert.Len(t, dash["tasks"], 1)

	status, done := ts.do(t, http.MethodPut, "/api/student/task/"+task["id"].(string)+"/complete", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Completed", done["status"])

	status, body = ts.do(t, http.MethodDelete, "/api/student/subject/"+subject["id"].(string), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Subject and associated tasks removed", body["message"])
}

func TestDailyLogValidation(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "Linus", "linus@example.com")

	status, body := ts.do(t, http.MethodPost, "/api/student/log", token, map[string]any{
		"stressLevel": 11, "availableTime": 3,
	})
	require.Equal(t, http.StatusBadRequest, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "stressLevel")
}

func TestTeacherRoutesRejectStudents(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.register(t, "Student", "student@example.com")

	status, body := ts.do(t, http.MethodGet, "/api/teacher/students", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "not authorized as a teacher", body["message"])

	teacher := ts.loginAs(t, domain.RoleTeacher)
	status, body = ts.do(t, http.MethodGet, "/api/teacher/students", teacher, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

func TestAdminUserManagement(t *testing.T) {
	ts := newTestServer(t, 100)
	admin := ts.loginAs(t, domain.RoleAdmin)

	status, created := ts.do(t, http.MethodPost, "/api/admin/users", admin, map[string]any{
		"name": "New Teacher", "email": "teach@example.com", "password": "secret123", "role": "teacher",
	})
	require.Equal(t, http.StatusCreated, status, created)
	assert.Equal(t, "teacher", created["role"])

	status, body := ts.do(t, http.MethodGet, "/api/admin/users?role=teacher", admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	status, _ = ts.do(t, http.MethodGet, "/api/admin/users?role=janitor", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodDelete, "/api/admin/users/"+created["id"].(string), admin, nil)
	assert.Equal(t, http.StatusOK, status)

	student := ts.register(t, "Curious", "curious@example.com")
	status, _ = ts.do(t, http.MethodGet, "/api/admin/users", student, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServer(t, 2)
	creds := map[string]any{"email": "nobody@example.com", "password": "whatever"}

	for i := 0; i < 2; i++ {
		status, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, body := ts.do(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "Too many requests from this IP, please try again later.", body["message"])
}

func (ts *testServer) loginFrom(t *testing.T, forwardedFor string) int {
	t.Helper()
	body := bytes.NewBufferString(`{"email":"nobody@example.com","password":"whatever"}`)
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/auth/login", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.Header.Set("X-Real-IP", forwardedFor)
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	ts := newTestServer(t, 2)

	assert.Equal(t, http.StatusUnauthorized, ts.loginFrom(t, "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, ts.loginFrom(t, "203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, ts.loginFrom(t, "203.0.113.3"))
	assert.Equal(t, http.StatusTooManyRequests, ts.loginFrom(t, "203.0.113.4"))
}

func TestAuthRateLimit_TrustProxyKeysOnForwardedAddress(t *testing.T) {
	ts := newTestServer(t, 2, func(d *Deps) { d.TrustProxy = true })

	assert.Equal(t, http.StatusUnauthorized, ts.loginFrom(t, "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, ts.loginFrom(t, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, ts.loginFrom(t, "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, ts.loginFrom(t, "203.0.113.2"))
}

func TestResetPasswordRejectsBadToken(t *testing.T) {
	ts := newTestServer(t, 100)
	status, body := ts.do(t, http.MethodPost, "/api/auth/reset-password/not-a-token", "", map[string]any{
		"newPassword": "another123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired reset token", body["message"])
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t, 100)
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/auth/login", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
