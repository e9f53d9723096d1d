package httpd

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/alexanderramin/rebound/internal/ratelimit"
	"github.com/alexanderramin/rebound/internal/service"
)

type RateLimits struct {
	Window    time.Duration
	APILimit  int
	AuthLimit int
}

type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type Deps struct {
	Auth    service.AuthService
	Student service.StudentService
	Teacher service.TeacherService
	Admin   service.AdminService

	Limiter        ratelimit.Store
	Limits         RateLimits
	CORS           CORSOptions
	RequestTimeout time.Duration
	// TrustProxy takes the client address from X-Forwarded-For and X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxy bool
	Logger     zerolog.Logger
}

type Handler struct {
	auth    service.AuthService
	student service.StudentService
	teacher service.TeacherService
	admin   service.AdminService
	logger  zerolog.Logger
}

// NewRouter assembles the middleware chain and every route.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		auth:    d.Auth,
		student: d.Student,
		teacher: d.Teacher,
		admin:   d.Admin,
		logger:  d.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if d.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORS.AllowedOrigins,
		AllowedMethods:   d.CORS.AllowedMethods,
		AllowedHeaders:   d.CORS.AllowedHeaders,
		AllowCredentials: d.CORS.AllowCredentials,
		MaxAge:           d.CORS.MaxAge,
	}))
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(RateLimit(d.Limiter, "api", d.Limits.APILimit, d.Limits.Window, d.Logger))

		api.Route("/auth", func(r chi.Router) {
			r.Use(RateLimit(d.Limiter, "auth", d.Limits.AuthLimit, d.Limits.Window, d.Logger))
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/forgot-password", h.ForgotPassword)
			r.Post("/reset-password/{token}", h.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(Authenticate(d.Auth, d.Logger))
				r.Put("/profile", h.UpdateProfile)
				r.Put("/change-password", h.ChangePassword)
			})
		})

		api.Route("/student", func(r chi.Router) {
			r.Use(Authenticate(d.Auth, d.Logger))
			r.Get("/dashboard", h.Dashboard)
			r.Get("/progress", h.Progress)
			r.Get("/workload", h.Workload)
			r.Get("/messages", h.StudentMessages)
			r.Post("/log", h.ReportDailyLog)
			r.Post("/perspective", h.Perspective)
			r.Post("/task/breakdown", h.Breakdown)
			r.Post("/task", h.AddTask)
			r.Put("/task/{id}", h.UpdateTask)
			r.Put("/task/{id}/complete", h.CompleteTask)
			r.Delete("/task/{id}", h.DeleteTask)
			r.Post("/subject", h.AddSubject)
			r.Put("/subject/{id}", h.UpdateSubject)
			r.Delete("/subject/{id}", h.DeleteSubject)
		})

		api.Route("/teacher", func(r chi.Router) {
			r.Use(Authenticate(d.Auth, d.Logger))
			r.Use(RequireRole((*domain.User).IsTeacher, "a teacher"))
			r.Get("/students", h.Roster)
			r.Post("/message", h.SendMessage)
			r.Get("/messages/{studentId}", h.Conversation)
		})

		api.Route("/admin", func(r chi.Router) {
			r.Use(Authenticate(d.Auth, d.Logger))
			r.Use(RequireRole((*domain.User).IsAdmin, "an admin"))
			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)
		})
	})

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
