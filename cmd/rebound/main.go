package main

import (
	"context"
	"fmt"
	"net/mail"
	"os"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/rebound/internal/auth"
	"github.com/alexanderramin/rebound/internal/cli"
	"github.com/alexanderramin/rebound/internal/config"
	"github.com/alexanderramin/rebound/internal/db"
	"github.com/alexanderramin/rebound/internal/events"
	"github.com/alexanderramin/rebound/internal/httpd"
	"github.com/alexanderramin/rebound/internal/logger"
	rmail "github.com/alexanderramin/rebound/internal/mail"
	"github.com/alexanderramin/rebound/internal/ratelimit"
	"github.com/alexanderramin/rebound/internal/repository"
	"github.com/alexanderramin/rebound/internal/service"
)

const appName = "Rebound"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	logRepo := repository.NewSQLiteDailyLogRepo(database)
	messageRepo := repository.NewSQLiteMessageRepo(database)
	completionRepo := repository.NewSQLiteCompletionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	bus := events.NewBus(newPublisher(cfg, log), log)
	defer bus.Close()

	limiter, closeLimiter, err := newLimiter(cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	observer := service.NewLogUseCaseObserver(log)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.ResetTTL)

	authSvc := service.NewAuthService(userRepo, tokens, newMailer(cfg, log), cfg.Auth.BcryptCost, cfg.Auth.ResetURL, observer)
	studentSvc := service.NewStudentService(userRepo, subjectRepo, taskRepo, logRepo, messageRepo, completionRepo, uow, bus, observer)
	teacherSvc := service.NewTeacherService(userRepo, taskRepo, logRepo, messageRepo, bus, observer)
	adminSvc := service.NewAdminService(userRepo, cfg.Auth.BcryptCost, observer)

	handler := httpd.NewRouter(httpd.Deps{
		Auth:    authSvc,
		Student: studentSvc,
		Teacher: teacherSvc,
		Admin:   adminSvc,
		Limiter: limiter,
		Limits: httpd.RateLimits{
			Window:    cfg.RateLimit.Window,
			APILimit:  cfg.RateLimit.APILimit,
			AuthLimit: cfg.RateLimit.AuthLimit,
		},
		CORS: httpd.CORSOptions{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		},
		RequestTimeout: cfg.Server.RequestTimeout,
		TrustProxy:     cfg.Server.TrustProxy,
		Logger:         log,
	})

	app := &cli.App{
		Users:       userRepo,
		Student:     studentSvc,
		Teacher:     teacherSvc,
		Admin:       adminSvc,
		Maintenance: service.NewMaintenanceService(taskRepo, observer),

		Handler: handler,
		Server: httpd.ServerConfig{
			Address:         cfg.Server.Address,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		SweepInterval: cfg.Jobs.SweepInterval,
		Limiter:       limiter,
		LimitWindow:   cfg.RateLimit.Window,
		Logger:        log,

		IsInteractive:  cli.StdinIsTerminal,
		PromptPassword: cli.PromptPassword,
	}

	return cli.NewRootCmd(app).Execute()
}

// newPublisher connects to RabbitMQ when configured. A broker that cannot be
// reached at startup is logged and replaced with a no-op publisher.
func newPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if cfg.RabbitMQ.URL == "" {
		return events.NoopPublisher{}
	}
	pub, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, events disabled")
		return events.NoopPublisher{}
	}
	return events.NewGuardedPublisher(pub, events.DefaultBreakerConfig(), log)
}

func newLimiter(cfg *config.Config) (ratelimit.Store, func(), error) {
	if cfg.Redis.URL == "" {
		return ratelimit.NewMemoryStore(), func() {}, nil
	}
	store, err := ratelimit.NewRedisStore(context.Background(), cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func newMailer(cfg *config.Config, log zerolog.Logger) rmail.Mailer {
	from := mail.Address{Name: cfg.Mail.FromName, Address: cfg.Mail.FromAddress}
	if cfg.Mail.Provider == "sendgrid" {
		return rmail.NewSendGridMailer(cfg.Mail.SendGridKey, appName, from)
	}
	return rmail.NewConsoleMailer(appName, from, log)
}
