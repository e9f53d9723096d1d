package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. REBOUND_AUTH_JWT_SECRET.
const EnvPrefix = "REBOUND"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Mail      MailConfig      `mapstructure:"mail"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TrustProxy      bool          `mapstructure:"trust_proxy"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	ResetTTL   time.Duration `mapstructure:"reset_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
	// ResetURL is the link mailed for password resets; the token is appended.
	ResetURL string `mapstructure:"reset_url"`
}

// RedisConfig: an empty URL keeps rate-limit counters in process memory.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// RabbitMQConfig: an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type MailConfig struct {
	Provider    string `mapstructure:"provider"` // "sendgrid" or "console"
	SendGridKey string `mapstructure:"sendgrid_key"`
	FromName    string `mapstructure:"from_name"`
	FromAddress string `mapstructure:"from_address"`
}

type RateLimitConfig struct {
	Window    time.Duration `mapstructure:"window"`
	APILimit  int           `mapstructure:"api_limit"`
	AuthLimit int           `mapstructure:"auth_limit"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Pretty  bool   `mapstructure:"pretty"`
	NoColor bool   `mapstructure:"no_color"`
}

type JobsConfig struct {
	// SweepInterval is how often overdue pending tasks are flipped to Missed.
	// Zero disables the background sweep.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads .env (if present), then config.yaml from ./config or the working
// directory (if present), then REBOUND_* environment overrides.
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom is Load with an explicit viper instance and dotenv file.
func LoadFrom(v *viper.Viper, envFile string) (*Config, error) {
	if envFile != "" {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(envFile)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set")
	}
	if c.Auth.TokenTTL <= 0 || c.Auth.ResetTTL <= 0 {
		return errors.New("auth token lifetimes must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("ratelimit.window must be positive")
	}
	switch c.Mail.Provider {
	case "console":
	case "sendgrid":
		if c.Mail.SendGridKey == "" {
			return errors.New("mail.sendgrid_key must be set for the sendgrid provider")
		}
	default:
		return fmt.Errorf("unknown mail.provider %q", c.Mail.Provider)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.request_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.trust_proxy", false)

	v.SetDefault("database.path", "data/rebound.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "720h")
	v.SetDefault("auth.reset_ttl", "1h")
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.reset_url", "http://localhost:5173/reset-password/")

	v.SetDefault("redis.url", "")

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "rebound.events")

	v.SetDefault("mail.provider", "console")
	v.SetDefault("mail.sendgrid_key", "")
	v.SetDefault("mail.from_name", "Rebound")
	v.SetDefault("mail.from_address", "no-reply@rebound.local")

	v.SetDefault("ratelimit.window", "15m")
	v.SetDefault("ratelimit.api_limit", 1000)
	v.SetDefault("ratelimit.auth_limit", 100)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)
	v.SetDefault("logging.no_color", false)

	v.SetDefault("jobs.sweep_interval", "1h")
}
