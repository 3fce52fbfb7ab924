package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devSessionSecret = "dev-only-session-secret"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session   SessionConfig
	Backend   BackendConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Audit     AuditConfig
	Telemetry TelemetryConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL,            default=24h"`
	// JanitorInterval is how often idle sessions are evicted.
	JanitorInterval time.Duration `env:"SESSION_JANITOR_INTERVAL, default=5m"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=0s"`
}

// RedisConfig selects Redis session storage. An empty Addr keeps sessions in
// process memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
	// PoolSize 0 leaves go-redis' default of ten connections per CPU.
	PoolSize int           `env:"REDIS_POOL_SIZE, default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=5s"`
}

// MongoConfig enables the audit trail. An empty URI disables it.
type MongoConfig struct {
	URI       string        `env:"MONGO_URI"`
	Database  string        `env:"MONGO_DB,              default=portal_gate"`
	Retention time.Duration `env:"MONGO_AUDIT_RETENTION, default=720h"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type TelemetryConfig struct {
	ServiceName string `env:"OTEL_SERVICE_NAME,           default=portal-gate"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure    bool   `env:"OTEL_EXPORTER_OTLP_INSECURE, default=false"`
	Sampler     string `env:"OTEL_TRACES_SAMPLER"`
	SamplerArg  string `env:"OTEL_TRACES_SAMPLER_ARG"`
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		if !c.IsDevelopment() {
			return errors.New("SESSION_SECRET is required outside development")
		}
		c.Session.Secret = devSessionSecret
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Session.JanitorInterval <= 0 {
		return errors.New("SESSION_JANITOR_INTERVAL must be positive")
	}
	if c.Backend.URL == "" {
		return errors.New("BACKEND_URL is required")
	}
	return nil
}
