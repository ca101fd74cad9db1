// Package config loads application configuration from environment
// variables into a single validated Config struct.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Persistence backends for the catalog and cart blobs.
const (
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Persist PersistConfig
	Valkey  ValkeyConfig
	DB      DBConfig
	Limits  LimitsConfig
}

// AppConfig holds server settings.
type AppConfig struct {
	Host     string `envconfig:"APP_HOST" default:"0.0.0.0" validate:"required"`
	Port     string `envconfig:"APP_PORT" default:"8080" validate:"required,numeric"`
	Env      string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production testing"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// CatalogConfig selects the remote catalog source. With neither URL nor
// file set the catalog starts from the persisted cache or the defaults.
type CatalogConfig struct {
	URL     string        `envconfig:"CATALOG_URL" validate:"omitempty,url"`
	File    string        `envconfig:"CATALOG_FILE"`
	Timeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"5s" validate:"gt=0"`
}

// PersistConfig selects where catalog and cart blobs are kept.
type PersistConfig struct {
	Backend string `envconfig:"PERSIST_BACKEND" default:"valkey" validate:"oneof=valkey postgres memory"`
}

// ValkeyConfig is the Valkey connection, used for sessions, rate limits
// and the grid cache whatever the persistence backend.
type ValkeyConfig struct {
	Host     string `envconfig:"VALKEY_HOST" default:"localhost" validate:"required"`
	Port     string `envconfig:"VALKEY_PORT" default:"6379" validate:"numeric"`
	Password string `envconfig:"VALKEY_PASSWORD"`
}

// DBConfig is the PostgreSQL connection, used only with the postgres backend.
type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432" validate:"numeric"`
	User     string `envconfig:"POSTGRES_USER" default:"zebaish"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"changeme"`
	Name     string `envconfig:"POSTGRES_DB" default:"zebaish"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// LimitsConfig bounds how often one client may post checkout and contact forms.
type LimitsConfig struct {
	FormRequests int           `envconfig:"FORM_RATE_LIMIT" default:"20" validate:"gt=0"`
	FormWindow   time.Duration `envconfig:"FORM_RATE_WINDOW" default:"1m" validate:"gt=0"`
}

var validate = validator.New()

// Load reads and validates configuration from the environment. The
// default Postgres password is refused in production when the postgres
// backend is selected.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.IsProd() && cfg.Persist.Backend == BackendPostgres && cfg.DB.Password == "changeme" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
	}
	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		c.DB.User, c.DB.Password, net.JoinHostPort(c.DB.Host, c.DB.Port), c.DB.Name, c.DB.SSLMode,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.App.Host, c.App.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// IsProd returns true if the application is running in production mode.
func (c *Config) IsProd() bool {
	return strings.EqualFold(c.App.Env, "production")
}

// SlogLevel maps LOG_LEVEL to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
