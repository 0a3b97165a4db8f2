// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/HasanApplore/IndoSup-sub000/db"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMySQL    = "mysql"
	StorageSQLite   = "sqlite3"
)

// Config holds application configuration.
type Config struct {
	Port     string
	GinMode  string
	LogLevel slog.Level

	Storage  string
	Database DatabaseConfig

	UploadDir      string
	MaxUploadBytes int64

	Admin AdminConfig

	RabbitMQURL   string
	RabbitMQQueue string

	ShutdownTimeout time.Duration
}

// DatabaseConfig holds connection and pool settings for relational storage.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
	SlowQuery       time.Duration
	AutoMigrate     bool
}

// AdminConfig describes the seeded administrator and token settings. An
// empty JWTSecret leaves admin routes unauthenticated.
type AdminConfig struct {
	Email     string
	Password  string
	Name      string
	JWTSecret string
	TokenTTL  time.Duration
}

// Load reads .env if present and then the process environment. A missing
// .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	var errs []error
	p := parser{errs: &errs}

	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		GinMode:  getEnv("GIN_MODE", "release"),
		LogLevel: p.levelVar("LOG_LEVEL", slog.LevelInfo),

		Storage: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            p.intVar("DB_PORT", 0),
			User:            getEnv("DB_USER", ""),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "indosup"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    p.intVar("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    p.intVar("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: p.durationVar("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			QueryTimeout:    p.durationVar("DB_QUERY_TIMEOUT", 5*time.Second),
			SlowQuery:       p.durationVar("DB_SLOW_QUERY", 200*time.Millisecond),
			AutoMigrate:     p.boolVar("AUTO_MIGRATE", true),
		},

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(p.intVar("MAX_UPLOAD_MB", 10)) << 20,

		Admin: AdminConfig{
			Email:     getEnv("ADMIN_EMAIL", "admin@indosup.com"),
			Password:  getEnv("ADMIN_PASSWORD", "admin123"),
			Name:      getEnv("ADMIN_NAME", "IndoSup Admin"),
			JWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
			TokenTTL:  p.durationVar("ADMIN_TOKEN_TTL", 12*time.Hour),
		},

		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue: getEnv("RABBITMQ_QUEUE", "indosup.events"),

		ShutdownTimeout: p.durationVar("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Storage)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres, StorageMySQL:
		if c.Database.User == "" {
			errs = append(errs, fmt.Errorf("config: DB_USER is required for %s storage", c.Storage))
		}
		if c.Database.Name == "" {
			errs = append(errs, fmt.Errorf("config: DB_NAME is required for %s storage", c.Storage))
		}
	case StorageSQLite:
		if c.Database.Name == "" {
			errs = append(errs, errors.New("config: DB_NAME (database file) is required for sqlite3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("config: PORT must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("config: MAX_UPLOAD_MB must be positive"))
	}
	if c.Admin.Email == "" || c.Admin.Password == "" {
		errs = append(errs, errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD are required"))
	}
	return errors.Join(errs...)
}

// Relational reports whether a SQL database backs storage.
func (c *Config) Relational() bool { return c.Storage != StorageMemory }

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

// DriverOptions maps the database settings onto db.DriverOptions for
// db.BuildDSN and db.OpenWithDriver.
func (c *Config) DriverOptions() db.DriverOptions {
	opts := db.DriverOptions{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Database: c.Database.Name,
		SSLMode:  c.Database.SSLMode,
	}
	if c.Storage == StorageSQLite {
		opts.Extra = map[string]string{"_busy_timeout": "5000"}
	}
	return opts
}

func defaultPort(storage string) int {
	switch storage {
	case StoragePostgres:
		return 5432
	case StorageMySQL:
		return 3306
	}
	return 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Environment helpers
// ─────────────────────────────────────────────────────────────────────────────

// getEnv gets an environment variable or returns the default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// parser collects conversion errors so every bad variable is reported at
// once.
type parser struct {
	errs *[]error
}

func (p parser) fail(key, raw string, err error) {
	*p.errs = append(*p.errs, fmt.Errorf("config: %s=%q: %w", key, raw, err))
}

func (p parser) intVar(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return n
}

func (p parser) boolVar(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return b
}

func (p parser) durationVar(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, raw, err)
		return def
	}
	return d
}

func (p parser) levelVar(key string, def slog.Level) slog.Level {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(raw)); err != nil {
		p.fail(key, raw, err)
		return def
	}
	return l
}
