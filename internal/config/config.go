package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MemoryDatabase selects a private in-memory SQLite database.
	MemoryDatabase = ":memory:"
)

// Config holds the configuration for the medtimer server.
// Environment variables are parsed with the MEDTIMER_ prefix; each key is also
// accepted without the prefix, so DATABASE_URL and LOGGING_LEVEL work as-is.
type Config struct {
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// off | error | warn | info | debug | trace
	LoggingLevel string `envconfig:"LOGGING_LEVEL" default:"info"`

	HTTPAddr string `envconfig:"HTTP_ADDR" default:"127.0.0.1:8080"`

	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" default:"5s"`
	DefaultCount int           `envconfig:"DEFAULT_COUNT" default:"100"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" default:"10"`

	// Extra attempts to reach the database at startup.
	ConnectRetries int `envconfig:"CONNECT_RETRIES" default:"3"`

	HealthInterval     time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`
	HealthProbeTimeout time.Duration `envconfig:"HEALTH_PROBE_TIMEOUT" default:"2s"`
}

// New creates a new Config by parsing environment variables and validating them.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MEDTIMER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks driver, database location and logging level.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}
	if c.DBDriver == DriverSQLite && c.DatabaseURL != MemoryDatabase {
		if _, err := os.Stat(c.DatabaseURL); err != nil {
			return fmt.Errorf("DATABASE_URL points to a non-existent file: %s", c.DatabaseURL)
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if c.DefaultCount <= 0 {
		return fmt.Errorf("DEFAULT_COUNT must be positive, got %d", c.DefaultCount)
	}
	if c.ConnectRetries < 0 {
		return fmt.Errorf("CONNECT_RETRIES must not be negative, got %d", c.ConnectRetries)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive, got %s", c.QueryTimeout)
	}
	return nil
}

// Level parses LoggingLevel into a zerolog level.
func (c *Config) Level() (zerolog.Level, error) {
	switch c.LoggingLevel {
	case "off":
		return zerolog.Disabled, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf(`LOGGING_LEVEL could not be parsed: try setting to one of ["off", "error", "warn", "info", "debug", "trace"]`)
}

// SQLLevel returns the level for SQL statement tracing. Statement logs are
// noisy at info, so that level is demoted to warn.
func (c *Config) SQLLevel() zerolog.Level {
	lvl, err := c.Level()
	if err != nil {
		return zerolog.WarnLevel
	}
	if lvl == zerolog.InfoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		DBDriver:           DriverSQLite,
		DatabaseURL:        MemoryDatabase,
		LoggingLevel:       "debug",
		HTTPAddr:           "127.0.0.1:0",
		QueryTimeout:       2 * time.Second,
		DefaultCount:       100,
		MaxOpenConns:       4,
		HealthInterval:     time.Second,
		HealthProbeTimeout: time.Second,
	}
}
