// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Validator ValidatorConfig
	History   HistoryConfig
	Logging   LoggingConfig
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// ValidatorConfig holds validation run settings.
type ValidatorConfig struct {
	// OutputDirName is the subdirectory created in the input directory
	// for cleaned files (default: validated_output)
	OutputDirName string `env:"VALIDATOR_OUTPUT_DIR" default:"validated_output"`

	// ReportFileName is the JSON report written to the input directory
	// (default: validation_report.json)
	ReportFileName string `env:"VALIDATOR_REPORT_FILE" default:"validation_report.json"`

	// RunTimeout is the maximum duration for a single validation run
	// triggered over HTTP (default: 10m)
	RunTimeout time.Duration `env:"VALIDATOR_RUN_TIMEOUT" default:"10m"`
}

// HistoryConfig holds run-history persistence settings.
type HistoryConfig struct {
	// DatabaseURL is the PostgreSQL connection string. When empty, run
	// history is not persisted.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
