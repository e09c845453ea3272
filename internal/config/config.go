// Package config loads server settings from the environment. A .env file in
// the working directory, when present, is read first; variables already set
// in the environment win.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/splitledger/internal/ledger"
)

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

var validBackends = []string{BackendMemory, BackendSQLite, BackendPostgres}

type Config struct {
	// HTTP server
	Port            string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string

	// Storage
	StorageBackend string
	DBPath         string
	DatabaseURL    string
	StateKey       string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from environment variables, applying defaults.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		DBPath:          getEnv("DB_PATH", "./data/ledger.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StateKey:        getEnv("STATE_KEY", ledger.DefaultStateKey),
	}
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.StorageBackend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, validBackends))
	}
	if c.StorageBackend == BackendSQLite && c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty when using sqlite backend")
	}
	if c.StorageBackend == BackendPostgres && c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required when using postgres backend")
	}

	if strings.TrimSpace(c.StateKey) == "" {
		problems = append(problems, "STATE_KEY cannot be blank")
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
