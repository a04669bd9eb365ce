// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// StoreBackend selects how the collections are persisted.
type StoreBackend string

const (
	// StoreFile - one JSON file per collection under a data directory.
	// The default: the hub is built for offline single-machine deployments.
	StoreFile StoreBackend = "file"
	// StoreMemory - in-process only, state lost on exit. For tests and demos.
	StoreMemory StoreBackend = "memory"
	// StoreRedis - collections as keys in a Redis instance.
	StoreRedis StoreBackend = "redis"
	// StorePostgres - collections as rows of a JSONB table.
	StorePostgres StoreBackend = "postgres"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Store
	Store StoreConfig

	// Session
	Session SessionConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// StoreConfig holds persistence settings. Only the section matching Backend
// is consulted.
type StoreConfig struct {
	Backend StoreBackend

	// File backend
	DataDir string

	// Redis backend
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Postgres backend
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
}

// SessionConfig holds login session settings.
type SessionConfig struct {
	// TTL is the session lifetime. Zero disables expiry.
	TTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for everything unset.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "nabha-learning-hub"),
			Environment:     Environment(getEnv("APP_ENV", string(EnvDevelopment))),
			Debug:           getEnvBool("APP_DEBUG", true),
			Version:         getEnv("APP_VERSION", "dev"),
			ShutdownTimeout: getEnvDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Backend:          StoreBackend(getEnv("STORE_BACKEND", string(StoreFile))),
			DataDir:          getEnv("STORE_DATA_DIR", "./data"),
			RedisHost:        getEnv("REDIS_HOST", "localhost"),
			RedisPort:        getEnvInt("REDIS_PORT", 6379),
			RedisPassword:    getEnv("REDIS_PASSWORD", ""),
			RedisDB:          getEnvInt("REDIS_DB", 0),
			RedisPrefix:      getEnv("REDIS_PREFIX", "nlh:"),
			PostgresURL:      getEnv("POSTGRES_URL", ""),
			PostgresMaxConns: getEnvInt("POSTGRES_MAX_CONNS", 10),
			PostgresMinConns: getEnvInt("POSTGRES_MIN_CONNS", 2),
		},
		Session: SessionConfig{
			TTL: getEnvDuration("SESSION_TTL", 12*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("unknown environment: %s", c.App.Environment)
	}

	switch c.Store.Backend {
	case StoreFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("STORE_DATA_DIR is required for the file backend")
		}
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", c.Store.Backend)
	}

	if c.Session.TTL < 0 {
		return fmt.Errorf("SESSION_TTL cannot be negative")
	}
	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
