package config

import (
	"fmt"
	"os"
	"strconv"
)

// StoreBackend selects which repository implementation the cmds wire up
type StoreBackend string

const (
	StoreRedis    StoreBackend = "redis"
	StoreSQLite   StoreBackend = "sqlite"
	StoreInMemory StoreBackend = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Store  StoreBackend
	Redis  RedisConfig
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SQLiteConfig holds the embedded store configuration
type SQLiteConfig struct {
	Path string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Store: StoreBackend(getEnvOrDefault("FORGE_STORE", string(StoreRedis))),
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		SQLite: SQLiteConfig{
			Path: getEnvOrDefault("FORGE_SQLITE_PATH", "forge.db"),
		},
	}

	switch cfg.Store {
	case StoreRedis, StoreSQLite, StoreInMemory:
	default:
		return nil, fmt.Errorf("unknown FORGE_STORE backend %q", cfg.Store)
	}

	if cfg.Store == StoreSQLite && cfg.SQLite.Path == "" {
		return nil, fmt.Errorf("FORGE_SQLITE_PATH is required for the sqlite backend")
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
