// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server.
	CORSOrigins []string

	// StorageBackend selects where snapshots are persisted.
	StorageBackend string

	// StorageNamespace is the key the snapshot is stored under.
	StorageNamespace string

	DataFile   string // file backend
	SQLitePath string // sqlite backend

	// DatabaseURL is the Postgres connection string. Required for postgres.
	DatabaseURL string

	// RedisURL is a redis:// URL. Required for redis.
	RedisURL string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
// Every problem found is reported in a single error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		StorageBackend:   strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		StorageNamespace: getEnv("STORAGE_NAMESPACE", "tripscout-storage"),
		DataFile:         getEnv("DATA_FILE", "data/tripscout.json"),
		SQLitePath:       getEnv("SQLITE_PATH", "data/tripscout.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	var missing, invalid []string

	maxBody, err := getEnvAsInt64("MAX_BODY_BYTES", 1<<20)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	switch cfg.StorageBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORAGE_BACKEND %q is not one of file, sqlite, postgres, redis, memory", cfg.StorageBackend))
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	problems = append(problems, invalid...)
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
