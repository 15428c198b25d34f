// Package config loads server settings from the environment.
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
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config validation errors
var (
	// ErrMissingJWTSecret is returned when JWT_SECRET is empty
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	// ErrMissingDatabaseURL is returned when the postgres driver is selected without DATABASE_URL
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres driver")
	// ErrUnknownDriver is returned when STORAGE_DRIVER is neither postgres nor memory
	ErrUnknownDriver = errors.New("STORAGE_DRIVER must be postgres or memory")
	// ErrInvalidDuration is returned when a timeout or TTL is not positive
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrInvalidRateLimit is returned when RATE_LIMIT_REQUESTS is not positive
	ErrInvalidRateLimit = errors.New("RATE_LIMIT_REQUESTS must be positive")
)

// Config holds the server configuration
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string

	// StorageDriver selects the repository backend: "postgres" or "memory"
	StorageDriver string

	// Port is the HTTP listen port
	Port string

	// JWTSecret signs access tokens
	JWTSecret string

	// CORSOrigins lists the origins allowed to call the API
	CORSOrigins []string

	JWTTTL            time.Duration
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	RateLimitRequests int

	// RunMigrations applies the embedded schema at startup
	RunMigrations bool
}

// Default returns a Config with development defaults
func Default() Config {
	return Config{
		StorageDriver:     DriverPostgres,
		Port:              "8080",
		CORSOrigins:       []string{"*"},
		JWTTTL:            24 * time.Hour,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
		RunMigrations:     true,
	}
}

// Validate checks the configuration for missing or invalid values
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownDriver, c.StorageDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL: %w: got %v", ErrInvalidDuration, c.JWTTTL)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW: %w: got %v", ErrInvalidDuration, c.RateLimitWindow)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT: %w: got %v", ErrInvalidDuration, c.RequestTimeout)
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRateLimit, c.RateLimitRequests)
	}
	return nil
}

// Load reads an optional .env file, then builds and validates a Config from
// the environment. Variables already set in the environment win over .env.
//
// Environment variables:
//   - DATABASE_URL: PostgreSQL connection string
//   - STORAGE_DRIVER: "postgres" or "memory" (default: postgres)
//   - PORT: HTTP port (default: 8080)
//   - JWT_SECRET: token signing secret (required)
//   - JWT_TTL: token lifetime, Go duration (default: 24h)
//   - CORS_ORIGINS: comma-separated allowed origins (default: *)
//   - RATE_LIMIT_REQUESTS: requests per window per client (default: 100)
//   - RATE_LIMIT_WINDOW: Go duration (default: 1m)
//   - REQUEST_TIMEOUT: per-request timeout, Go duration (default: 30s)
//   - RUN_MIGRATIONS: "true"/"1" to migrate at startup (default: true)
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables over Default.
// Unparseable values keep the default and are logged.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	durationEnv("JWT_TTL", &cfg.JWTTTL)
	durationEnv("RATE_LIMIT_WINDOW", &cfg.RateLimitWindow)
	durationEnv("REQUEST_TIMEOUT", &cfg.RequestTimeout)

	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitRequests = n
		} else {
			slog.Warn("invalid RATE_LIMIT_REQUESTS value, using default",
				"value", v,
				"default", cfg.RateLimitRequests,
				"error", err,
			)
		}
	}

	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		cfg.RunMigrations = v == "true" || v == "1"
	}

	return cfg
}

func durationEnv(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default",
			"key", key,
			"value", v,
			"default", dst.String(),
			"error", err,
		)
		return
	}
	*dst = d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
