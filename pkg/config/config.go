package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	// UserID is the caller the CLI acts as when --as is not given.
	UserID string

	// Database
	DatabaseURL    string
	DatabaseDriver string
	SQLitePath     string
	DBMaxConns     int
	LocalMode      bool

	// Store circuit breaker
	DBBreakerFailures int
	DBBreakerTimeout  time.Duration

	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	JWTSecret        string

	// Idempotency
	RedisURL       string
	IdempotencyTTL time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		UserID:    getEnv("SLOTSWAP_USER_ID", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),
		DBMaxConns:  getIntEnv("DB_MAX_CONNS", 10),

		DBBreakerFailures: getIntEnv("DB_BREAKER_FAILURES", 5),
		DBBreakerTimeout:  getDurationEnv("DB_BREAKER_TIMEOUT", 30*time.Second),

		HTTPAddr:         getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		HTTPReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		JWTSecret:        getEnv("JWT_SECRET", ""),

		RedisURL:       getEnv("REDIS_URL", ""),
		IdempotencyTTL: getDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
	}

	// Without a server URL the store is a local SQLite file.
	cfg.DatabaseDriver = database.DetectDriver(cfg.DatabaseURL).String()
	cfg.LocalMode = cfg.DatabaseDriver == database.DriverSQLite.String()

	return cfg, nil
}

// Database returns the store settings.
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:     database.Driver(c.DatabaseDriver),
		URL:        c.DatabaseURL,
		SQLitePath: c.SQLitePath,
		MaxConns:   c.DBMaxConns,
	}
}

// Breaker returns the store circuit breaker settings.
func (c *Config) Breaker() database.BreakerConfig {
	cfg := database.DefaultBreakerConfig()
	if c.DBBreakerFailures > 0 {
		cfg.FailureThreshold = uint32(c.DBBreakerFailures)
	}
	if c.DBBreakerTimeout > 0 {
		cfg.Timeout = c.DBBreakerTimeout
	}
	return cfg
}

// ValidateServer checks what `serve` needs on top of the store.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required to serve the API")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 bytes in production")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
