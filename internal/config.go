package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	LogLevel  string
	Port      uint16
	Checker   CheckerConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// CheckerConfig bounds the work a single request can ask for.
type CheckerConfig struct {
	// MaxBatchSize is the largest number of postcodes accepted per request.
	MaxBatchSize int

	// MaxInputLength caps the raw batch string in bytes, before splitting.
	MaxInputLength int

	// Concurrency is the worker limit for JSON batch checks.
	// Values below 2 check sequentially.
	Concurrency int

	// RequestTimeout is applied by the timeout middleware.
	RequestTimeout time.Duration
}

// RateLimitConfig is the per-client budget for the check endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

func NewConfig() (*Config, error) {
	// Try .env in the current directory, then up to two parents
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvUint16("PORT", 3000),
		Checker: CheckerConfig{
			MaxBatchSize:   getEnvInt("MAX_BATCH_SIZE", 500),
			MaxInputLength: getEnvInt("MAX_INPUT_LENGTH", 16*1024),
			Concurrency:    getEnvInt("BATCH_CONCURRENCY", 4),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 10),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Metrics: MetricsConfig{
			Enabled:   getEnvBool("METRICS_ENABLED", true),
			Namespace: getEnv("METRICS_NAMESPACE", "ukpostcode"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate falls back to defaults for soft misconfiguration and fails on
// values the server cannot run with.
func (cfg *Config) validate() error {
	if cfg.Env != "dev" && cfg.Env != "prod" {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.Checker.Concurrency < 1 {
		slog.Default().Warn("Invalid batch concurrency. Using 1", slog.Int("value", cfg.Checker.Concurrency))
		cfg.Checker.Concurrency = 1
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 || cfg.RateLimit.Burst < 1 {
		slog.Default().Warn("Invalid rate limit. Using defaults: 10 rps, burst 20",
			slog.Float64("rps", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
		cfg.RateLimit = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	}

	if cfg.Port == 0 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if cfg.Checker.MaxBatchSize < 1 {
		return fmt.Errorf("MAX_BATCH_SIZE must be positive, got %d", cfg.Checker.MaxBatchSize)
	}
	if cfg.Checker.MaxInputLength < 1 {
		return fmt.Errorf("MAX_INPUT_LENGTH must be positive, got %d", cfg.Checker.MaxInputLength)
	}
	if cfg.Checker.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.Checker.RequestTimeout)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint16(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var v uint16
		if _, err := fmt.Sscanf(value, "%d", &v); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var v int
		if _, err := fmt.Sscanf(value, "%d", &v); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
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
