package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string
	DBPath    string
	LogLevel  string
	LogFormat string

	JWTSecret   string
	CORSOrigins []string

	CleanupWorkerCount int
	CleanupQueueSize   int

	// An item counts as mastered once it has at least MasteryMinRepetitions
	// consecutive successful reviews and an interval of at least
	// MasteryMinIntervalDays.
	MasteryMinRepetitions  int
	MasteryMinIntervalDays int

	DueSoonHours    int
	DueDefaultLimit int
	DueMaxLimit     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                   envOr("ADDR", ":8080"),
		DBPath:                 envOr("DB_PATH", "file:reviewflash.db"),
		LogLevel:               envOr("LOG_LEVEL", "INFO"),
		LogFormat:              envOr("LOG_FORMAT", "text"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		CORSOrigins:            csvOr("CORS_ORIGINS", "http://localhost:3000"),
		CleanupWorkerCount:     envIntOr("CLEANUP_WORKER_COUNT", 1),
		CleanupQueueSize:       envIntOr("CLEANUP_QUEUE_SIZE", 32),
		MasteryMinRepetitions:  envIntOr("MASTERY_MIN_REPETITIONS", 3),
		MasteryMinIntervalDays: envIntOr("MASTERY_MIN_INTERVAL_DAYS", 21),
		DueSoonHours:           envIntOr("DUE_SOON_HOURS", 24),
		DueDefaultLimit:        envIntOr("DUE_DEFAULT_LIMIT", 20),
		DueMaxLimit:            envIntOr("DUE_MAX_LIMIT", 100),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.CleanupWorkerCount < 1 {
		return fmt.Errorf("CLEANUP_WORKER_COUNT must be at least 1, got %d", c.CleanupWorkerCount)
	}
	if c.CleanupQueueSize < 1 {
		return fmt.Errorf("CLEANUP_QUEUE_SIZE must be at least 1, got %d", c.CleanupQueueSize)
	}
	if c.MasteryMinRepetitions < 1 {
		return fmt.Errorf("MASTERY_MIN_REPETITIONS must be at least 1, got %d", c.MasteryMinRepetitions)
	}
	if c.MasteryMinIntervalDays < 0 {
		return fmt.Errorf("MASTERY_MIN_INTERVAL_DAYS cannot be negative, got %d", c.MasteryMinIntervalDays)
	}
	if c.DueSoonHours < 0 {
		return fmt.Errorf("DUE_SOON_HOURS cannot be negative, got %d", c.DueSoonHours)
	}
	if c.DueDefaultLimit < 1 {
		return fmt.Errorf("DUE_DEFAULT_LIMIT must be at least 1, got %d", c.DueDefaultLimit)
	}
	if c.DueMaxLimit < c.DueDefaultLimit {
		return fmt.Errorf("DUE_MAX_LIMIT (%d) cannot be lower than DUE_DEFAULT_LIMIT (%d)", c.DueMaxLimit, c.DueDefaultLimit)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func csvOr(key, def string) []string {
	parts := strings.Split(envOr(key, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
