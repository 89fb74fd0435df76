package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/reviewflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                   ":8080",
		DBPath:                 "test.db",
		LogLevel:               "INFO",
		LogFormat:              "text",
		JWTSecret:              "0123456789abcdef",
		CORSOrigins:            []string{"http://localhost:3000"},
		CleanupWorkerCount:     1,
		CleanupQueueSize:       32,
		MasteryMinRepetitions:  3,
		MasteryMinIntervalDays: 21,
		DueSoonHours:           24,
		DueDefaultLimit:        20,
		DueMaxLimit:            100,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = " " }, "DB_PATH cannot be empty"},
		{"short secret", func(c *config.Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"no cleanup workers", func(c *config.Config) { c.CleanupWorkerCount = 0 }, "CLEANUP_WORKER_COUNT"},
		{"no cleanup queue", func(c *config.Config) { c.CleanupQueueSize = 0 }, "CLEANUP_QUEUE_SIZE"},
		{"zero mastery repetitions", func(c *config.Config) { c.MasteryMinRepetitions = 0 }, "MASTERY_MIN_REPETITIONS"},
		{"negative mastery interval", func(c *config.Config) { c.MasteryMinIntervalDays = -1 }, "MASTERY_MIN_INTERVAL_DAYS"},
		{"negative due soon window", func(c *config.Config) { c.DueSoonHours = -2 }, "DUE_SOON_HOURS"},
		{"zero default limit", func(c *config.Config) { c.DueDefaultLimit = 0 }, "DUE_DEFAULT_LIMIT"},
		{"max below default", func(c *config.Config) { c.DueMaxLimit = 10 }, "DUE_MAX_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("MASTERY_MIN_REPETITIONS", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 3, cfg.MasteryMinRepetitions)
	assert.Equal(t, 21, cfg.MasteryMinIntervalDays)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("MASTERY_MIN_INTERVAL_DAYS", "30")
	t.Setenv("DUE_MAX_LIMIT", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 30, cfg.MasteryMinIntervalDays)
	assert.Equal(t, 100, cfg.DueMaxLimit, "invalid ints fall back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}
