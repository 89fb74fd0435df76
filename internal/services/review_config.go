package services

import (
	"time"

	"github.com/vytor/reviewflash/internal/config"
	"github.com/vytor/reviewflash/internal/review"
)

// ReviewConfig holds the tunables of the review engine
type ReviewConfig struct {
	Mastery      review.MasteryPolicy
	DueSoon      time.Duration
	DefaultLimit int
	MaxLimit     int
	Now          func() time.Time // nil means time.Now
}

// DefaultReviewConfig mirrors the defaults of config.Load.
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{
		Mastery:      review.DefaultMasteryPolicy(),
		DueSoon:      24 * time.Hour,
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// ReviewConfigFrom builds a ReviewConfig from application configuration.
func ReviewConfigFrom(cfg config.Config) ReviewConfig {
	return ReviewConfig{
		Mastery: review.MasteryPolicy{
			MinRepetitions:  cfg.MasteryMinRepetitions,
			MinIntervalDays: cfg.MasteryMinIntervalDays,
		},
		DueSoon:      time.Duration(cfg.DueSoonHours) * time.Hour,
		DefaultLimit: cfg.DueDefaultLimit,
		MaxLimit:     cfg.DueMaxLimit,
	}
}

// clock returns the current time at the precision items are stored with.
func (c ReviewConfig) clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().UTC().Truncate(time.Second)
}

// limit resolves a requested page size against the configured default and cap.
func (c ReviewConfig) limit(requested int) int {
	if requested <= 0 {
		requested = c.DefaultLimit
	}
	if c.MaxLimit > 0 && requested > c.MaxLimit {
		requested = c.MaxLimit
	}
	return requested
}
