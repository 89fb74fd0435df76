package review

import (
	"math"
	"time"

	"github.com/vytor/reviewflash/internal/models"
)

const (
	MinQuality  = 0
	MaxQuality  = 5
	PassQuality = 3

	// MaxIntervalDays caps the gap between reviews at roughly a century.
	MaxIntervalDays = 36500
)

// ValidQuality reports whether q is a recall rating the scheduler accepts.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// NextEaseFactor applies the SM-2 ease update for quality q, floored at 1.3.
func NextEaseFactor(ef float64, quality int) float64 {
	d := float64(MaxQuality - quality)
	ef = ef + (0.1 - d*(0.08+d*0.02))
	if ef < models.MinEaseFactor {
		ef = models.MinEaseFactor
	}
	return ef
}

// ApplyReview updates item scheduling using the SM-2 variant.
// quality: 0=total blackout .. 5=perfect recall; callers validate the range.
func ApplyReview(item models.ReviewItem, quality int, now time.Time) models.ReviewItem {
	ef := item.EaseFactor
	if ef == 0 {
		ef = models.DefaultEaseFactor
	}
	ef = NextEaseFactor(ef, quality)

	if quality < PassQuality {
		item.Repetitions = 0
		item.IntervalDays = 1
		item.IncorrectCount++
	} else {
		item.Repetitions++
		switch item.Repetitions {
		case 1:
			item.IntervalDays = 1
		case 2:
			item.IntervalDays = 6
		default:
			item.IntervalDays = int(math.Min(math.Round(float64(item.IntervalDays)*ef), MaxIntervalDays))
		}
		item.CorrectCount++
	}

	item.EaseFactor = ef
	reviewed := now
	item.LastReviewDate = &reviewed
	item.NextReviewDate = NextReviewDate(reviewed, item.IntervalDays)
	return item
}

// NextReviewDate derives the due date from the last review and the interval.
func NextReviewDate(lastReview time.Time, intervalDays int) time.Time {
	return lastReview.AddDate(0, 0, intervalDays)
}

// IsDue reports whether item should be reviewed at now.
func IsDue(item models.ReviewItem, now time.Time) bool {
	return !item.NextReviewDate.After(now)
}
