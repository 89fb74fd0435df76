package review

import "github.com/vytor/reviewflash/internal/models"

// StrugglingEaseFactor marks items whose ease has decayed well below the default.
const StrugglingEaseFactor = 1.8

// MasteryPolicy decides when an item no longer needs close attention.
type MasteryPolicy struct {
	MinRepetitions  int
	MinIntervalDays int
}

// DefaultMasteryPolicy: three consecutive passes and a three week interval.
func DefaultMasteryPolicy() MasteryPolicy {
	return MasteryPolicy{MinRepetitions: 3, MinIntervalDays: 21}
}

func (p MasteryPolicy) Mastered(item models.ReviewItem) bool {
	return item.Repetitions >= p.MinRepetitions && item.IntervalDays >= p.MinIntervalDays
}

// Struggling reports items with a low ease factor or more misses than hits.
func Struggling(item models.ReviewItem) bool {
	return item.EaseFactor < StrugglingEaseFactor || item.IncorrectCount > item.CorrectCount
}
