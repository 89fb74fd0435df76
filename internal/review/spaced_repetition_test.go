package review_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/review"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func freshItem() models.ReviewItem {
	return models.ReviewItem{
		ID:             1,
		StudentID:      "student-a",
		EaseFactor:     models.DefaultEaseFactor,
		NextReviewDate: now,
	}
}

func TestApplyReview_PerfectScore(t *testing.T) {
	item := freshItem()

	updated := review.ApplyReview(item, 5, now)

	assert.Equal(t, 1, updated.IntervalDays)
	assert.Equal(t, 1, updated.Repetitions)
	assert.InDelta(t, 2.6, updated.EaseFactor, 1e-9)
	assert.Equal(t, 1, updated.CorrectCount)
	assert.Equal(t, 0, updated.IncorrectCount)
	require.NotNil(t, updated.LastReviewDate)
	assert.Equal(t, now, *updated.LastReviewDate)
	assert.Equal(t, now.AddDate(0, 0, 1), updated.NextReviewDate)
}

func TestApplyReview_FailureResetsRepetitions(t *testing.T) {
	item := freshItem()
	item.Repetitions = 4
	item.IntervalDays = 40
	item.CorrectCount = 4

	updated := review.ApplyReview(item, 2, now)

	assert.Equal(t, 0, updated.Repetitions)
	assert.Equal(t, 1, updated.IntervalDays)
	assert.Equal(t, 1, updated.IncorrectCount)
	assert.Equal(t, 4, updated.CorrectCount, "correct count never decreases")
	assert.Less(t, updated.EaseFactor, item.EaseFactor)
}

func TestApplyReview_ProgressiveIntervals(t *testing.T) {
	item := freshItem()

	var intervals []int
	for i := 0; i < 3; i++ {
		item = review.ApplyReview(item, 4, now)
		intervals = append(intervals, item.IntervalDays)
	}

	expectedThird := int(math.Round(6 * item.EaseFactor))
	assert.Equal(t, []int{1, 6, expectedThird}, intervals)
	assert.Equal(t, 15, expectedThird)
	assert.Equal(t, 3, item.Repetitions)
	assert.Equal(t, 3, item.CorrectCount)
}

func TestApplyReview_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name        string
		quality     int
		repetitions int
		interval    int
		easeFactor  float64
		expected    int
	}{
		{"first pass is one day", 3, 0, 0, 2.5, 1},
		{"second pass is six days", 4, 1, 1, 2.5, 6},
		{"third pass multiplies by new ease", 4, 2, 6, 2.5, 15},
		{"easy answer uses raised ease", 5, 5, 10, 2.5, 26},
		{"hard pass uses lowered ease", 3, 3, 10, 2.5, 24},
		{"rounding to nearest day", 4, 3, 7, 1.3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := freshItem()
			item.Repetitions = tt.repetitions
			item.IntervalDays = tt.interval
			item.EaseFactor = tt.easeFactor

			updated := review.ApplyReview(item, tt.quality, now)

			assert.Equal(t, tt.expected, updated.IntervalDays)
		})
	}
}

func TestApplyReview_IntervalIsCapped(t *testing.T) {
	item := freshItem()
	for i := 0; i < 30; i++ {
		item = review.ApplyReview(item, 5, now)
		require.LessOrEqual(t, item.IntervalDays, review.MaxIntervalDays, "review %d", i+1)
	}
	assert.Equal(t, review.MaxIntervalDays, item.IntervalDays)
	assert.True(t, item.NextReviewDate.Before(time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestApplyReview_MinEaseFactor(t *testing.T) {
	item := freshItem()
	qualities := []int{0, 1, 2, 0, 3, 0, 5, 0, 1, 0, 2, 0}

	for _, q := range qualities {
		item = review.ApplyReview(item, q, now)
		assert.GreaterOrEqual(t, item.EaseFactor, models.MinEaseFactor, "ease factor should not drop below 1.3")
	}
	assert.Equal(t, models.MinEaseFactor, item.EaseFactor)
}

func TestApplyReview_CountersIncrementOncePerReview(t *testing.T) {
	item := freshItem()
	for q := review.MinQuality; q <= review.MaxQuality; q++ {
		before := item.CorrectCount + item.IncorrectCount
		item = review.ApplyReview(item, q, now)
		assert.Equal(t, before+1, item.CorrectCount+item.IncorrectCount)
	}
	assert.Equal(t, 3, item.CorrectCount)
	assert.Equal(t, 3, item.IncorrectCount)
}

func TestApplyReview_NextReviewDerivedFromLastReview(t *testing.T) {
	item := freshItem()
	item.Repetitions = 2
	item.IntervalDays = 6

	updated := review.ApplyReview(item, 4, now)

	require.NotNil(t, updated.LastReviewDate)
	assert.Equal(t, review.NextReviewDate(*updated.LastReviewDate, updated.IntervalDays), updated.NextReviewDate)
}

func TestApplyReview_ZeroEaseTreatedAsDefault(t *testing.T) {
	item := freshItem()
	item.EaseFactor = 0

	updated := review.ApplyReview(item, 4, now)

	assert.InDelta(t, models.DefaultEaseFactor, updated.EaseFactor, 1e-9)
}

func TestValidQuality(t *testing.T) {
	assert.True(t, review.ValidQuality(0))
	assert.True(t, review.ValidQuality(5))
	assert.False(t, review.ValidQuality(-1))
	assert.False(t, review.ValidQuality(6))
}

func TestIsDue(t *testing.T) {
	item := freshItem()

	item.NextReviewDate = now
	assert.True(t, review.IsDue(item, now), "due exactly at now")

	item.NextReviewDate = now.Add(-72 * time.Hour)
	assert.True(t, review.IsDue(item, now))

	item.NextReviewDate = now.Add(time.Second)
	assert.False(t, review.IsDue(item, now))
}

func TestMasteryPolicy(t *testing.T) {
	policy := review.DefaultMasteryPolicy()
	item := freshItem()

	item.Repetitions, item.IntervalDays = 3, 21
	assert.True(t, policy.Mastered(item))

	item.Repetitions, item.IntervalDays = 2, 60
	assert.False(t, policy.Mastered(item))

	item.Repetitions, item.IntervalDays = 5, 20
	assert.False(t, policy.Mastered(item))
}

func TestStruggling(t *testing.T) {
	item := freshItem()
	assert.False(t, review.Struggling(item))

	item.EaseFactor = 1.5
	assert.True(t, review.Struggling(item))

	item.EaseFactor = 2.5
	item.IncorrectCount, item.CorrectCount = 3, 1
	assert.True(t, review.Struggling(item))
}
