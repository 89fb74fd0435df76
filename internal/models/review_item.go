package models

import "time"

const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// ReviewItem is one flash-card-like unit tied to a concept within a module.
type ReviewItem struct {
	ID             int64      `json:"id"`
	StudentID      string     `json:"student_id"`
	CourseID       string     `json:"course_id"`
	ModuleID       string     `json:"module_id"`
	ConceptKey     string     `json:"concept_key"`
	Question       string     `json:"question"`
	Answer         string     `json:"answer"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewReviewItem returns an item in its initial scheduling state, due at now.
func NewReviewItem(studentID, courseID, moduleID string, c ReviewCandidate, now time.Time) ReviewItem {
	return ReviewItem{
		StudentID:      studentID,
		CourseID:       courseID,
		ModuleID:       moduleID,
		ConceptKey:     c.ConceptKey,
		Question:       c.Question,
		Answer:         c.Answer,
		EaseFactor:     DefaultEaseFactor,
		NextReviewDate: now,
	}
}

// ReviewCandidate is a normalized Q&A tuple produced by the extractor.
type ReviewCandidate struct {
	ConceptKey string `json:"concept_key" validate:"required,max=200"`
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

// ReviewHistory records one submitted review.
type ReviewHistory struct {
	ID               int64     `json:"id"`
	ReviewItemID     int64     `json:"review_item_id"`
	Quality          int       `json:"quality"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	ReviewedAt       time.Time `json:"reviewed_at"`
}

// DueFilter selects due items for one student.
type DueFilter struct {
	StudentID string
	CourseID  string
	Now       time.Time
	Limit     int
}

// StatsFilter scopes the stats aggregation.
type StatsFilter struct {
	StudentID              string
	CourseID               string
	Now                    time.Time
	DueSoonUntil           time.Time
	MasteryMinRepetitions  int
	MasteryMinIntervalDays int
	StrugglingEaseFactor   float64
}
