package models

// ReviewStats summarizes a student's review items, optionally for one course.
type ReviewStats struct {
	Total           int     `json:"total"`
	Due             int     `json:"due"`
	DueSoon         int     `json:"due_soon"`
	Mastered        int     `json:"mastered"`
	Struggling      int     `json:"struggling"`
	New             int     `json:"new"`
	TotalReviews    int     `json:"total_reviews"`
	Accuracy        float64 `json:"accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}
