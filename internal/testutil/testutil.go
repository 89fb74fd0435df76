package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/reviewflash/internal/db"
	"github.com/vytor/reviewflash/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// ReviewItem returns a fresh item for student/module/concept, due at due.
func ReviewItem(studentID, courseID, moduleID, conceptKey string, due time.Time) models.ReviewItem {
	item := models.NewReviewItem(studentID, courseID, moduleID, models.ReviewCandidate{
		ConceptKey: conceptKey,
		Question:   "Question for " + conceptKey,
		Answer:     "Answer for " + conceptKey,
	}, due)
	item.CreatedAt = due
	return item
}
