package repository

import (
	"context"
	"errors"

	"github.com/vytor/reviewflash/internal/models"
)

// ErrStaleItem is returned by ReviewItemRepository.RecordReview when the stored
// item no longer carries the version the caller read.
var ErrStaleItem = errors.New("review item was modified since it was read")

// ReviewItemRepository handles review item data access
type ReviewItemRepository interface {
	// CreateIfAbsent inserts items whose (student, module, concept key) is not
	// stored yet and returns only the inserted ones. Existing items are untouched.
	CreateIfAbsent(ctx context.Context, items []models.ReviewItem) ([]models.ReviewItem, error)
	// Get returns nil, nil when no item has the given id.
	Get(ctx context.Context, id int64) (*models.ReviewItem, error)
	// Due returns items with next_review_date <= filter.Now, oldest first.
	Due(ctx context.Context, filter models.DueFilter) ([]models.ReviewItem, error)
	// RecordReview stores item's scheduling state and appends entry to the
	// review history in one transaction. The write only applies when the stored
	// version equals item.Version; the stored version becomes item.Version+1.
	RecordReview(ctx context.Context, item models.ReviewItem, entry models.ReviewHistory) error
	History(ctx context.Context, itemID int64) ([]models.ReviewHistory, error)
	Stats(ctx context.Context, filter models.StatsFilter) (*models.ReviewStats, error)
	DeleteByModule(ctx context.Context, moduleID string) (int64, error)
}

// ModuleRepository handles module content data access
type ModuleRepository interface {
	// Get returns nil, nil when the module does not exist.
	Get(ctx context.Context, id string) (*models.Module, error)
	Upsert(ctx context.Context, module models.Module) error
	Delete(ctx context.Context, id string) (bool, error)
}
