package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/reviewflash/internal/models"
)

// MockReviewItemRepository is a mock implementation of repository.ReviewItemRepository
type MockReviewItemRepository struct {
	mock.Mock
}

func (m *MockReviewItemRepository) CreateIfAbsent(ctx context.Context, items []models.ReviewItem) ([]models.ReviewItem, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) Get(ctx context.Context, id int64) (*models.ReviewItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) Due(ctx context.Context, filter models.DueFilter) ([]models.ReviewItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewItem), args.Error(1)
}

func (m *MockReviewItemRepository) RecordReview(ctx context.Context, item models.ReviewItem, entry models.ReviewHistory) error {
	args := m.Called(ctx, item, entry)
	return args.Error(0)
}

func (m *MockReviewItemRepository) History(ctx context.Context, itemID int64) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}

func (m *MockReviewItemRepository) Stats(ctx context.Context, filter models.StatsFilter) (*models.ReviewStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewStats), args.Error(1)
}

func (m *MockReviewItemRepository) DeleteByModule(ctx context.Context, moduleID string) (int64, error) {
	args := m.Called(ctx, moduleID)
	return args.Get(0).(int64), args.Error(1)
}
