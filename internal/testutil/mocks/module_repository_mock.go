package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/reviewflash/internal/models"
)

// MockModuleRepository is a mock implementation of repository.ModuleRepository
type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) Get(ctx context.Context, id string) (*models.Module, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Module), args.Error(1)
}

func (m *MockModuleRepository) Upsert(ctx context.Context, module models.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockModuleRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
