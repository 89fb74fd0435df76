package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueModuleCleanup(moduleID string) error {
	args := m.Called(moduleID)
	return args.Error(0)
}
