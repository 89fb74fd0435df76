package jobs

import (
	"github.com/vytor/reviewflash/internal/repository"
	"github.com/vytor/reviewflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	cleanupPool    *worker.Pool
	reviewItemRepo repository.ReviewItemRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(cleanupPool *worker.Pool, reviewItemRepo repository.ReviewItemRepository) JobQueue {
	return &WorkerQueue{
		cleanupPool:    cleanupPool,
		reviewItemRepo: reviewItemRepo,
	}
}

func (q *WorkerQueue) EnqueueModuleCleanup(moduleID string) error {
	return q.cleanupPool.Submit(&worker.CleanupModuleItemsJob{
		Repo:     q.reviewItemRepo,
		ModuleID: moduleID,
	})
}
