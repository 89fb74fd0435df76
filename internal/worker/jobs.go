package worker

import (
	"context"
	"fmt"

	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/repository"
)

// CleanupModuleItemsJob removes every review item that was generated from a
// deleted module. It is safe to run more than once.
type CleanupModuleItemsJob struct {
	Repo     repository.ReviewItemRepository
	ModuleID string
}

func (j *CleanupModuleItemsJob) Name() string { return "cleanup_module_items" }

func (j *CleanupModuleItemsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("module_id", j.ModuleID)
	log.Info("removing review items for deleted module")

	n, err := j.Repo.DeleteByModule(ctx, j.ModuleID)
	if err != nil {
		return fmt.Errorf("cleanup module %s: %w", j.ModuleID, err)
	}
	log.Info("removed %d review items", n)
	return nil
}
