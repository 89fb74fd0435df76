package services

import (
	"context"
	"time"

	"github.com/vytor/reviewflash/internal/errors"
	"github.com/vytor/reviewflash/internal/jobs"
	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/repository"
)

// ModuleService handles module content storage
type ModuleService interface {
	GetModule(ctx context.Context, id string) (*models.Module, error)
	SaveModule(ctx context.Context, module models.Module) (*models.Module, error)
	DeleteModule(ctx context.Context, id string) error
}

type moduleService struct {
	moduleRepo     repository.ModuleRepository
	reviewItemRepo repository.ReviewItemRepository
	jobQueue       jobs.JobQueue
	now            func() time.Time
}

// NewModuleService creates a new ModuleService
func NewModuleService(moduleRepo repository.ModuleRepository, reviewItemRepo repository.ReviewItemRepository, jobQueue jobs.JobQueue) ModuleService {
	return &moduleService{
		moduleRepo:     moduleRepo,
		reviewItemRepo: reviewItemRepo,
		jobQueue:       jobQueue,
		now:            time.Now,
	}
}

func (s *moduleService) GetModule(ctx context.Context, id string) (*models.Module, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting module: id=%s", id)

	if id == "" {
		return nil, errors.NewValidationError("moduleId", "is required")
	}

	module, err := s.moduleRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get module: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module", id)
	}
	return module, nil
}

func (s *moduleService) SaveModule(ctx context.Context, module models.Module) (*models.Module, error) {
	log := logger.FromContext(ctx)
	log.Debug("saving module: id=%s, course_id=%s", module.ID, module.CourseID)

	if err := validate.Struct(module); err != nil {
		log.Debug("module rejected: %v", err)
		return nil, validationError(err)
	}

	module.UpdatedAt = s.now().UTC().Truncate(time.Second)
	if err := s.moduleRepo.Upsert(ctx, module); err != nil {
		log.Error("failed to save module: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &module, nil
}

// DeleteModule removes the module and schedules removal of its review items.
// When the cleanup job cannot be queued the items are removed before returning.
func (s *moduleService) DeleteModule(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting module: id=%s", id)

	if id == "" {
		return errors.NewValidationError("moduleId", "is required")
	}

	deleted, err := s.moduleRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete module: %v", err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("module", id)
	}

	if err := s.jobQueue.EnqueueModuleCleanup(id); err != nil {
		log.Warn("failed to enqueue review item cleanup for module %s, cleaning up inline: %v", id, err)
		removed, err := s.reviewItemRepo.DeleteByModule(ctx, id)
		if err != nil {
			log.Error("failed to delete review items of module %s: %v", id, err)
			return errors.NewInternalError(err)
		}
		log.Info("module deleted, removed %d review items: id=%s", removed, id)
		return nil
	}
	log.Info("module deleted, review item cleanup queued: id=%s", id)
	return nil
}
