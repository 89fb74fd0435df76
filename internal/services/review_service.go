package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/reviewflash/internal/errors"
	"github.com/vytor/reviewflash/internal/extract"
	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/repository"
	"github.com/vytor/reviewflash/internal/review"
)

// ReviewService handles the spaced-repetition review engine
type ReviewService interface {
	GenerateReviewItems(ctx context.Context, studentID, courseID, moduleID string, candidates []models.ReviewCandidate) ([]models.ReviewItem, error)
	GenerateForModule(ctx context.Context, studentID, moduleID string) ([]models.ReviewItem, error)
	GetDueItems(ctx context.Context, studentID, courseID string, limit int) ([]models.ReviewItem, error)
	UpdateReviewItem(ctx context.Context, studentID string, itemID int64, quality int, timeSpentSeconds float64) (*models.ReviewItem, error)
	GetReviewHistory(ctx context.Context, studentID string, itemID int64) ([]models.ReviewHistory, error)
	GetReviewStats(ctx context.Context, studentID, courseID string) (*models.ReviewStats, error)
}

type reviewService struct {
	reviewItemRepo repository.ReviewItemRepository
	moduleRepo     repository.ModuleRepository
	cfg            ReviewConfig
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewItemRepo repository.ReviewItemRepository, moduleRepo repository.ModuleRepository, cfg ReviewConfig) ReviewService {
	return &reviewService{
		reviewItemRepo: reviewItemRepo,
		moduleRepo:     moduleRepo,
		cfg:            cfg,
	}
}

func (s *reviewService) GenerateReviewItems(ctx context.Context, studentID, courseID, moduleID string, candidates []models.ReviewCandidate) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"student_id": studentID,
		"module_id":  moduleID,
	})
	log.Debug("generating review items: course_id=%s, candidates=%d", courseID, len(candidates))

	if err := requireIDs("studentId", studentID, "courseId", courseID, "moduleId", moduleID); err != nil {
		return nil, err
	}

	module, err := s.module(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.CourseID != courseID {
		return nil, errors.NewValidationError("courseId", "module "+moduleID+" does not belong to course "+courseID)
	}

	return s.createItems(ctx, log, studentID, module, candidates)
}

func (s *reviewService) GenerateForModule(ctx context.Context, studentID, moduleID string) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"student_id": studentID,
		"module_id":  moduleID,
	})
	log.Debug("generating review items from module content")

	if err := requireIDs("studentId", studentID, "moduleId", moduleID); err != nil {
		return nil, err
	}

	module, err := s.module(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	res := extract.Extract(*module)
	for _, skip := range res.Skipped {
		log.Warn("skipped %s: %s", skip.Source, skip.Reason)
	}
	log.Debug("extracted %d candidates, skipped %d sources", len(res.Candidates), len(res.Skipped))

	return s.createItems(ctx, log, studentID, module, res.Candidates)
}

// createItems stores the valid candidates as new items of module for studentID.
func (s *reviewService) createItems(ctx context.Context, log *logger.Logger, studentID string, module *models.Module, candidates []models.ReviewCandidate) ([]models.ReviewItem, error) {
	if len(candidates) == 0 {
		log.Debug("no candidates, nothing to schedule")
		return []models.ReviewItem{}, nil
	}

	// A bad candidate is dropped on its own; the rest of the batch proceeds.
	valid := lo.FilterMap(candidates, func(c models.ReviewCandidate, i int) (models.ReviewCandidate, bool) {
		c = normalizeCandidate(c)
		if err := validate.Struct(c); err != nil {
			log.Warn("skipping candidate %d (concept_key=%q): %v", i, c.ConceptKey, err)
			return c, false
		}
		return c, true
	})
	valid = lo.UniqBy(valid, func(c models.ReviewCandidate) string { return c.ConceptKey })

	now := s.cfg.clock()
	items := lo.Map(valid, func(c models.ReviewCandidate, _ int) models.ReviewItem {
		item := models.NewReviewItem(studentID, module.CourseID, module.ID, c, now)
		item.CreatedAt = now
		return item
	})

	created, err := s.reviewItemRepo.CreateIfAbsent(ctx, items)
	if err != nil {
		log.Error("failed to create review items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if created == nil {
		created = []models.ReviewItem{}
	}

	log.Info("created %d of %d review items", len(created), len(candidates))
	return created, nil
}

func normalizeCandidate(c models.ReviewCandidate) models.ReviewCandidate {
	return models.ReviewCandidate{
		ConceptKey: strings.TrimSpace(c.ConceptKey),
		Question:   strings.TrimSpace(c.Question),
		Answer:     strings.TrimSpace(c.Answer),
	}
}

// module loads a module and maps absence to NOT_FOUND.
func (s *reviewService) module(ctx context.Context, moduleID string) (*models.Module, error) {
	module, err := s.moduleRepo.Get(ctx, moduleID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get module: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if module == nil {
		return nil, errors.NewNotFoundError("module", moduleID)
	}
	return module, nil
}

func (s *reviewService) GetDueItems(ctx context.Context, studentID, courseID string, limit int) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting due items: student_id=%s, course_id=%s, limit=%d", studentID, courseID, limit)

	if err := requireIDs("studentId", studentID); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "cannot be negative")
	}

	items, err := s.reviewItemRepo.Due(ctx, models.DueFilter{
		StudentID: studentID,
		CourseID:  courseID,
		Now:       s.cfg.clock(),
		Limit:     s.cfg.limit(limit),
	})
	if err != nil {
		log.Error("failed to get due items: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if items == nil {
		items = []models.ReviewItem{}
	}
	return items, nil
}

func (s *reviewService) UpdateReviewItem(ctx context.Context, studentID string, itemID int64, quality int, timeSpentSeconds float64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithField("review_item_id", itemID)
	log.Debug("updating review item: student_id=%s, quality=%d", studentID, quality)

	if studentID == "" {
		return nil, errors.NewUnauthorizedError("missing student identity")
	}
	if !review.ValidQuality(quality) {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}
	if timeSpentSeconds < 0 {
		return nil, errors.NewValidationError("timeSpentSeconds", "cannot be negative")
	}

	item, err := s.ownedItem(ctx, studentID, itemID)
	if err != nil {
		return nil, err
	}

	now := s.cfg.clock()
	if !review.IsDue(*item, now) {
		log.Debug("reviewed ahead of schedule, next_review_date=%s", item.NextReviewDate.Format(time.RFC3339))
	}
	updated := review.ApplyReview(*item, quality, now)
	log.Debug("applied review, new interval=%d days, ease_factor=%.2f", updated.IntervalDays, updated.EaseFactor)

	switch {
	case !s.cfg.Mastery.Mastered(*item) && s.cfg.Mastery.Mastered(updated):
		log.Info("review item mastered after %d repetitions", updated.Repetitions)
	case !review.Struggling(*item) && review.Struggling(updated):
		log.Info("review item is now struggling, ease_factor=%.2f", updated.EaseFactor)
	}

	entry := models.ReviewHistory{
		ReviewItemID:     item.ID,
		Quality:          quality,
		TimeSpentSeconds: timeSpentSeconds,
		ReviewedAt:       now,
	}
	if err := s.reviewItemRepo.RecordReview(ctx, updated, entry); err != nil {
		if stderrors.Is(err, repository.ErrStaleItem) {
			return nil, errors.NewConflictError("review item", itemID, err)
		}
		log.Error("failed to record review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	updated.Version++
	return &updated, nil
}

func (s *reviewService) GetReviewHistory(ctx context.Context, studentID string, itemID int64) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithField("review_item_id", itemID)
	log.Debug("getting review history: student_id=%s", studentID)

	if studentID == "" {
		return nil, errors.NewUnauthorizedError("missing student identity")
	}
	if _, err := s.ownedItem(ctx, studentID, itemID); err != nil {
		return nil, err
	}

	history, err := s.reviewItemRepo.History(ctx, itemID)
	if err != nil {
		log.Error("failed to get review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if history == nil {
		history = []models.ReviewHistory{}
	}
	return history, nil
}

func (s *reviewService) GetReviewStats(ctx context.Context, studentID, courseID string) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting review stats: student_id=%s, course_id=%s", studentID, courseID)

	if err := requireIDs("studentId", studentID); err != nil {
		return nil, err
	}

	now := s.cfg.clock()
	stats, err := s.reviewItemRepo.Stats(ctx, models.StatsFilter{
		StudentID:              studentID,
		CourseID:               courseID,
		Now:                    now,
		DueSoonUntil:           now.Add(s.cfg.DueSoon),
		MasteryMinRepetitions:  s.cfg.Mastery.MinRepetitions,
		MasteryMinIntervalDays: s.cfg.Mastery.MinIntervalDays,
		StrugglingEaseFactor:   review.StrugglingEaseFactor,
	})
	if err != nil {
		log.Error("failed to get review stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

// ownedItem loads an item and rejects it unless studentID owns it.
func (s *reviewService) ownedItem(ctx context.Context, studentID string, itemID int64) (*models.ReviewItem, error) {
	item, err := s.reviewItemRepo.Get(ctx, itemID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get review item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("review item", itemID)
	}
	if item.StudentID != studentID {
		logger.FromContext(ctx).Warn("student %s attempted to access review item %d owned by another student", studentID, itemID)
		return nil, errors.NewForbiddenError("review item", itemID)
	}
	return item, nil
}

// requireIDs takes name, value pairs and rejects the first blank value.
func requireIDs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return errors.NewValidationError(pairs[i], "is required")
		}
	}
	return nil
}
