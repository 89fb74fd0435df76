package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/repository"
)

var reviewItemColumns = []string{
	"id", "student_id", "course_id", "module_id", "concept_key", "question", "answer",
	"ease_factor", "interval_days", "repetitions", "next_review_date", "last_review_date",
	"correct_count", "incorrect_count", "version", "created_at",
}

type reviewItemRepository struct {
	db *sql.DB
}

// NewReviewItemRepository creates a new ReviewItemRepository implementation
func NewReviewItemRepository(db *sql.DB) repository.ReviewItemRepository {
	return &reviewItemRepository{db: db}
}

func scanReviewItem(row rowScanner) (models.ReviewItem, error) {
	var it models.ReviewItem
	var last sql.NullTime
	err := row.Scan(&it.ID, &it.StudentID, &it.CourseID, &it.ModuleID, &it.ConceptKey, &it.Question, &it.Answer,
		&it.EaseFactor, &it.IntervalDays, &it.Repetitions, &it.NextReviewDate, &last,
		&it.CorrectCount, &it.IncorrectCount, &it.Version, &it.CreatedAt)
	if err != nil {
		return it, err
	}
	if last.Valid {
		t := last.Time
		it.LastReviewDate = &t
	}
	return it, nil
}

func (r *reviewItemRepository) CreateIfAbsent(ctx context.Context, items []models.ReviewItem) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("creating review items if absent: candidates=%d", len(items))

	var created []models.ReviewItem
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO review_items (student_id, course_id, module_id, concept_key, question, answer,
    ease_factor, interval_days, repetitions, next_review_date, last_review_date,
    correct_count, incorrect_count, version, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
ON CONFLICT (student_id, module_id, concept_key) DO NOTHING
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, it := range items {
			it.NextReviewDate = dbTime(it.NextReviewDate)
			it.CreatedAt = dbTime(it.CreatedAt)
			res, err := stmt.ExecContext(ctx, it.StudentID, it.CourseID, it.ModuleID, it.ConceptKey, it.Question, it.Answer,
				it.EaseFactor, it.IntervalDays, it.Repetitions, it.NextReviewDate, nullTime(it.LastReviewDate),
				it.CorrectCount, it.IncorrectCount, it.CreatedAt)
			if err != nil {
				log.Error("failed to insert review item: concept_key=%s: %v", it.ConceptKey, err)
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				log.Debug("review item already exists: concept_key=%s", it.ConceptKey)
				continue
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			it.ID = id
			it.Version = 0
			created = append(created, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("created %d review items", len(created))
	return created, nil
}

func (r *reviewItemRepository) Get(ctx context.Context, id int64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("getting review item: id=%d", id)

	query, args, err := sqlBuilder.Select(reviewItemColumns...).
		From("review_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	it, err := scanReviewItem(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("review item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review item: %v", err)
		return nil, err
	}
	return &it, nil
}

func (r *reviewItemRepository) Due(ctx context.Context, filter models.DueFilter) ([]models.ReviewItem, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("fetching due review items: student_id=%s, course_id=%s, limit=%d", filter.StudentID, filter.CourseID, filter.Limit)

	query := sqlBuilder.Select(reviewItemColumns...).
		From("review_items").
		Where(squirrel.Eq{"student_id": filter.StudentID}).
		Where(squirrel.LtOrEq{"next_review_date": dbTime(filter.Now)})
	if filter.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": filter.CourseID})
	}
	query = query.OrderBy("next_review_date ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query due review items: %v", err)
		return nil, err
	}
	defer rows.Close()

	items := []models.ReviewItem{}
	for rows.Next() {
		it, err := scanReviewItem(rows)
		if err != nil {
			log.Error("failed to scan review item row: %v", err)
			return nil, err
		}
		items = append(items, it)
	}
	log.Debug("found %d due review items", len(items))
	return items, rows.Err()
}

func (r *reviewItemRepository) RecordReview(ctx context.Context, it models.ReviewItem, entry models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("recording review: id=%d, version=%d, interval=%d, ease=%.2f", it.ID, it.Version, it.IntervalDays, it.EaseFactor)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE review_items
SET ease_factor = ?, interval_days = ?, repetitions = ?, next_review_date = ?, last_review_date = ?,
    correct_count = ?, incorrect_count = ?, version = version + 1
WHERE id = ? AND student_id = ? AND version = ?
`, it.EaseFactor, it.IntervalDays, it.Repetitions, dbTime(it.NextReviewDate), nullTime(it.LastReviewDate),
			it.CorrectCount, it.IncorrectCount, it.ID, it.StudentID, it.Version)
		if err != nil {
			log.Error("failed to update review item: %v", err)
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			log.Warn("stale review item write rejected: id=%d, version=%d", it.ID, it.Version)
			return repository.ErrStaleItem
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO review_history (review_item_id, quality, time_spent_seconds, reviewed_at)
VALUES (?, ?, ?, ?)
`, it.ID, entry.Quality, entry.TimeSpentSeconds, dbTime(entry.ReviewedAt))
		if err != nil {
			log.Error("failed to insert review history: %v", err)
		}
		return err
	})
}

func (r *reviewItemRepository) History(ctx context.Context, itemID int64) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("fetching review history: review_item_id=%d", itemID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, review_item_id, quality, time_spent_seconds, reviewed_at
FROM review_history
WHERE review_item_id = ?
ORDER BY reviewed_at ASC, id ASC
`, itemID)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var history []models.ReviewHistory
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.ReviewItemID, &h.Quality, &h.TimeSpentSeconds, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *reviewItemRepository) Stats(ctx context.Context, f models.StatsFilter) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("aggregating review stats: student_id=%s, course_id=%s", f.StudentID, f.CourseID)

	now := dbTime(f.Now)
	query := sqlBuilder.Select().
		Column("COUNT(*)").
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN next_review_date <= ? THEN 1 ELSE 0 END), 0)", now)).
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN next_review_date > ? AND next_review_date <= ? THEN 1 ELSE 0 END), 0)", now, dbTime(f.DueSoonUntil))).
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN repetitions >= ? AND interval_days >= ? THEN 1 ELSE 0 END), 0)", f.MasteryMinRepetitions, f.MasteryMinIntervalDays)).
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN ease_factor < ? OR incorrect_count > correct_count THEN 1 ELSE 0 END), 0)", f.StrugglingEaseFactor)).
		Column("COALESCE(SUM(CASE WHEN last_review_date IS NULL THEN 1 ELSE 0 END), 0)").
		Column("COALESCE(SUM(correct_count + incorrect_count), 0)").
		Column("COALESCE(SUM(correct_count), 0)").
		Column("COALESCE(AVG(ease_factor), 0)").
		Column("COALESCE(AVG(interval_days), 0)").
		From("review_items").
		Where(squirrel.Eq{"student_id": f.StudentID})
	if f.CourseID != "" {
		query = query.Where(squirrel.Eq{"course_id": f.CourseID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var s models.ReviewStats
	var correct int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(
		&s.Total, &s.Due, &s.DueSoon, &s.Mastered, &s.Struggling, &s.New,
		&s.TotalReviews, &correct, &s.AvgEaseFactor, &s.AvgIntervalDays)
	if err != nil {
		log.Error("failed to aggregate review stats: %v", err)
		return nil, err
	}
	if s.TotalReviews > 0 {
		s.Accuracy = float64(correct) / float64(s.TotalReviews)
	}
	return &s, nil
}

func (r *reviewItemRepository) DeleteByModule(ctx context.Context, moduleID string) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_item_repo")
	log.Debug("deleting review items for module: module_id=%s", moduleID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM review_items WHERE module_id = ?`, moduleID)
	if err != nil {
		log.Error("failed to delete review items: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("deleted %d review items for module %s", n, moduleID)
	return n, nil
}
