package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vytor/reviewflash/internal/logger"
	"github.com/vytor/reviewflash/internal/models"
	"github.com/vytor/reviewflash/internal/repository"
)

// moduleContent is the JSON document stored in modules.content.
type moduleContent struct {
	ContentBlocks      []models.ContentBlock     `json:"content_blocks"`
	AIGeneratedContent models.AIGeneratedContent `json:"ai_generated_content"`
}

type moduleRepository struct {
	db *sql.DB
}

// NewModuleRepository creates a new ModuleRepository implementation
func NewModuleRepository(db *sql.DB) repository.ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Get(ctx context.Context, id string) (*models.Module, error) {
	log := logger.FromContext(ctx).WithPrefix("module_repo")
	log.Debug("getting module: id=%s", id)

	var m models.Module
	var content string
	err := r.db.QueryRowContext(ctx, `
SELECT id, course_id, title, content, updated_at
FROM modules
WHERE id = ?
`, id).Scan(&m.ID, &m.CourseID, &m.Title, &content, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("module not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get module: %v", err)
		return nil, err
	}

	var c moduleContent
	if err := json.Unmarshal([]byte(content), &c); err != nil {
		log.Error("failed to decode module content: id=%s: %v", id, err)
		return nil, fmt.Errorf("decode module %s content: %w", id, err)
	}
	m.ContentBlocks = c.ContentBlocks
	m.AIGeneratedContent = c.AIGeneratedContent
	return &m, nil
}

func (r *moduleRepository) Upsert(ctx context.Context, m models.Module) error {
	log := logger.FromContext(ctx).WithPrefix("module_repo")
	log.Debug("upserting module: id=%s, course_id=%s, blocks=%d", m.ID, m.CourseID, len(m.ContentBlocks))

	content, err := json.Marshal(moduleContent{
		ContentBlocks:      m.ContentBlocks,
		AIGeneratedContent: m.AIGeneratedContent,
	})
	if err != nil {
		return fmt.Errorf("encode module %s content: %w", m.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO modules (id, course_id, title, content, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    course_id = excluded.course_id,
    title = excluded.title,
    content = excluded.content,
    updated_at = excluded.updated_at
`, m.ID, m.CourseID, m.Title, string(content), dbTime(m.UpdatedAt))
	if err != nil {
		log.Error("failed to upsert module: %v", err)
	}
	return err
}

func (r *moduleRepository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("module_repo")
	log.Debug("deleting module: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete module: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
