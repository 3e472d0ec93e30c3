package templates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"draftpad/internal/client/models"
	"draftpad/internal/common"
	"draftpad/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateOrUpdate upserts a template by id.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, t *models.Template) error {
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `INSERT INTO templates (id, title, content, description, category, tags, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				content = excluded.content,
				description = excluded.description,
				category = excluded.category,
				tags = excluded.tags,
				updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.Content, t.Description, t.Category, string(tags), t.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert template: %w", err)
	}
	return nil
}

// GetAll lists all user templates.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Template, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, description, category, tags, updated_at FROM templates ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to select templates: %w", err)
	}
	defer rows.Close()

	var result []models.Template
	for rows.Next() {
		item, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single template or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Template, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, description, category, tags, updated_at FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select template: %w", err)
	}
	return t, nil
}

// DeleteByID removes a template row. It expects exactly one row affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("delete template %q: %w", id, common.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTemplate(s scanner) (*models.Template, error) {
	var t models.Template
	var updatedAt int64
	var tags string
	if err := s.Scan(&t.ID, &t.Title, &t.Content, &t.Description, &t.Category, &tags, &updatedAt); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.UnixMilli(updatedAt)
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		t.Tags = []string{}
	}
	return &t, nil
}
