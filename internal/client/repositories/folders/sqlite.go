package folders

import (
	"context"
	"database/sql"
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

// CreateOrUpdate upserts a folder by id.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, f *models.Folder) error {
	query := `INSERT INTO folders (id, name, parent_id, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				parent_id = excluded.parent_id
	`
	var parent any
	if f.ParentID != nil {
		parent = *f.ParentID
	}
	_, err := r.db.ExecContext(ctx, query, f.ID, f.Name, parent, f.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert folder: %w", err)
	}
	return nil
}

// GetAll lists all folders.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, parent_id, created_at FROM folders ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		item, err := scanFolder(rows)
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

// GetByID returns a single folder or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, parent_id, created_at FROM folders WHERE id = ?`, id)
	f, err := scanFolder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}
	return f, nil
}

// DeleteByID removes a folder row if present.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}

// Count returns the total number of stored folders.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM folders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count folders: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFolder(s scanner) (*models.Folder, error) {
	var f models.Folder
	var createdAt int64
	var parent sql.NullString
	if err := s.Scan(&f.ID, &f.Name, &parent, &createdAt); err != nil {
		return nil, err
	}
	f.CreatedAt = time.UnixMilli(createdAt)
	if parent.Valid {
		f.ParentID = &parent.String
	}
	return &f, nil
}
