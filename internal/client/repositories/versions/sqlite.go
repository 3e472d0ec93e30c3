package versions

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

// Create inserts a snapshot. Snapshot ids never collide, so a plain insert
// is used rather than an upsert.
func (r *SQLiteRepository) Create(ctx context.Context, v *models.Version) error {
	query := `INSERT INTO versions (id, document_id, title, content, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.DocumentID, v.Title, v.Content, v.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert version: %w", err)
	}
	return nil
}

// GetByID returns a single snapshot or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, document_id, title, content, created_at FROM versions WHERE id = ?`, id)

	v := &models.Version{}
	var createdAt int64
	err := row.Scan(&v.ID, &v.DocumentID, &v.Title, &v.Content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select version: %w", err)
	}
	v.CreatedAt = time.UnixMilli(createdAt)
	return v, nil
}

// GetAllByDocument lists snapshots most recent first. The ordering is a
// presentation concern, not a storage invariant.
func (r *SQLiteRepository) GetAllByDocument(ctx context.Context, documentID string) ([]models.Version, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, title, content, created_at FROM versions
		 WHERE document_id = ? ORDER BY created_at DESC, id DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select versions: %w", err)
	}
	defer rows.Close()

	var result []models.Version
	for rows.Next() {
		var v models.Version
		var createdAt int64
		if err := rows.Scan(&v.ID, &v.DocumentID, &v.Title, &v.Content, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes a single snapshot. It expects exactly one row affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM versions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete version: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("delete version %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeleteByDocument removes all snapshots owned by a document.
func (r *SQLiteRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM versions WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("failed to delete versions: %w", err)
	}
	return nil
}
