package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
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

const documentColumns = `id, title, content, updated_at, is_private, is_favorite,
	is_shared, share_token, shared_with, is_tutorial, folder_id, tags`

// CreateOrUpdate upserts a document by id. On conflict all mutable columns
// are replaced, so the last write for an id wins.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, d *models.Document) error {
	sharedWith, err := json.Marshal(d.SharedWith)
	if err != nil {
		return fmt.Errorf("failed to encode shared_with: %w", err)
	}
	tags, err := json.Marshal(d.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	query := `INSERT INTO documents (` + documentColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				content = excluded.content,
				updated_at = excluded.updated_at,
				is_private = excluded.is_private,
				is_favorite = excluded.is_favorite,
				is_shared = excluded.is_shared,
				share_token = excluded.share_token,
				shared_with = excluded.shared_with,
				is_tutorial = excluded.is_tutorial,
				folder_id = excluded.folder_id,
				tags = excluded.tags
	`
	_, err = r.db.ExecContext(ctx, query,
		d.ID, d.Title, d.Content, d.UpdatedAt.UnixMilli(), d.IsPrivate, d.IsFavorite,
		d.IsShared, d.ShareToken, string(sharedWith), d.IsTutorial, folderArg(d.FolderID), string(tags))
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// GetAll lists all documents ordered by most recent change.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []models.Document
	for rows.Next() {
		item, err := scanDocument(rows)
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

// GetByID returns a single document or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByShareToken resolves a non-empty sharing token to its document.
func (r *SQLiteRepository) GetByShareToken(ctx context.Context, token string) (*models.Document, error) {
	if token == "" {
		return nil, common.ErrNotFound
	}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE share_token = ? AND is_shared = 1`
	return r.getOne(ctx, query, token)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select document: %w", err)
	}
	return d, nil
}

// DeleteByID removes a document row. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("delete document %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// Count returns the total number of stored documents.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// ClearFolderRefs moves documents out of the given folders back to the root.
func (r *SQLiteRepository) ClearFolderRefs(ctx context.Context, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(folderIDs)), ", ")
	args := make([]any, 0, len(folderIDs))
	for _, id := range folderIDs {
		args = append(args, id)
	}
	query := `UPDATE documents SET folder_id = NULL WHERE folder_id IN (` + placeholders + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear folder refs: %w", err)
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*models.Document, error) {
	var d models.Document
	var updatedAt int64
	var sharedWith, tags string
	var folderID sql.NullString

	err := s.Scan(&d.ID, &d.Title, &d.Content, &updatedAt, &d.IsPrivate, &d.IsFavorite,
		&d.IsShared, &d.ShareToken, &sharedWith, &d.IsTutorial, &folderID, &tags)
	if err != nil {
		return nil, err
	}

	d.UpdatedAt = time.UnixMilli(updatedAt)
	if folderID.Valid {
		d.FolderID = &folderID.String
	}
	if err := json.Unmarshal([]byte(sharedWith), &d.SharedWith); err != nil {
		d.SharedWith = []string{}
	}
	if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
		d.Tags = []string{}
	}
	return &d, nil
}

func folderArg(id *string) any {
	if id == nil {
		return nil
	}
	return *id
}
