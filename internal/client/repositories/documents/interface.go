package documents

import (
	"context"

	"draftpad/internal/client/models"
)

// Repository describes storage operations for Document records.
// Implementations are backed by the local SQLite database; writes are atomic
// per record and later writes to the same id supersede earlier ones.
type Repository interface {
	// CreateOrUpdate inserts a new document or replaces an existing one by ID.
	CreateOrUpdate(ctx context.Context, d *models.Document) error

	// GetAll returns every stored document.
	GetAll(ctx context.Context) ([]models.Document, error)

	// GetByID returns one document or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetByShareToken resolves a sharing token or returns common.ErrNotFound.
	GetByShareToken(ctx context.Context, token string) (*models.Document, error)

	// DeleteByID removes a document row.
	DeleteByID(ctx context.Context, id string) error

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// ClearFolderRefs reassigns documents in the given folders to the root.
	ClearFolderRefs(ctx context.Context, folderIDs []string) error
}
