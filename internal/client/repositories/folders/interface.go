package folders

import (
	"context"

	"draftpad/internal/client/models"
)

// Repository describes storage operations for Folder records.
type Repository interface {
	// CreateOrUpdate inserts a new folder or replaces an existing one by ID.
	CreateOrUpdate(ctx context.Context, f *models.Folder) error

	// GetAll returns every stored folder.
	GetAll(ctx context.Context) ([]models.Folder, error)

	// GetByID returns one folder or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// DeleteByID removes a folder row. Missing rows are not an error: cascade
	// deletion may race with earlier removals.
	DeleteByID(ctx context.Context, id string) error

	// Count returns the number of stored folders.
	Count(ctx context.Context) (int, error)
}
