package versions

import (
	"context"

	"draftpad/internal/client/models"
)

// Repository describes storage operations for Version snapshots. Snapshots
// are immutable: there is no update operation.
type Repository interface {
	// Create inserts a new snapshot.
	Create(ctx context.Context, v *models.Version) error

	// GetByID returns one snapshot or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Version, error)

	// GetAllByDocument lists a document's snapshots, most recent first.
	GetAllByDocument(ctx context.Context, documentID string) ([]models.Version, error)

	// DeleteByID removes a single snapshot.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByDocument removes every snapshot of a document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
