package templates

import (
	"context"

	"draftpad/internal/client/models"
)

// Repository describes storage operations for user-owned Template records.
// System templates are remote-sourced and never pass through here.
type Repository interface {
	// CreateOrUpdate inserts a new template or replaces an existing one by ID.
	CreateOrUpdate(ctx context.Context, t *models.Template) error

	// GetAll returns every stored user template.
	GetAll(ctx context.Context) ([]models.Template, error)

	// GetByID returns one template or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Template, error)

	// DeleteByID removes a template row.
	DeleteByID(ctx context.Context, id string) error
}
