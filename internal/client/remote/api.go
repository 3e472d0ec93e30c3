// Package remote contains the client-side contracts for the cloud service
// and their JSON-over-HTTP implementations. The remote service is
// authoritative once a user is authenticated, but every call here is an
// enhancement: failures map to common.ErrRemoteUnavailable and must never
// block local operations.
package remote

import (
	"context"

	"draftpad/internal/client/models"
)

// DocumentsAPI is the authenticated remote document endpoint. Requests carry
// the session cookie; any non-2xx response or transport failure is reported
// as common.ErrRemoteUnavailable, a missing record as common.ErrNotFound.
type DocumentsAPI interface {
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	UpsertFolders(ctx context.Context, batch []models.Folder) error
	Delete(ctx context.Context, ids []string) error
	Share(ctx context.Context, id string, token string) error
	Unshare(ctx context.Context, id string) error
}

// TemplatesAPI is the unauthenticated public template endpoint.
type TemplatesAPI interface {
	List(ctx context.Context) ([]models.Template, error)
}

// SharedResolver resolves a sharing token to a read-only document without
// authentication.
type SharedResolver interface {
	Resolve(ctx context.Context, token string) (*models.Document, error)
}
