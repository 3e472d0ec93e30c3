package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"draftpad/internal/client/models"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/versions"
	"draftpad/internal/logging"
)

// VersionService manages point-in-time content snapshots.
type VersionService interface {
	// Create snapshots the document's current title and content.
	Create(ctx context.Context, documentID string) (*models.Version, error)

	// Restore copies a snapshot's content back onto the live document.
	// A safety snapshot of the current content is taken first, and the
	// restored version itself is kept: restoring never destroys history.
	Restore(ctx context.Context, versionID string) error

	// Delete removes a single snapshot.
	Delete(ctx context.Context, versionID string) error

	// List returns a document's snapshots, most recent first.
	List(ctx context.Context, documentID string) ([]models.Version, error)
}

type versionService struct {
	versionRepo versions.Repository
	docRepo     documents.Repository
	log         logging.Logger
	now         func() time.Time
}

// NewVersionService wires a VersionService over the local store.
func NewVersionService(versionRepo versions.Repository, docRepo documents.Repository, log logging.Logger) VersionService {
	return &versionService{
		versionRepo: versionRepo,
		docRepo:     docRepo,
		log:         log,
		now:         time.Now,
	}
}

func (s *versionService) Create(ctx context.Context, documentID string) (*models.Version, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	v := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		CreatedAt:  s.now(),
	}
	if err := s.versionRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("error saving version: %w", err)
	}
	return v, nil
}

func (s *versionService) Restore(ctx context.Context, versionID string) error {
	v, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return fmt.Errorf("error retrieving version: %w", err)
	}

	doc, err := s.docRepo.GetByID(ctx, v.DocumentID)
	if err != nil {
		return fmt.Errorf("error retrieving document: %w", err)
	}

	// safety snapshot before the destructive overwrite
	backup := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		CreatedAt:  s.now(),
	}
	if err := s.versionRepo.Create(ctx, backup); err != nil {
		return fmt.Errorf("error saving safety snapshot: %w", err)
	}

	doc.Title = v.Title
	doc.Content = v.Content
	doc.UpdatedAt = s.now()
	if err := s.docRepo.CreateOrUpdate(ctx, doc); err != nil {
		return fmt.Errorf("error restoring document: %w", err)
	}
	return nil
}

func (s *versionService) Delete(ctx context.Context, versionID string) error {
	if err := s.versionRepo.DeleteByID(ctx, versionID); err != nil {
		return fmt.Errorf("error deleting version: %w", err)
	}
	return nil
}

func (s *versionService) List(ctx context.Context, documentID string) ([]models.Version, error) {
	result, err := s.versionRepo.GetAllByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}
	return result, nil
}
