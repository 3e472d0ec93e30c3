package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"draftpad/internal/client/models"
	"draftpad/internal/client/remote"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/templates"
	"draftpad/internal/client/schema"
	"draftpad/internal/logging"
)

// TemplateService manages user templates and exposes the remote system
// template catalog.
type TemplateService interface {
	// SaveAsTemplate clones a document's content into a new local template.
	// The source document is untouched.
	SaveAsTemplate(ctx context.Context, documentID, title, description string) (*models.Template, error)

	// ListUser returns the locally stored user templates.
	ListUser(ctx context.Context) ([]models.Template, error)

	// ListSystem fetches the public remote templates. Any failure yields an
	// empty slice: template browsing must never block editing.
	ListSystem(ctx context.Context) []models.Template

	// Delete removes a user template.
	Delete(ctx context.Context, id string) error

	// GetByID returns one user template or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Template, error)
}

type templateService struct {
	templateRepo templates.Repository
	docRepo      documents.Repository
	validator    *schema.Validator
	remote       remote.TemplatesAPI
	log          logging.Logger
	now          func() time.Time
}

// NewTemplateService wires a TemplateService over the local store and the
// public template endpoint.
func NewTemplateService(templateRepo templates.Repository, docRepo documents.Repository,
	validator *schema.Validator, api remote.TemplatesAPI, log logging.Logger) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		docRepo:      docRepo,
		validator:    validator,
		remote:       api,
		log:          log,
		now:          time.Now,
	}
}

func (s *templateService) SaveAsTemplate(ctx context.Context, documentID, title, description string) (*models.Template, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	t := &models.Template{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     doc.Content,
		Description: description,
		Tags:        append([]string(nil), doc.Tags...),
		UpdatedAt:   s.now(),
	}
	if t.Title == "" {
		t.Title = doc.Title
	}
	if err := s.validator.Template(t); err != nil {
		return nil, err
	}
	if err := s.templateRepo.CreateOrUpdate(ctx, t); err != nil {
		return nil, fmt.Errorf("error saving template: %w", err)
	}
	return t, nil
}

func (s *templateService) ListUser(ctx context.Context) ([]models.Template, error) {
	result, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	return result, nil
}

func (s *templateService) ListSystem(ctx context.Context) []models.Template {
	result, err := s.remote.List(ctx)
	if err != nil {
		s.log.Warn(ctx, "system template fetch failed", "error", err)
		return []models.Template{}
	}
	return result
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	if err := s.templateRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting template: %w", err)
	}
	return nil
}

func (s *templateService) GetByID(ctx context.Context, id string) (*models.Template, error) {
	t, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving template: %w", err)
	}
	return t, nil
}
