package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"draftpad/internal/client/models"
	"draftpad/internal/client/remote"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/folders"
	"draftpad/internal/client/repositories/versions"
	"draftpad/internal/client/schema"
	"draftpad/internal/client/session"
	"draftpad/internal/common"
	"draftpad/internal/logging"
)

// FreePlanMaxDocuments is the document-count cap for free-tier accounts.
const FreePlanMaxDocuments = 5

// Unlimited is returned by Remaining for accounts without a document cap.
const Unlimited = -1

// DocumentService is the orchestration core: CRUD, favorites, the sharing
// token lifecycle, the document-count limit policy, and the entry point into
// the sync status machine. All writes go through the local store first;
// remote calls are best-effort.
type DocumentService interface {
	// Create validates and stores a new document, gated on CheckLimit.
	Create(ctx context.Context, d *models.Document) (*models.Document, error)

	// Update validates and stores a changed document, refreshing UpdatedAt.
	Update(ctx context.Context, d *models.Document) error

	// Delete removes a document, all its versions, and the remote copy
	// (best-effort).
	Delete(ctx context.Context, id string) error

	// ToggleFavorite flips the favorite flag and returns the new value.
	ToggleFavorite(ctx context.Context, id string) (bool, error)

	// List returns all documents, most recently changed first.
	List(ctx context.Context) ([]models.Document, error)

	// GetByID returns one document or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// SetCurrent marks the document active in the editor and schedules a
	// debounced sync status check for it.
	SetCurrent(ctx context.Context, id string)

	// SyncState reports the derived sync status for a document.
	SyncState(id string) models.SyncState

	// Share marks the document shared, mints or reuses its token, and
	// returns the stable share URL.
	Share(ctx context.Context, id string) (string, error)

	// StopSharing clears the shared flag and invalidates the token.
	StopSharing(ctx context.Context, id string) error

	// GetShared resolves a sharing token to a read-only document. Unknown
	// or expired tokens yield (nil, nil), never an error.
	GetShared(ctx context.Context, token string) (*models.Document, error)

	// Download renders a document as html, md or txt and returns the bytes
	// plus a suggested filename.
	Download(ctx context.Context, id, format string) ([]byte, string, error)

	// CanCreate reports whether the limit policy admits one more document.
	CanCreate(ctx context.Context) (bool, error)

	// CheckLimit is CanCreate plus a user-facing notification on refusal.
	// Callers must gate creation on its result.
	CheckLimit(ctx context.Context) (bool, error)

	// Remaining returns how many documents can still be created, or
	// Unlimited.
	Remaining(ctx context.Context) (int, error)
}

type documentService struct {
	docRepo      documents.Repository
	folderRepo   folders.Repository
	versionRepo  versions.Repository
	validator    *schema.Validator
	remote       remote.DocumentsAPI
	resolver     remote.SharedResolver
	session      session.Provider
	notifier     Notifier
	tracker      *SyncTracker
	log          logging.Logger
	shareBaseURL string
	now          func() time.Time
}

// NewDocumentService wires the document manager.
func NewDocumentService(docRepo documents.Repository, folderRepo folders.Repository,
	versionRepo versions.Repository, validator *schema.Validator, api remote.DocumentsAPI,
	resolver remote.SharedResolver, sess session.Provider, notifier Notifier,
	tracker *SyncTracker, log logging.Logger, shareBaseURL string) DocumentService {
	return &documentService{
		docRepo:      docRepo,
		folderRepo:   folderRepo,
		versionRepo:  versionRepo,
		validator:    validator,
		remote:       api,
		resolver:     resolver,
		session:      sess,
		notifier:     notifier,
		tracker:      tracker,
		log:          log,
		shareBaseURL: shareBaseURL,
		now:          time.Now,
	}
}

func (s *documentService) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	ok, err := s.CheckLimit(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrLimitReached
	}

	d = d.Clone()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UpdatedAt = s.now()
	if err := s.validator.Document(d); err != nil {
		return nil, err
	}
	if err := s.resolveFolder(ctx, d); err != nil {
		return nil, err
	}

	if err := s.docRepo.CreateOrUpdate(ctx, d); err != nil {
		return nil, fmt.Errorf("error saving document: %w", err)
	}
	return d, nil
}

func (s *documentService) Update(ctx context.Context, d *models.Document) error {
	if _, err := s.docRepo.GetByID(ctx, d.ID); err != nil {
		return fmt.Errorf("error retrieving document: %w", err)
	}

	d = d.Clone()
	d.UpdatedAt = s.now()
	if err := s.validator.Document(d); err != nil {
		return err
	}
	if err := s.resolveFolder(ctx, d); err != nil {
		return err
	}

	if err := s.docRepo.CreateOrUpdate(ctx, d); err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}
	s.tracker.Schedule(ctx, d.ID)
	return nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.versionRepo.DeleteByDocument(ctx, id); err != nil {
		return fmt.Errorf("error deleting versions: %w", err)
	}
	if err := s.docRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("error deleting document: %w", err)
	}
	s.tracker.Forget(id)

	if s.session.Current() != nil {
		if err := s.remote.Delete(ctx, []string{id}); err != nil {
			s.log.Warn(ctx, "remote delete failed", "id", id, "error", err)
		}
	}
	return nil
}

func (s *documentService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error retrieving document: %w", err)
	}

	doc.IsFavorite = !doc.IsFavorite
	if err := s.docRepo.CreateOrUpdate(ctx, doc); err != nil {
		return false, fmt.Errorf("error saving document: %w", err)
	}
	return doc.IsFavorite, nil
}

func (s *documentService) List(ctx context.Context) ([]models.Document, error) {
	result, err := s.docRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	return result, nil
}

func (s *documentService) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}
	return doc, nil
}

func (s *documentService) SetCurrent(ctx context.Context, id string) {
	s.tracker.SetCurrent(ctx, id)
}

func (s *documentService) SyncState(id string) models.SyncState {
	return s.tracker.State(id)
}

func (s *documentService) Share(ctx context.Context, id string) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("error retrieving document: %w", err)
	}

	if doc.ShareToken == "" {
		doc.ShareToken = uuid.NewString()
	}
	doc.IsShared = true
	if err := s.docRepo.CreateOrUpdate(ctx, doc); err != nil {
		return "", fmt.Errorf("error saving document: %w", err)
	}

	if s.session.Current() != nil {
		if err := s.remote.Share(ctx, doc.ID, doc.ShareToken); err != nil {
			s.log.Warn(ctx, "remote share failed", "id", id, "error", err)
		}
	}
	return s.shareBaseURL + "/shared/" + doc.ShareToken, nil
}

func (s *documentService) StopSharing(ctx context.Context, id string) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("error retrieving document: %w", err)
	}

	doc.IsShared = false
	doc.ShareToken = ""
	if err := s.docRepo.CreateOrUpdate(ctx, doc); err != nil {
		return fmt.Errorf("error saving document: %w", err)
	}

	if s.session.Current() != nil {
		if err := s.remote.Unshare(ctx, id); err != nil {
			s.log.Warn(ctx, "remote unshare failed", "id", id, "error", err)
		}
	}
	return nil
}

func (s *documentService) GetShared(ctx context.Context, token string) (*models.Document, error) {
	doc, err := s.resolver.Resolve(ctx, token)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		// remote unreachable: fall back to the local copy so a device that
		// owns the document can still render its own shared view
		s.log.Warn(ctx, "shared resolver failed, trying local", "error", err)
	}

	doc, err = s.docRepo.GetByShareToken(ctx, token)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving token: %w", err)
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id, format string) ([]byte, string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("error retrieving document: %w", err)
	}
	return renderDocument(doc, format)
}

func (s *documentService) CanCreate(ctx context.Context) (bool, error) {
	if s.planUnlimited() {
		return true, nil
	}
	count, err := s.docRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("error counting documents: %w", err)
	}
	return count < FreePlanMaxDocuments, nil
}

func (s *documentService) CheckLimit(ctx context.Context) (bool, error) {
	ok, err := s.CanCreate(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		s.notifier.Notify(ctx, fmt.Sprintf("You have reached the limit of %d documents. Upgrade for unlimited documents.", FreePlanMaxDocuments))
	}
	return ok, nil
}

func (s *documentService) Remaining(ctx context.Context) (int, error) {
	if s.planUnlimited() {
		return Unlimited, nil
	}
	count, err := s.docRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting documents: %w", err)
	}
	remaining := FreePlanMaxDocuments - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *documentService) planUnlimited() bool {
	sess := s.session.Current()
	return sess != nil && sess.Plan == session.PlanUnlimited
}

// resolveFolder enforces the folder reference invariant: a folder id that
// does not resolve is treated as root rather than persisted dangling.
func (s *documentService) resolveFolder(ctx context.Context, d *models.Document) error {
	if d.FolderID == nil {
		return nil
	}
	_, err := s.folderRepo.GetByID(ctx, *d.FolderID)
	if errors.Is(err, common.ErrNotFound) {
		d.FolderID = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking folder: %w", err)
	}
	return nil
}
