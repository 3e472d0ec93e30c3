package services

import (
	"context"
	"database/sql"
	"fmt"

	"draftpad/internal/client/models"
	"draftpad/internal/client/remote"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/folders"
	"draftpad/internal/client/schema"
	"draftpad/internal/client/session"
	"draftpad/internal/dbx"
	"draftpad/internal/logging"
)

// RootName is the display name of the implicit root breadcrumb.
const RootName = "Home"

// FolderService maintains the folder tree.
type FolderService interface {
	// List returns all folders.
	List(ctx context.Context) ([]models.Folder, error)

	// UpsertMany validates and writes a folder batch in one transaction,
	// then pushes it to the remote best-effort.
	UpsertMany(ctx context.Context, batch []models.Folder) error

	// Delete removes the given folders and every descendant. Documents in
	// removed folders are reassigned to the root.
	Delete(ctx context.Context, ids []string) error

	// Breadcrumbs derives the ordered path root→…→folder for a document.
	// A document without a folder yields the root entry alone.
	Breadcrumbs(ctx context.Context, documentID string) ([]models.Breadcrumb, error)
}

type folderService struct {
	db         *sql.DB
	folderRepo folders.Repository
	docRepo    documents.Repository
	validator  *schema.Validator
	remote     remote.DocumentsAPI
	session    session.Provider
	log        logging.Logger
}

// NewFolderService wires a FolderService over the local store. remote and
// session may not be nil; pass a session provider that returns nil for
// local-only operation.
func NewFolderService(db *sql.DB, folderRepo folders.Repository, docRepo documents.Repository,
	validator *schema.Validator, api remote.DocumentsAPI, sess session.Provider, log logging.Logger) FolderService {
	return &folderService{
		db:         db,
		folderRepo: folderRepo,
		docRepo:    docRepo,
		validator:  validator,
		remote:     api,
		session:    sess,
		log:        log,
	}
}

func (s *folderService) List(ctx context.Context) ([]models.Folder, error) {
	result, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing folders: %w", err)
	}
	return result, nil
}

func (s *folderService) UpsertMany(ctx context.Context, batch []models.Folder) error {
	for i := range batch {
		if err := s.validator.Folder(&batch[i]); err != nil {
			return err
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := folders.NewSQLiteRepository(tx)
		for i := range batch {
			if err := repo.CreateOrUpdate(ctx, &batch[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error saving folders: %w", err)
	}

	if s.session.Current() != nil {
		if err := s.remote.UpsertFolders(ctx, batch); err != nil {
			s.log.Warn(ctx, "folder push failed, will retry on next sync", "error", err)
		}
	}
	return nil
}

func (s *folderService) Delete(ctx context.Context, ids []string) error {
	all, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading folders: %w", err)
	}

	doomed := collectDescendants(all, ids)
	if len(doomed) == 0 {
		return nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := documents.NewSQLiteRepository(tx).ClearFolderRefs(ctx, doomed); err != nil {
			return err
		}
		repo := folders.NewSQLiteRepository(tx)
		for _, id := range doomed {
			if err := repo.DeleteByID(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error deleting folders: %w", err)
	}
	return nil
}

func (s *folderService) Breadcrumbs(ctx context.Context, documentID string) ([]models.Breadcrumb, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving document: %w", err)
	}

	root := models.Breadcrumb{ID: "", Name: RootName}
	if doc.FolderID == nil {
		return []models.Breadcrumb{root}, nil
	}

	all, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading folders: %w", err)
	}
	byID := make(map[string]models.Folder, len(all))
	for _, f := range all {
		byID[f.ID] = f
	}

	// Walk the parent chain bottom-up. The persisted graph is not proven
	// acyclic, so the walk is bounded by the folder count and a visited set;
	// on corruption it truncates instead of looping.
	var chain []models.Breadcrumb
	visited := make(map[string]bool, len(all))
	next := *doc.FolderID
	for hops := 0; hops < len(all); hops++ {
		f, ok := byID[next]
		if !ok || visited[f.ID] {
			break
		}
		visited[f.ID] = true
		chain = append(chain, models.Breadcrumb{ID: f.ID, Name: f.Name})
		if f.ParentID == nil {
			break
		}
		next = *f.ParentID
	}

	result := make([]models.Breadcrumb, 0, len(chain)+1)
	result = append(result, root)
	for i := len(chain) - 1; i >= 0; i-- {
		result = append(result, chain[i])
	}
	return result, nil
}

// collectDescendants expands ids to include every reachable descendant,
// using an iterative traversal with a visited set so that corrupt parent
// cycles cannot recurse forever.
func collectDescendants(all []models.Folder, ids []string) []string {
	children := make(map[string][]string, len(all))
	exists := make(map[string]bool, len(all))
	for _, f := range all {
		exists[f.ID] = true
		if f.ParentID != nil {
			children[*f.ParentID] = append(children[*f.ParentID], f.ID)
		}
	}

	visited := make(map[string]bool, len(ids))
	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if exists[id] && !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	var result []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		result = append(result, id)
		for _, child := range children[id] {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}
	return result
}
