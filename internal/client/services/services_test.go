package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"draftpad/internal/client/models"
	"draftpad/internal/client/schema"
	"draftpad/internal/client/session"
	"draftpad/internal/client/store"
	"draftpad/internal/common"
	"draftpad/internal/logging"

	_ "modernc.org/sqlite"
)

// fakeRemote is an in-memory stand-in for the remote document API.
type fakeRemote struct {
	mu      sync.Mutex
	docs    map[string]models.Document
	err     error
	fetched []string
	deleted [][]string
	batches [][]models.Folder
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: make(map[string]models.Document)}
}

func (f *fakeRemote) put(d models.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[d.ID] = d
}

func (f *fakeRemote) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeRemote) fetchedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func (f *fakeRemote) List(ctx context.Context) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Document
	for _, d := range f.docs {
		result = append(result, d)
	}
	return result, nil
}

func (f *fakeRemote) Get(ctx context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

func (f *fakeRemote) UpsertFolders(ctx context.Context, batch []models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, ids)
	return nil
}

func (f *fakeRemote) Share(ctx context.Context, id string, token string) error { return f.err }

func (f *fakeRemote) Unshare(ctx context.Context, id string) error { return f.err }

// fakeResolver resolves sharing tokens from a fixed map.
type fakeResolver struct {
	docs map[string]models.Document
	err  error
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[token]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &d, nil
}

// fakeTemplates serves system templates or fails.
type fakeTemplates struct {
	items []models.Template
	err   error
}

func (f *fakeTemplates) List(ctx context.Context) ([]models.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

// fakeNotifier records user notifications.
type fakeNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeNotifier) Notify(ctx context.Context, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, message)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

// fixture wires real repositories over an in-memory store with fakes for
// everything remote.
type fixture struct {
	store     *store.Store
	remote    *fakeRemote
	resolver  *fakeResolver
	catalog   *fakeTemplates
	notifier  *fakeNotifier
	session   *session.MemoryProvider
	tracker   *SyncTracker
	docs      DocumentService
	folders   FolderService
	versions  VersionService
	templates TemplateService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	log := logging.NewSlogLogger(logging.NewDiscardSlog())
	v := schema.New()

	f := &fixture{
		store:    s,
		remote:   newFakeRemote(),
		resolver: &fakeResolver{docs: map[string]models.Document{}},
		catalog:  &fakeTemplates{},
		notifier: &fakeNotifier{},
		session:  session.NewMemoryProvider(),
	}
	f.tracker = NewSyncTracker(s.Documents, f.remote, f.session, log, 5*time.Millisecond)
	f.docs = NewDocumentService(s.Documents, s.Folders, s.Versions, v, f.remote,
		f.resolver, f.session, f.notifier, f.tracker, log, "https://draftpad.example")
	f.folders = NewFolderService(s.DB, s.Folders, s.Documents, v, f.remote, f.session, log)
	f.versions = NewVersionService(s.Versions, s.Documents, log)
	f.templates = NewTemplateService(s.Templates, s.Documents, v, f.catalog, log)
	return f
}

func (f *fixture) login(plan session.Plan) {
	f.session.Login(session.Session{UserID: "u1", Email: "u1@example.com", Plan: plan})
}

func (f *fixture) mustCreate(t *testing.T, title string) *models.Document {
	t.Helper()
	doc, err := f.docs.Create(context.Background(), &models.Document{Title: title, Content: "<p>" + title + "</p>"})
	require.NoError(t, err)
	return doc
}
