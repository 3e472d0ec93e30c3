package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"draftpad/internal/client/models"
	"draftpad/internal/client/remote"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/session"
	"draftpad/internal/common"
	"draftpad/internal/logging"
)

// DefaultDebounce coalesces rapid document switches into one remote check.
const DefaultDebounce = time.Second

const reconcileTimeout = 10 * time.Second

// SyncTracker derives the per-document sync status by comparing the local
// UpdatedAt against the remote copy's.
//
// State machine: idle (no session) → syncing (debounced check scheduled or
// in flight) → synced or error. A reachable remote whose copy is missing or
// older than local still yields synced, with HasUnsavedChanges set: the
// cloud is stale, not broken. Remote content is never written back to the
// local store here; local edits are never silently discarded.
//
// Scheduling: one pending timer at a time, keyed to the current document.
// Switching documents or rescheduling cancels the pending timer: a stale
// check firing for a document the user already left would waste a remote
// call and could clobber fresher state. A fetch that completes after the
// current document changed is discarded for the same reason.
type SyncTracker struct {
	docRepo documents.Repository
	remote  remote.DocumentsAPI
	session session.Provider
	log     logging.Logger

	debounce time.Duration
	now      func() time.Time

	mu      sync.Mutex
	states  map[string]models.SyncState
	current string
	timer   *time.Timer
}

// NewSyncTracker builds a tracker. debounce <= 0 selects DefaultDebounce.
func NewSyncTracker(docRepo documents.Repository, api remote.DocumentsAPI,
	sess session.Provider, log logging.Logger, debounce time.Duration) *SyncTracker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SyncTracker{
		docRepo:  docRepo,
		remote:   api,
		session:  sess,
		log:      log,
		debounce: debounce,
		now:      time.Now,
		states:   make(map[string]models.SyncState),
	}
}

// State returns the derived sync state for a document. Untracked documents
// report idle.
func (t *SyncTracker) State(id string) models.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.states[id]; ok {
		return s
	}
	return models.SyncState{Status: models.SyncIdle}
}

// SetCurrent makes id the active document and schedules its staleness check,
// canceling any check pending for the previous document.
func (t *SyncTracker) SetCurrent(ctx context.Context, id string) {
	t.mu.Lock()
	t.current = id
	t.mu.Unlock()
	t.Schedule(ctx, id)
}

// Schedule requests a debounced reconciliation for id. Only the current
// document is ever checked; requests for other documents are ignored.
func (t *SyncTracker) Schedule(ctx context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if id != t.current {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}

	if t.session.Current() == nil {
		t.states[id] = models.SyncState{Status: models.SyncIdle}
		return
	}

	prev := t.states[id]
	t.states[id] = models.SyncState{
		Status:            models.SyncSyncing,
		LastSyncedAt:      prev.LastSyncedAt,
		HasUnsavedChanges: prev.HasUnsavedChanges,
	}
	t.timer = time.AfterFunc(t.debounce, func() { t.reconcile(id) })
}

// OnSessionChange re-evaluates the current document after login/logout.
func (t *SyncTracker) OnSessionChange(ctx context.Context) {
	t.mu.Lock()
	id := t.current
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.session.Current() == nil {
		// logout idles everything; nothing left to compare against
		t.states = make(map[string]models.SyncState)
	}
	t.mu.Unlock()

	if id != "" {
		t.Schedule(ctx, id)
	}
}

// Forget drops tracking state for a deleted document.
func (t *SyncTracker) Forget(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, id)
	if t.current == id {
		t.current = ""
		if t.timer != nil {
			t.timer.Stop()
			t.timer = nil
		}
	}
}

// reconcile runs in the timer goroutine. Failures degrade the status to
// error and are otherwise swallowed: a remote outage must never surface
// beyond the sync indicator.
func (t *SyncTracker) reconcile(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if t.session.Current() == nil {
		t.setState(id, models.SyncState{Status: models.SyncIdle})
		return
	}

	local, err := t.docRepo.GetByID(ctx, id)
	if err != nil {
		// document vanished between scheduling and firing
		t.Forget(id)
		return
	}

	state := t.compare(ctx, local)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != id {
		// user moved on while the fetch was in flight; result is stale
		return
	}
	t.states[id] = state
}

func (t *SyncTracker) compare(ctx context.Context, local *models.Document) models.SyncState {
	rem, err := t.remote.Get(ctx, local.ID)
	switch {
	case err == nil && !rem.UpdatedAt.Before(local.UpdatedAt):
		return models.SyncState{Status: models.SyncSynced, LastSyncedAt: t.now()}
	case err == nil:
		// cloud reachable but behind local: stale, not broken
		return models.SyncState{Status: models.SyncSynced, LastSyncedAt: t.now(), HasUnsavedChanges: true}
	default:
		if isNotFound(err) {
			// never uploaded yet; local is ahead of a reachable cloud
			return models.SyncState{Status: models.SyncSynced, LastSyncedAt: t.now(), HasUnsavedChanges: true}
		}
		t.log.Warn(ctx, "sync check failed", "id", local.ID, "error", err)
		prev := t.State(local.ID)
		return models.SyncState{Status: models.SyncError, LastSyncedAt: prev.LastSyncedAt, HasUnsavedChanges: prev.HasUnsavedChanges}
	}
}

func (t *SyncTracker) setState(id string, s models.SyncState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = s
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
