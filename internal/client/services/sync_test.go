package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftpad/internal/client/models"
	"draftpad/internal/client/session"
)

func waitForStatus(t *testing.T, f *fixture, id string, want models.SyncStatus) models.SyncState {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.tracker.State(id).Status == want
	}, time.Second, 2*time.Millisecond)
	return f.tracker.State(id)
}

func TestSync_NoSessionStaysIdle(t *testing.T) {
	f := newFixture(t)

	doc := f.mustCreate(t, "offline")
	f.docs.SetCurrent(context.Background(), doc.ID)

	assert.Equal(t, models.SyncIdle, f.docs.SyncState(doc.ID).Status)

	// nothing should ever fire without a session
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, models.SyncIdle, f.docs.SyncState(doc.ID).Status)
	assert.Empty(t, f.remote.fetchedIDs())
}

func TestSync_RemoteUpToDateYieldsSynced(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "saved")
	remoteCopy := doc.Clone()
	remoteCopy.UpdatedAt = time.Now().Add(time.Minute)
	f.remote.put(*remoteCopy)

	f.docs.SetCurrent(ctx, doc.ID)
	assert.Equal(t, models.SyncSyncing, f.docs.SyncState(doc.ID).Status)

	state := waitForStatus(t, f, doc.ID, models.SyncSynced)
	assert.False(t, state.HasUnsavedChanges)
	assert.False(t, state.LastSyncedAt.IsZero())
}

func TestSync_StaleRemoteIsSyncedWithUnsavedChanges(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "edited")
	remoteCopy := doc.Clone()
	remoteCopy.UpdatedAt = doc.UpdatedAt.Add(-time.Hour)
	f.remote.put(*remoteCopy)

	f.docs.SetCurrent(ctx, doc.ID)

	state := waitForStatus(t, f, doc.ID, models.SyncSynced)
	assert.True(t, state.HasUnsavedChanges)
}

func TestSync_NeverUploadedIsSyncedWithUnsavedChanges(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "local only")
	f.docs.SetCurrent(ctx, doc.ID)

	state := waitForStatus(t, f, doc.ID, models.SyncSynced)
	assert.True(t, state.HasUnsavedChanges)
}

func TestSync_RemoteFailureYieldsError(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "unlucky")
	f.remote.fail(assert.AnError)

	f.docs.SetCurrent(ctx, doc.ID)

	waitForStatus(t, f, doc.ID, models.SyncError)
}

func TestSync_SwitchingDocumentsCancelsPendingCheck(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	a := f.mustCreate(t, "first")
	b := f.mustCreate(t, "second")

	f.docs.SetCurrent(ctx, a.ID)
	f.docs.SetCurrent(ctx, b.ID)

	waitForStatus(t, f, b.ID, models.SyncSynced)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []string{b.ID}, f.remote.fetchedIDs())
}

func TestSync_LogoutIdlesTracking(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "signed in")
	f.docs.SetCurrent(ctx, doc.ID)
	waitForStatus(t, f, doc.ID, models.SyncSynced)

	f.session.Logout()
	f.tracker.OnSessionChange(ctx)

	assert.Equal(t, models.SyncIdle, f.docs.SyncState(doc.ID).Status)
}

func TestSync_DeletedDocumentIsForgotten(t *testing.T) {
	f := newFixture(t)
	f.login(session.PlanFree)
	ctx := context.Background()

	doc := f.mustCreate(t, "gone soon")
	f.docs.SetCurrent(ctx, doc.ID)
	require.NoError(t, f.docs.Delete(ctx, doc.ID))

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, models.SyncIdle, f.docs.SyncState(doc.ID).Status)
}
