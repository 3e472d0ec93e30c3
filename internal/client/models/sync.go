package models

import "time"

// SyncStatus is the per-document synchronization verdict. It is derived by
// comparing local and remote timestamps and is never persisted.
type SyncStatus string

const (
	// SyncIdle: no session, nothing to reconcile.
	SyncIdle SyncStatus = "idle"
	// SyncSyncing: a reconciliation is in flight.
	SyncSyncing SyncStatus = "syncing"
	// SyncSynced: local and remote were compared successfully.
	SyncSynced SyncStatus = "synced"
	// SyncError: the last reconciliation attempt failed. Non-fatal; the
	// local copy remains usable.
	SyncError SyncStatus = "error"
)

// SyncState is the derived read model for one document.
//
// HasUnsavedChanges is set when the remote copy is absent or older than the
// local one: the cloud is reachable but stale, which is still SyncSynced,
// not SyncError.
type SyncState struct {
	Status            SyncStatus `json:"status"`
	LastSyncedAt      time.Time  `json:"lastSyncedAt"`
	HasUnsavedChanges bool       `json:"hasUnsavedChanges"`
}
