package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftpad/internal/client/models"
	"draftpad/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE documents (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  content TEXT NOT NULL DEFAULT '',
  updated_at INTEGER NOT NULL,
  is_private INTEGER NOT NULL DEFAULT 0,
  is_favorite INTEGER NOT NULL DEFAULT 0,
  is_shared INTEGER NOT NULL DEFAULT 0,
  share_token TEXT NOT NULL DEFAULT '',
  shared_with TEXT NOT NULL DEFAULT '[]',
  is_tutorial INTEGER NOT NULL DEFAULT 0,
  folder_id TEXT,
  tags TEXT NOT NULL DEFAULT '[]'
);
`)
	require.NoError(t, err)

	return db
}

func sampleDoc(id string) *models.Document {
	fid := "f1"
	return &models.Document{
		ID:         id,
		Title:      "Meeting notes",
		Content:    "<p>agenda</p>",
		UpdatedAt:  time.UnixMilli(1700000000000),
		IsPrivate:  true,
		IsFavorite: true,
		SharedWith: []string{"a@example.com"},
		FolderID:   &fid,
		Tags:       []string{"work"},
	}
}

func TestCreateOrUpdate_InsertThenGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	want := sampleDoc("d1")
	require.NoError(t, r.CreateOrUpdate(ctx, want))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreateOrUpdate_LastWriteWins(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sampleDoc("d1")))

	updated := sampleDoc("d1")
	updated.Title = "Renamed"
	updated.FolderID = nil
	updated.IsShared = true
	updated.ShareToken = "tok"
	require.NoError(t, r.CreateOrUpdate(ctx, updated))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Nil(t, got.FolderID)
	assert.True(t, got.IsShared)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetByShareToken(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	shared := sampleDoc("d1")
	shared.IsShared = true
	shared.ShareToken = "tok-1"
	require.NoError(t, r.CreateOrUpdate(ctx, shared))

	// token of a document no longer shared must not resolve
	revoked := sampleDoc("d2")
	revoked.ShareToken = "tok-2"
	require.NoError(t, r.CreateOrUpdate(ctx, revoked))

	got, err := r.GetByShareToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "d1", got.ID)

	_, err = r.GetByShareToken(ctx, "tok-2")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = r.GetByShareToken(ctx, "")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, sampleDoc("d1")))
	require.NoError(t, r.DeleteByID(ctx, "d1"))

	err := r.DeleteByID(ctx, "d1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetAll_OrderedByUpdatedAt(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	older := sampleDoc("old")
	older.UpdatedAt = time.UnixMilli(1000)
	newer := sampleDoc("new")
	newer.UpdatedAt = time.UnixMilli(2000)
	require.NoError(t, r.CreateOrUpdate(ctx, older))
	require.NoError(t, r.CreateOrUpdate(ctx, newer))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestClearFolderRefs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	inFolder := sampleDoc("d1")
	other := sampleDoc("d2")
	otherFolder := "f2"
	other.FolderID = &otherFolder
	require.NoError(t, r.CreateOrUpdate(ctx, inFolder))
	require.NoError(t, r.CreateOrUpdate(ctx, other))

	require.NoError(t, r.ClearFolderRefs(ctx, []string{"f1"}))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got.FolderID)

	got, err = r.GetByID(ctx, "d2")
	require.NoError(t, err)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, "f2", *got.FolderID)
}
