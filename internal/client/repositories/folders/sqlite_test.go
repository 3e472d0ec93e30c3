package folders

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
CREATE TABLE folders (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  parent_id TEXT,
  created_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestCreateOrUpdate_InsertAndRename(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	f := &models.Folder{ID: "f1", Name: "Work", CreatedAt: time.UnixMilli(1000)}
	require.NoError(t, r.CreateOrUpdate(ctx, f))

	got, err := r.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, f, got)

	parent := "f0"
	renamed := &models.Folder{ID: "f1", Name: "Projects", ParentID: &parent, CreatedAt: time.UnixMilli(9999)}
	require.NoError(t, r.CreateOrUpdate(ctx, renamed))

	got, err = r.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "Projects", got.Name)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, "f0", *got.ParentID)
	// created_at is immutable on conflict
	assert.Equal(t, time.UnixMilli(1000), got.CreatedAt)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDeleteByID_MissingIsNotAnError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, &models.Folder{ID: "f1", Name: "Work", CreatedAt: time.Now()}))
	require.NoError(t, r.DeleteByID(ctx, "f1"))
	require.NoError(t, r.DeleteByID(ctx, "f1"))

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGetAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.CreateOrUpdate(ctx, &models.Folder{ID: "f2", Name: "B", CreatedAt: time.Now()}))
	require.NoError(t, r.CreateOrUpdate(ctx, &models.Folder{ID: "f1", Name: "A", CreatedAt: time.Now()}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}
