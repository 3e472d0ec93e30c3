// Package store bootstraps the local persistent store: it opens the SQLite
// database, applies the embedded goose migrations, and bundles the
// per-collection repositories behind a single handle.
//
// The local store is the single source of truth while offline. Open failures
// are reported as common.ErrStorageUnavailable so callers can degrade to
// session-only behavior instead of crashing.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"draftpad/internal/client/migrations"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/folders"
	"draftpad/internal/client/repositories/metadata"
	"draftpad/internal/client/repositories/templates"
	"draftpad/internal/client/repositories/versions"
	"draftpad/internal/common"
)

// Store owns the database handle and the repository set.
type Store struct {
	DB        *sql.DB
	Documents documents.Repository
	Folders   folders.Repository
	Versions  versions.Repository
	Templates templates.Repository
	Metadata  metadata.Repository
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the local database at dsn, applies
// migrations, and returns the repository bundle. Any failure here means the
// host offers no usable persistent storage and is wrapped as
// common.ErrStorageUnavailable.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	return &Store{
		DB:        db,
		Documents: documents.NewSQLiteRepository(db),
		Folders:   folders.NewSQLiteRepository(db),
		Versions:  versions.NewSQLiteRepository(db),
		Templates: templates.NewSQLiteRepository(db),
		Metadata:  metadata.NewSQLiteRepository(db),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
