// Package legacy performs the one-time transfer of records from the old
// flat key-value storage file into the structured local store.
//
// The legacy file is a single JSON object with the keys "documents",
// "folders", "versions" and "templates", each holding a loosely-typed array.
// Entries are decoded leniently, pushed through the schema validator, and
// bulk-upserted; malformed entries are logged and dropped, never fatal.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"draftpad/internal/client/models"
	"draftpad/internal/client/repositories/documents"
	"draftpad/internal/client/repositories/folders"
	"draftpad/internal/client/repositories/templates"
	"draftpad/internal/client/repositories/versions"
	"draftpad/internal/client/schema"
	"draftpad/internal/client/store"
	"draftpad/internal/dbx"
	"draftpad/internal/logging"
)

// DoneKey is the metadata key recording migration completion.
const DoneKey = "legacy_migration_done"

type Runner struct {
	store     *store.Store
	validator *schema.Validator
	log       logging.Logger
	path      string
}

// NewRunner builds a Runner reading the legacy file at path.
func NewRunner(st *store.Store, v *schema.Validator, log logging.Logger, path string) *Runner {
	return &Runner{store: st, validator: v, log: log, path: path}
}

// Run executes the migration once per device. A set completion flag
// short-circuits immediately. Returns whether the migration actually ran:
// false means "already migrated" or "nothing to migrate".
func (r *Runner) Run(ctx context.Context) (bool, error) {
	done, err := r.store.Metadata.Get(ctx, DoneKey)
	if err != nil {
		return false, fmt.Errorf("failed to read migration flag: %w", err)
	}
	if len(done) > 0 {
		return false, nil
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		// Nothing to migrate on this device; remember that.
		if err := r.store.Metadata.Set(ctx, DoneKey, []byte("1")); err != nil {
			return false, fmt.Errorf("failed to set migration flag: %w", err)
		}
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read legacy storage: %w", err)
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		r.log.Warn(ctx, "legacy storage is not valid JSON, skipping", "path", r.path, "error", err)
		flat = nil
	}

	docs := r.collectDocuments(ctx, flat["documents"])
	dirs := r.collectFolders(ctx, flat["folders"])
	snaps := r.collectVersions(ctx, flat["versions"])
	tpls := r.collectTemplates(ctx, flat["templates"])

	err = dbx.WithTx(ctx, r.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		docRepo := documents.NewSQLiteRepository(tx)
		for _, d := range docs {
			if err := docRepo.CreateOrUpdate(ctx, d); err != nil {
				return err
			}
		}
		folderRepo := folders.NewSQLiteRepository(tx)
		for _, f := range dirs {
			if err := folderRepo.CreateOrUpdate(ctx, f); err != nil {
				return err
			}
		}
		versionRepo := versions.NewSQLiteRepository(tx)
		for _, v := range snaps {
			if err := versionRepo.Create(ctx, v); err != nil {
				return err
			}
		}
		templateRepo := templates.NewSQLiteRepository(tx)
		for _, t := range tpls {
			if err := templateRepo.CreateOrUpdate(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to import legacy records: %w", err)
	}

	if err := r.store.Metadata.Set(ctx, DoneKey, []byte("1")); err != nil {
		return false, fmt.Errorf("failed to set migration flag: %w", err)
	}

	r.log.Info(ctx, "legacy migration complete",
		"documents", len(docs), "folders", len(dirs), "versions", len(snaps), "templates", len(tpls))
	return true, nil
}

func (r *Runner) collectDocuments(ctx context.Context, raw json.RawMessage) []*models.Document {
	var result []*models.Document
	for _, entry := range splitArray(raw) {
		var ld legacyDocument
		if err := json.Unmarshal(entry, &ld); err != nil {
			r.log.Warn(ctx, "dropping malformed legacy document", "error", err)
			continue
		}
		d := ld.toModel()
		if err := r.validator.Document(d); err != nil {
			r.log.Warn(ctx, "dropping invalid legacy document", "error", err)
			continue
		}
		result = append(result, d)
	}
	return result
}

func (r *Runner) collectFolders(ctx context.Context, raw json.RawMessage) []*models.Folder {
	var result []*models.Folder
	for _, entry := range splitArray(raw) {
		var lf legacyFolder
		if err := json.Unmarshal(entry, &lf); err != nil {
			r.log.Warn(ctx, "dropping malformed legacy folder", "error", err)
			continue
		}
		f := lf.toModel()
		if err := r.validator.Folder(f); err != nil {
			r.log.Warn(ctx, "dropping invalid legacy folder", "error", err)
			continue
		}
		result = append(result, f)
	}
	return result
}

func (r *Runner) collectVersions(ctx context.Context, raw json.RawMessage) []*models.Version {
	var result []*models.Version
	for _, entry := range splitArray(raw) {
		var lv legacyVersion
		if err := json.Unmarshal(entry, &lv); err != nil {
			r.log.Warn(ctx, "dropping malformed legacy version", "error", err)
			continue
		}
		v := lv.toModel()
		if err := r.validator.Version(v); err != nil {
			r.log.Warn(ctx, "dropping invalid legacy version", "error", err)
			continue
		}
		result = append(result, v)
	}
	return result
}

func (r *Runner) collectTemplates(ctx context.Context, raw json.RawMessage) []*models.Template {
	var result []*models.Template
	for _, entry := range splitArray(raw) {
		var lt legacyTemplate
		if err := json.Unmarshal(entry, &lt); err != nil {
			r.log.Warn(ctx, "dropping malformed legacy template", "error", err)
			continue
		}
		t := lt.toModel()
		if err := r.validator.Template(t); err != nil {
			r.log.Warn(ctx, "dropping invalid legacy template", "error", err)
			continue
		}
		result = append(result, t)
	}
	return result
}

// splitArray decodes raw into individual elements. A missing or malformed
// array yields nothing rather than an error.
func splitArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	return entries
}
