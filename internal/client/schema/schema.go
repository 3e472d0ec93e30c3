// Package schema is the validation boundary between durable storage and the
// rest of the client. Every record read from legacy storage, and every record
// written by the user, passes through here. On-device data can drift across
// app versions, so records are normalized to safe defaults where possible and
// rejected with common.ErrValidation where not.
package schema

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"draftpad/internal/client/models"
	"draftpad/internal/common"
)

// DefaultTitle is assigned to records persisted without one.
const DefaultTitle = "Untitled"

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New() *Validator {
	return &Validator{
		validate: validator.New(),
		now:      time.Now,
	}
}

// Document normalizes d in place and validates it against its contract.
// Normalization: empty title defaults, zero UpdatedAt set to now, nil slices
// replaced with empty ones, SharedWith truncated to the allowed maximum.
// A missing id cannot be repaired and fails validation.
func (v *Validator) Document(d *models.Document) error {
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = v.now()
	}
	if d.SharedWith == nil {
		d.SharedWith = []string{}
	}
	if len(d.SharedWith) > models.MaxSharedWith {
		d.SharedWith = d.SharedWith[:models.MaxSharedWith]
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.FolderID != nil && *d.FolderID == "" {
		d.FolderID = nil
	}
	if err := v.validate.Struct(d); err != nil {
		return fmt.Errorf("%w: document %q: %v", common.ErrValidation, d.ID, err)
	}
	return nil
}

// Folder normalizes and validates a folder record.
func (v *Validator) Folder(f *models.Folder) error {
	if f.Name == "" {
		f.Name = DefaultTitle
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = v.now()
	}
	if f.ParentID != nil && *f.ParentID == "" {
		f.ParentID = nil
	}
	if err := v.validate.Struct(f); err != nil {
		return fmt.Errorf("%w: folder %q: %v", common.ErrValidation, f.ID, err)
	}
	return nil
}

// Version validates a snapshot record. Snapshots are immutable, so only the
// zero timestamp is repaired.
func (v *Validator) Version(s *models.Version) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = v.now()
	}
	if err := v.validate.Struct(s); err != nil {
		return fmt.Errorf("%w: version %q: %v", common.ErrValidation, s.ID, err)
	}
	return nil
}

// Template normalizes and validates a template record.
func (v *Validator) Template(t *models.Template) error {
	if t.Title == "" {
		t.Title = DefaultTitle
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = v.now()
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if err := v.validate.Struct(t); err != nil {
		return fmt.Errorf("%w: template %q: %v", common.ErrValidation, t.ID, err)
	}
	return nil
}
