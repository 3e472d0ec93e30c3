// Package models defines the record types persisted by the local store and
// the derived read models exposed to the UI layer.
package models

import "time"

// MaxSharedWith bounds the number of addresses a document can be shared with.
const MaxSharedWith = 10

// Document is a rich-text document. Content holds serialized markup (HTML).
//
// FolderID, when non-nil, must reference an existing Folder; a dangling
// reference is treated as root. IsTutorial is a transient onboarding flag and
// is never reconciled with the remote.
type Document struct {
	ID         string    `json:"id" validate:"required"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UpdatedAt  time.Time `json:"updatedAt"`
	IsPrivate  bool      `json:"isPrivate"`
	IsFavorite bool      `json:"isFavorite"`
	IsShared   bool      `json:"isShared"`
	ShareToken string    `json:"shareToken,omitempty"`
	SharedWith []string  `json:"sharedWith" validate:"max=10,dive,email"`
	IsTutorial bool      `json:"isTutorial,omitempty"`
	FolderID   *string   `json:"folderId,omitempty"`
	Tags       []string  `json:"tags" validate:"dive,max=64"`
}

// Clone returns a deep copy. Slices and the folder pointer are duplicated so
// mutating the copy never aliases the original.
func (d *Document) Clone() *Document {
	c := *d
	if d.FolderID != nil {
		fid := *d.FolderID
		c.FolderID = &fid
	}
	c.SharedWith = append([]string(nil), d.SharedWith...)
	c.Tags = append([]string(nil), d.Tags...)
	return &c
}
