package models

import "time"

// Version is an immutable point-in-time snapshot of a document's title and
// content. Versions are never mutated after creation; restoring one copies
// its content back onto the live document and leaves the snapshot in place.
type Version struct {
	ID         string    `json:"id" validate:"required"`
	DocumentID string    `json:"documentId" validate:"required"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
