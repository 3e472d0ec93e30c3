package models

import "time"

// Template is a document-shaped record used to seed new documents.
//
// User templates live in the local store and follow the document lifecycle.
// System templates are fetched from the remote, are read-only, and are never
// persisted as user-owned records; IsSystem distinguishes them in memory.
type Template struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags" validate:"dive,max=64"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsSystem    bool      `json:"isSystem,omitempty"`
}
