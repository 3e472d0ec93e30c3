package models

import "time"

// Folder is a node in the user's folder tree. ParentID is nil for top-level
// folders. The parent graph is expected to be acyclic but is never trusted to
// be: traversals must carry their own cycle guard.
type Folder struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Breadcrumb is one step of the path from the root to a document's folder.
// The root entry carries an empty ID.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
