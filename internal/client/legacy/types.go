package legacy

import (
	"encoding/json"
	"time"

	"draftpad/internal/client/models"
)

// flexTime tolerates the timestamp formats found in legacy storage:
// RFC3339 strings, unix-millisecond numbers, or nothing at all. The schema
// validator later repairs zero values.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil // unparseable stamps become zero, not fatal
		}
		t.Time = parsed
	case float64:
		t.Time = time.UnixMilli(int64(value))
	}
	return nil
}

type legacyDocument struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	UpdatedAt  flexTime `json:"updatedAt"`
	IsPrivate  bool     `json:"isPrivate"`
	IsFavorite bool     `json:"isFavorite"`
	IsShared   bool     `json:"isShared"`
	SharedWith []string `json:"sharedWith"`
	FolderID   string   `json:"folderId"`
	Tags       []string `json:"tags"`
}

func (ld legacyDocument) toModel() *models.Document {
	d := &models.Document{
		ID:         ld.ID,
		Title:      ld.Title,
		Content:    ld.Content,
		UpdatedAt:  ld.UpdatedAt.Time,
		IsPrivate:  ld.IsPrivate,
		IsFavorite: ld.IsFavorite,
		IsShared:   ld.IsShared,
		SharedWith: ld.SharedWith,
		Tags:       ld.Tags,
	}
	if ld.FolderID != "" {
		fid := ld.FolderID
		d.FolderID = &fid
	}
	return d
}

type legacyFolder struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ParentID  string   `json:"parentId"`
	CreatedAt flexTime `json:"createdAt"`
}

func (lf legacyFolder) toModel() *models.Folder {
	f := &models.Folder{ID: lf.ID, Name: lf.Name, CreatedAt: lf.CreatedAt.Time}
	if lf.ParentID != "" {
		pid := lf.ParentID
		f.ParentID = &pid
	}
	return f
}

type legacyVersion struct {
	ID         string   `json:"id"`
	DocumentID string   `json:"documentId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CreatedAt  flexTime `json:"createdAt"`
}

func (lv legacyVersion) toModel() *models.Version {
	return &models.Version{
		ID:         lv.ID,
		DocumentID: lv.DocumentID,
		Title:      lv.Title,
		Content:    lv.Content,
		CreatedAt:  lv.CreatedAt.Time,
	}
}

type legacyTemplate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	UpdatedAt   flexTime `json:"updatedAt"`
}

func (lt legacyTemplate) toModel() *models.Template {
	return &models.Template{
		ID:          lt.ID,
		Title:       lt.Title,
		Content:     lt.Content,
		Description: lt.Description,
		Category:    lt.Category,
		Tags:        lt.Tags,
		UpdatedAt:   lt.UpdatedAt.Time,
	}
}
