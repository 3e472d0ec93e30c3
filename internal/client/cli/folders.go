package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"draftpad/internal/client/models"
)

func (a *App) Folders(ctx context.Context) error {
	folders, err := a.folders.List(ctx)
	if err != nil {
		return err
	}
	if len(folders) == 0 {
		printlnFn("No folders. Everything lives in Home.")
		return nil
	}
	for _, f := range folders {
		parent := "-"
		if f.ParentID != nil {
			parent = *f.ParentID
		}
		printlnFn(fmt.Sprintf("%s  %s  (parent: %s)", f.ID, f.Name, parent))
	}
	return nil
}

func (a *App) MakeFolder(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Folder name", os.Stdout)
	if err != nil {
		return err
	}
	parent, err := GetSimpleText(a.reader, "Parent folder id (empty for Home)", os.Stdout)
	if err != nil {
		return err
	}

	f := models.Folder{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}
	if parent != "" {
		f.ParentID = &parent
	}
	if err := a.folders.UpsertMany(ctx, []models.Folder{f}); err != nil {
		return err
	}
	printlnFn("Created folder", f.ID)
	return nil
}

func (a *App) RemoveFolder(ctx context.Context, id string) error {
	if err := a.folders.Delete(ctx, []string{id}); err != nil {
		return err
	}
	printlnFn("Deleted folder tree", id)
	return nil
}
