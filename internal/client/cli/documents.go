package cli

import (
	"context"
	"fmt"
	"os"

	"draftpad/internal/client/models"
)

func (a *App) List(ctx context.Context) error {
	docs, err := a.docs.List(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printlnFn("No documents yet. Try 'new'.")
		return nil
	}
	for _, d := range docs {
		marks := ""
		if d.IsFavorite {
			marks += " *"
		}
		if d.IsShared {
			marks += " [shared]"
		}
		printlnFn(fmt.Sprintf("%s  %s%s  (%s)", d.ID, d.Title, marks,
			d.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

func (a *App) New(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.docs.Create(ctx, &models.Document{Title: title, Content: content})
	if err != nil {
		return err
	}
	printlnFn("Created", doc.ID)
	return nil
}

func (a *App) Open(ctx context.Context, id string) error {
	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.docs.SetCurrent(ctx, id)

	crumbs, err := a.folders.Breadcrumbs(ctx, id)
	if err != nil {
		return err
	}
	var path string
	for i, c := range crumbs {
		if i > 0 {
			path += " / "
		}
		path += c.Name
	}

	state := a.docs.SyncState(id)
	printlnFn(path)
	printlnFn("# " + doc.Title)
	printlnFn(doc.Content)
	printlnFn(fmt.Sprintf("sync: %s unsaved: %v", state.Status, state.HasUnsavedChanges))
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "New content", os.Stdout)
	if err != nil {
		return err
	}
	doc.Content = content
	return a.docs.Update(ctx, doc)
}

func (a *App) Remove(ctx context.Context, id string) error {
	if err := a.docs.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

func (a *App) Favorite(ctx context.Context, id string) error {
	on, err := a.docs.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if on {
		printlnFn("Marked as favorite")
	} else {
		printlnFn("Removed from favorites")
	}
	return nil
}

func (a *App) Share(ctx context.Context, id string) error {
	url, err := a.docs.Share(ctx, id)
	if err != nil {
		return err
	}
	printlnFn("Share link:", url)
	return nil
}

func (a *App) Unshare(ctx context.Context, id string) error {
	if err := a.docs.StopSharing(ctx, id); err != nil {
		return err
	}
	printlnFn("Sharing stopped")
	return nil
}

func (a *App) Download(ctx context.Context, id, format string) error {
	data, name, err := a.docs.Download(ctx, id, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	printlnFn("Saved", name)
	return nil
}
