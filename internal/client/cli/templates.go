package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"draftpad/internal/client/models"
	"draftpad/internal/common"
)

func (a *App) Templates(ctx context.Context) error {
	user, err := a.templates.ListUser(ctx)
	if err != nil {
		return err
	}
	for _, t := range user {
		printlnFn(fmt.Sprintf("%s  %s", t.ID, t.Title))
	}

	system := a.templates.ListSystem(ctx)
	for _, t := range system {
		printlnFn(fmt.Sprintf("%s  %s  [system]", t.ID, t.Title))
	}

	if len(user) == 0 && len(system) == 0 {
		printlnFn("No templates. Try 'tpl <document-id>'.")
	}
	return nil
}

func (a *App) SaveTemplate(ctx context.Context, id string) error {
	title, err := GetSimpleText(a.reader, "Template title (empty keeps the document title)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetSimpleText(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	t, err := a.templates.SaveAsTemplate(ctx, id, title, description)
	if err != nil {
		return err
	}
	printlnFn("Saved template", t.ID)
	return nil
}

// UseTemplate creates a brand-new document from a template's content. System
// templates stay read-only in the catalog; only the copy becomes user data.
func (a *App) UseTemplate(ctx context.Context, id string) error {
	tpl, err := a.templates.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		for _, s := range a.templates.ListSystem(ctx) {
			if s.ID == id {
				t := s
				tpl, err = &t, nil
				break
			}
		}
	}
	if err != nil {
		return err
	}

	doc, err := a.docs.Create(ctx, &models.Document{
		Title:   tpl.Title,
		Content: tpl.Content,
		Tags:    append([]string(nil), tpl.Tags...),
	})
	if err != nil {
		return err
	}
	printlnFn("Created", doc.ID, "from template")
	return nil
}
