package cli

import (
	"context"
	"fmt"
)

func (a *App) Versions(ctx context.Context, id string) error {
	list, err := a.versions.List(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No snapshots. Try 'snap'.")
		return nil
	}
	for _, v := range list {
		printlnFn(fmt.Sprintf("%s  %s  (%s)", v.ID, v.Title,
			v.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	return nil
}

func (a *App) Snapshot(ctx context.Context, id string) error {
	v, err := a.versions.Create(ctx, id)
	if err != nil {
		return err
	}
	printlnFn("Snapshot", v.ID)
	return nil
}

func (a *App) Restore(ctx context.Context, versionID string) error {
	if err := a.versions.Restore(ctx, versionID); err != nil {
		return err
	}
	printlnFn("Restored")
	return nil
}
