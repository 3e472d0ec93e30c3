package cli

import (
	"context"
	"os"

	"github.com/google/uuid"

	"draftpad/internal/client/session"
)

// Login records the signed-in identity for this run. Authentication itself
// happens in the backend's web flow; the shell only needs to know who the
// user is and which plan applies.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", os.Stdout)
	if err != nil {
		return err
	}
	plan, err := GetSimpleText(a.reader, "Plan (free/unlimited)", os.Stdout)
	if err != nil {
		return err
	}

	p := session.PlanFree
	if plan == string(session.PlanUnlimited) {
		p = session.PlanUnlimited
	}
	a.session.Login(session.Session{UserID: uuid.NewString(), Email: email, Plan: p})
	a.tracker.OnSessionChange(ctx)
	printlnFn("Signed in as", email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	a.tracker.OnSessionChange(ctx)
	printlnFn("Signed out")
	return nil
}
