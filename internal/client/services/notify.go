// Package services contains the application services of the Draftpad client:
// the document manager and its policy core, the folder/version/template
// managers, and the sync status tracker. Services write through the local
// store for offline-first correctness and reconcile with the remote
// opportunistically.
package services

import (
	"context"

	"draftpad/internal/logging"
)

// Notifier delivers user-facing notifications raised by policy decisions,
// such as hitting the document-count limit. The UI layer supplies its own
// implementation.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// LogNotifier writes notifications to the structured log. Used when no UI
// sink is wired.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, message string) {
	n.log.Info(ctx, "notification", "message", message)
}
