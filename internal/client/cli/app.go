package cli

import (
	"bufio"
	"context"
	"os"

	"draftpad/internal/client/config"
	"draftpad/internal/client/legacy"
	"draftpad/internal/client/remote"
	"draftpad/internal/client/schema"
	"draftpad/internal/client/services"
	"draftpad/internal/client/session"
	"draftpad/internal/client/store"
	"draftpad/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires configuration, the local store and the services behind the
// interactive shell.
type App struct {
	config    *config.Config
	log       logging.Logger
	store     *store.Store
	session   *session.MemoryProvider
	tracker   *services.SyncTracker
	docs      services.DocumentService
	folders   services.FolderService
	versions  services.VersionService
	templates services.TemplateService
	legacy    *legacy.Runner
	reader    *bufio.Reader
}

// NewApp opens the local store and builds the service graph. The returned
// App owns the store; callers must Close it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	s, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	api, err := remote.NewHTTPClient(cfg.RemoteBaseURL)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	sess := session.NewMemoryProvider()
	notifier := services.NewLogNotifier(log)
	validator := schema.New()

	tracker := services.NewSyncTracker(s.Documents, api, sess, log, cfg.SyncDebounce)
	docs := services.NewDocumentService(s.Documents, s.Folders, s.Versions, validator,
		api, api, sess, notifier, tracker, log, cfg.ShareBaseURL)
	folders := services.NewFolderService(s.DB, s.Folders, s.Documents, validator, api, sess, log)
	versions := services.NewVersionService(s.Versions, s.Documents, log)
	templates := services.NewTemplateService(s.Templates, s.Documents, validator,
		remote.TemplatesClient{HTTPClient: api}, log)

	runner := legacy.NewRunner(s, validator, log, cfg.LegacyStorePath)

	return &App{
		config:    cfg,
		log:       log,
		store:     s,
		session:   sess,
		tracker:   tracker,
		docs:      docs,
		folders:   folders,
		versions:  versions,
		templates: templates,
		legacy:    runner,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run performs the one-time legacy import and starts the shell. It returns
// when the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) error {
	migrated, err := a.legacy.Run(ctx)
	if err != nil {
		return err
	}
	if migrated {
		a.log.Info(ctx, "legacy store imported")
	}

	printlnFn("Welcome to draftpad (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
	return nil
}

// Close releases the local store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) status() string {
	sess := a.session.Current()
	if sess == nil {
		return "(local)"
	}
	return "(" + sess.Email + ")"
}
