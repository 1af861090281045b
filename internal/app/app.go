// Package app builds the stores and integrations around one key-value backend.
// The host owns the returned App and hands it to whatever front end it runs.
package app

import (
	"context"
	"log/slog"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/github"
	"taskboard/internal/projects"
	"taskboard/internal/storage"
	"taskboard/internal/tasks"
	"taskboard/internal/telegram"
	"taskboard/internal/theme"
)

// Deps are the collaborators App is built from.
type Deps struct {
	KV         storage.KV
	Directory  auth.Authenticator
	GitHub     *github.Client
	Telegram   telegram.Sender
	LoginDelay time.Duration
	Logger     *slog.Logger
}

// App holds one instance of every store.
type App struct {
	Auth     *auth.Store
	Projects *projects.Store
	Tasks    *tasks.Store
	Theme    *theme.Store
	Telegram *telegram.Settings
	Notifier *telegram.Notifier
	GitHub   *github.Client
	Importer *github.Importer
}

// New loads every store from d.KV and restores a saved session.
func New(ctx context.Context, d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authStore := auth.NewStore(d.KV, d.Directory, logger.With("store", "auth"), auth.WithDelay(d.LoginDelay))
	authStore.Initialize(ctx)

	projectStore := projects.NewStore(ctx, d.KV, logger.With("store", "projects"))
	settings := telegram.NewSettings(d.KV, logger.With("store", "telegram"))

	return &App{
		Auth:     authStore,
		Projects: projectStore,
		Tasks:    tasks.NewStore(ctx, d.KV, logger.With("store", "tasks")),
		Theme:    theme.NewStore(d.KV),
		Telegram: settings,
		Notifier: telegram.NewNotifier(settings, d.Telegram),
		GitHub:   d.GitHub,
		Importer: github.NewImporter(d.GitHub, projectStore),
	}
}
