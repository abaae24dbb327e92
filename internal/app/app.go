// Package app wires the API client, the session and the dashboard together
// for both the terminal UI and the commands.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/config"
	"github.com/driveterm/drive/internal/drive"
	"github.com/driveterm/drive/internal/log"
	"github.com/driveterm/drive/internal/pubsub"
	"github.com/driveterm/drive/internal/session"
)

const retryBackoff = 200 * time.Millisecond

type App struct {
	Client  *client.Client
	Session *session.Session
	Drive   *drive.Dashboard

	config  *config.Config
	uploads *pubsub.Broker[drive.UploadProgress]

	serviceEventsWG *sync.WaitGroup
	eventsCtx       context.Context
	events          chan tea.Msg
	tuiWG           *sync.WaitGroup

	// global context and cleanup functions
	globalCtx    context.Context
	cleanupMu    sync.Mutex
	cleanupFuncs []func() error
}

// New creates the app for cfg and restores a saved login, if there is one.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	c, err := client.NewClient(cfg.API.URL,
		client.WithHTTPClient(log.NewHTTPClient(cfg.API.RequestTimeout())),
		client.WithTimeout(cfg.API.RequestTimeout()),
		client.WithRetries(cfg.API.RetryCount(), retryBackoff),
	)
	if err != nil {
		return nil, err
	}

	var store *session.Store
	if !cfg.Options.DisableSessionPersistence {
		store = session.NewStore(cfg.SessionFile())
	}
	sess := session.New(store)
	switch err := sess.Restore(); {
	case err == nil:
		c.SetToken(sess.Token())
		slog.Debug("Restored session", "user", sess.User().Email, "token", log.MaskToken(sess.Token()))
	case errors.Is(err, session.ErrExpired):
		slog.Info("Saved session expired")
	case !errors.Is(err, session.ErrNoSession):
		slog.Warn("Failed to restore session", "error", err)
	}

	uploads := pubsub.NewBroker[drive.UploadProgress]()
	app := &App{
		Client:  c,
		Session: sess,
		Drive: drive.New(c,
			drive.WithFuzzySearch(cfg.Options.FuzzySearch),
			drive.WithUploadBroker(uploads),
		),
		config:  cfg,
		uploads: uploads,

		globalCtx:       ctx,
		events:          make(chan tea.Msg, 100),
		serviceEventsWG: &sync.WaitGroup{},
		tuiWG:           &sync.WaitGroup{},
	}

	app.setupEvents()
	return app, nil
}

// Config returns the application configuration.
func (app *App) Config() *config.Config {
	return app.config
}

// Shutdown performs a graceful shutdown of the application.
func (app *App) Shutdown() {
	app.uploads.Shutdown()
	app.cleanupMu.Lock()
	funcs := app.cleanupFuncs
	app.cleanupFuncs = nil
	app.cleanupMu.Unlock()
	for _, cleanup := range funcs {
		if cleanup != nil {
			if err := cleanup(); err != nil {
				slog.Error("Failed to cleanup app properly on shutdown", "error", err)
			}
		}
	}
}

func (app *App) addCleanup(fn func() error) {
	app.cleanupMu.Lock()
	defer app.cleanupMu.Unlock()
	app.cleanupFuncs = append(app.cleanupFuncs, fn)
}
