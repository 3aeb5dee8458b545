// Package app wires the client's components together.
package app

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tasktrack/internal/backend/rest"
	"tasktrack/internal/config"
	"tasktrack/internal/guard"
	"tasktrack/internal/i18n"
	"tasktrack/internal/service"
	"tasktrack/internal/storage"
	"tasktrack/internal/store"
	"tasktrack/internal/ui"
	"tasktrack/internal/workflow"
)

// App is one running client instance. Nothing in it is global; tests build
// as many isolated instances as they need.
type App struct {
	Config     *config.Config
	Log        *logrus.Logger
	Storage    storage.Store
	Service    service.Service
	Session    *store.SessionStore
	Tasks      *store.TaskStore
	Auth       *workflow.Auth
	TaskFlow   *workflow.Tasks
	Guard      *guard.Guard
	Console    *ui.Console
	Translator *i18n.Translator
}

// NewLogger returns the client logger: debug level when cfg.Debug, warnings
// otherwise.
func NewLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// Open builds an App talking to cfg.APIURL and loads the persisted session.
func Open(cfg *config.Config, console *ui.Console, logger *logrus.Logger) (*App, error) {
	st, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	svc := rest.New(cfg, rest.StoreTokenSource{Store: st}, logger)

	a := New(cfg, svc, st, console, logger)
	if err := a.Session.Load(); err != nil {
		logger.WithError(err).Warn("could not load persisted session")
	}
	return a, nil
}

// New wires an App around an existing backend and store.
func New(cfg *config.Config, svc service.Service, st storage.Store, console *ui.Console, logger *logrus.Logger) *App {
	tr := i18n.New(cfg.Locale)
	session := store.NewSessionStore(st)
	tasks := store.NewTaskStore()

	deps := workflow.Deps{
		Service:    svc,
		Session:    session,
		Tasks:      tasks,
		Notifier:   console,
		Navigator:  console,
		Confirmer:  console,
		Translator: tr,
	}
	auth := workflow.NewAuth(deps)

	return &App{
		Config:     cfg,
		Log:        logger,
		Storage:    st,
		Service:    svc,
		Session:    session,
		Tasks:      tasks,
		Auth:       auth,
		TaskFlow:   workflow.NewTasks(deps),
		Guard:      guard.New(session, console, auth.Restore),
		Console:    console,
		Translator: tr,
	}
}

// Close releases the storage backend.
func (a *App) Close() error {
	return a.Storage.Close()
}
