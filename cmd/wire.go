package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	filecache "github.com/bnema/guide-cli/internal/adapters/cache/file"
	tomlcatalog "github.com/bnema/guide-cli/internal/adapters/catalog/toml"
	diskvjournal "github.com/bnema/guide-cli/internal/adapters/journal/diskv"
	"github.com/bnema/guide-cli/internal/adapters/notify/chain"
	"github.com/bnema/guide-cli/internal/adapters/notify/desktop"
	"github.com/bnema/guide-cli/internal/adapters/notify/writer"
	statusadapter "github.com/bnema/guide-cli/internal/adapters/render/status"
	"github.com/bnema/guide-cli/internal/adapters/repo/blob"
	"github.com/bnema/guide-cli/internal/adapters/repo/sqlite"
	"github.com/bnema/guide-cli/internal/application"
	"github.com/bnema/guide-cli/internal/config"
	"github.com/bnema/guide-cli/internal/engine"
	"github.com/bnema/guide-cli/internal/ports"
	"github.com/bnema/guide-cli/internal/telemetry"
)

type app struct {
	service        *application.SessionService
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
	closers        []func(context.Context) error
}

func wireApp() (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(viper.New(), env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Log {
		logger = log.New(os.Stderr, "guide: ", log.LstdFlags)
	}

	a := &app{
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}
	a.closers = append(a.closers, telemetry.Setup(cfg.Trace, "guide", logger))

	catalog, err := tomlcatalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("wire module catalog: %w", err)
	}

	sessionStore, prefsStore, closeStores, err := wireStores(cfg)
	if err != nil {
		return nil, err
	}
	if closeStores != nil {
		a.closers = append(a.closers, closeStores)
	}

	notifier, err := wireNotifier(cfg.Notify, os.Stderr)
	if err != nil {
		return nil, errors.Join(err, a.runClosers(context.Background()))
	}

	opts := []application.Option{
		application.WithPreferences(blob.NewPreferencesRepository(prefsStore, logger)),
		application.WithJournal(diskvjournal.New(cfg.JournalPath)),
		application.WithPrefetcher(filecache.NewPrefetcher(cfg.CachePath, catalog)),
		application.WithLogger(logger),
	}
	if notifier != nil {
		opts = append(opts, application.WithNotifier(notifier))
	}

	a.service = application.NewSessionService(
		engine.New(catalog, catalog),
		blob.NewSessionRepository(sessionStore, logger),
		ports.SystemClock{},
		opts...,
	)
	return a, nil
}

func wireStores(cfg config.Config) (blob.Store, blob.Store, func(context.Context) error, error) {
	if cfg.StorageDriver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("wire sqlite store: %w", err)
		}
		closeDB := func(context.Context) error { return db.Close() }
		return db.Store("session"), db.Store("preferences"), closeDB, nil
	}

	sessionStore, err := blob.NewFileStore(cfg.SessionPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("wire session store: %w", err)
	}
	prefsStore, err := blob.NewFileStore(cfg.PreferencesPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("wire preferences store: %w", err)
	}
	return sessionStore, prefsStore, nil, nil
}

func wireNotifier(mode config.NotifyMode, out io.Writer) (ports.Notifier, error) {
	switch mode {
	case config.NotifyOff:
		return nil, nil
	case config.NotifyStderr:
		return writer.NewNotifier(out), nil
	case config.NotifyDesktop:
		return desktop.NewNotifier(), nil
	default:
		notifier, err := chain.NewDesktopFirstWithWriterFallback(out)
		if err != nil {
			return nil, fmt.Errorf("wire notifier chain: %w", err)
		}
		return notifier, nil
	}
}

// close waits for background prefetches, then releases stores and flushes
// spans.
func (a *app) close(ctx context.Context) error {
	a.service.Wait()
	return a.runClosers(ctx)
}

func (a *app) runClosers(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
