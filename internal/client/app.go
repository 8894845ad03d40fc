// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/MKhiriev/go-draft-sync/internal/source"
	"github.com/MKhiriev/go-draft-sync/internal/store"
	"github.com/MKhiriev/go-draft-sync/internal/syncbuffer"
	"github.com/MKhiriev/go-draft-sync/internal/tui"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/internal/workers"
	"github.com/MKhiriev/go-draft-sync/models"
)

// eventQueueSize bounds the outcome events waiting for the editor.
const eventQueueSize = 16

type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo

	remote   adapter.DocumentStore
	fallback syncbuffer.Fallback
	services *service.ClientServices
	closer   func() error

	logger *logger.Logger
}

// NewApp opens the client storages and the remote adapter. A missing address
// or token leaves the remote unset: the buffer reports it at the first write
// and drafts go to the fallbacks.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	var remote adapter.DocumentStore
	if cfg.Adapter.Configured() {
		httpStore, err := adapter.NewHTTPDocumentStore(cfg.Adapter, log)
		if err != nil {
			return nil, fmt.Errorf("create document store adapter: %w", err)
		}
		remote = httpStore

		// the server verifies the token; the subject only labels the log
		if owner, err := utils.ParseOwnerUnverified(cfg.Adapter.Token); err == nil {
			log.Info().Str("owner", owner).Str("address", cfg.Adapter.HTTPAddress).Msg("document server configured")
		} else {
			log.Warn().Err(err).Msg("bearer token is not a readable JWT")
		}
	} else {
		log.Warn().Msg("document server address or token not configured, drafts will be held locally")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	services := service.NewClientServices(storages, remote, log)

	app := newApp(cfg, buildInfo, remote, storages.Fallback, services, log)
	app.closer = storages.Close
	return app, nil
}

func newApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, remote adapter.DocumentStore,
	fallback syncbuffer.Fallback, services *service.ClientServices, log *logger.Logger) *App {
	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		remote:    remote,
		fallback:  fallback,
		services:  services,
		logger:    log,
	}
}

// Close releases the client storages.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// Edit runs the terminal editor on the configured draft path.
func (a *App) Edit(ctx context.Context) error {
	events := make(chan syncbuffer.Event, eventQueueSize)

	buffer, err := a.newBuffer(events)
	if err != nil {
		return err
	}

	ui, err := tui.New(buffer, tui.Options{
		Fields:    a.cfg.Draft.Fields,
		Path:      buffer.Path(),
		Events:    events,
		Replays:   a.remote != nil,
		BuildInfo: a.buildInfo,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}

	return a.run(ctx, buffer, ui)
}

// Watch feeds the buffer from a YAML file until ctx is cancelled.
func (a *App) Watch(ctx context.Context, file string) error {
	buffer, err := a.newBuffer(nil)
	if err != nil {
		return err
	}

	watcher, err := source.NewFileWatcher(file, buffer, a.logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", file, err)
	}

	a.logger.Info().Str("file", watcher.Path()).Str("path", buffer.Path()).Msg("watching draft file")

	waitForCancel := FrontendFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})
	return a.run(ctx, buffer, waitForCancel, watcher)
}

// run starts the background workers, blocks on the frontend, then stops the
// workers and makes the final flush.
func (a *App) run(ctx context.Context, buffer *syncbuffer.SyncBuffer, front Frontend, extra ...workers.Worker) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ws := workers.NewWorkers(append([]workers.Worker{buffer, a.replayWorker(buffer)}, extra...)...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ws.Run(runCtx)
	}()

	err := front.Run(runCtx)
	cancel()
	<-done

	// ctx may already be cancelled; the flush has its own bound.
	if flushErr := buffer.OnShutdown(context.WithoutCancel(ctx)); flushErr != nil {
		a.logger.Err(flushErr).Str("path", buffer.Path()).Msg("final flush failed")
		err = errors.Join(err, fmt.Errorf("final flush: %w", flushErr))
	}

	return err
}

func (a *App) newBuffer(events chan<- syncbuffer.Event) (*syncbuffer.SyncBuffer, error) {
	if err := a.cfg.ValidateDraft(); err != nil {
		return nil, err
	}

	var remote syncbuffer.RemoteStore
	if a.remote != nil {
		remote = a.remote
	}

	buffer, err := syncbuffer.New(remote, syncbuffer.Options{
		Path:            a.cfg.Draft.Path,
		Origin:          a.cfg.Draft.Origin,
		Debounce:        a.cfg.Draft.Debounce,
		CheckInterval:   a.cfg.Draft.CheckInterval,
		RequestTimeout:  a.cfg.Adapter.RequestTimeout,
		ShutdownTimeout: a.cfg.Draft.ShutdownTimeout,
		Fallback:        a.fallback,
		Reporter:        a.reporter(events),
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create draft buffer: %w", err)
	}

	return buffer, nil
}

// replayWorker is nil without a remote; [workers.NewWorkers] skips it.
func (a *App) replayWorker(buffer *syncbuffer.SyncBuffer) workers.Worker {
	if a.remote == nil {
		return nil
	}

	return workers.NewPeriodicWorker("spool-replay", a.cfg.Workers.ReplayInterval, func(ctx context.Context) error {
		return a.replayOnce(ctx, buffer)
	}, a.logger)
}

func (a *App) replayOnce(ctx context.Context, buffer *syncbuffer.SyncBuffer) error {
	a.resumeWrites(ctx, buffer)

	result, err := a.services.RecoveryService.Replay(ctx)
	if result.Replayed > 0 || result.Stale > 0 {
		a.logger.Info().
			Int("replayed", result.Replayed).
			Int("stale", result.Stale).
			Int("pending", result.Pending).
			Msg("spool replayed")
	}
	return err
}

// resumeWrites re-enables a buffer paused by a rejected credential once the
// server serves the draft path again. The token is read only at start-up, so
// a token the server keeps rejecting still needs a restart with a new one.
func (a *App) resumeWrites(ctx context.Context, buffer *syncbuffer.SyncBuffer) {
	if buffer == nil || !buffer.Paused() {
		return
	}

	if _, err := a.remote.Get(ctx, buffer.Path()); err != nil && !errors.Is(err, adapter.ErrNotFound) {
		a.logger.Debug().Err(err).Str("path", buffer.Path()).Msg("document server still refuses the draft path")
		return
	}

	a.logger.Info().Str("path", buffer.Path()).Msg("document server reachable again, writes resumed")
	buffer.SetStore(a.remote)
}

// reporter forwards every outcome to events when set. A full queue drops the
// event for the editor only; the buffer has already logged it.
func (a *App) reporter(events chan<- syncbuffer.Event) syncbuffer.Reporter {
	return syncbuffer.ReporterFunc(func(e syncbuffer.Event) {
		a.logEvent(e)

		if events == nil {
			return
		}
		select {
		case events <- e:
		default:
			a.logger.Warn().Stringer("kind", e.Kind).Msg("editor event queue full")
		}
	})
}

// logEvent adds a debug trace; the buffer logs the outcome itself.
func (a *App) logEvent(e syncbuffer.Event) {
	a.logger.Debug().
		Stringer("kind", e.Kind).
		Str("path", a.cfg.Draft.Path).
		Bool("partial", e.Partial).
		Int("fields", e.Fields).
		Err(e.Err).
		Msg("draft event")
}
