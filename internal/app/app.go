package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/toolhub/internal/ctxlog"
	"github.com/vk/toolhub/internal/hooks"
	"github.com/vk/toolhub/internal/hub"
	"github.com/vk/toolhub/internal/registry"
	"github.com/vk/toolhub/internal/service"
	"github.com/vk/toolhub/internal/store"
	storebadger "github.com/vk/toolhub/internal/store/badger"
)

// App encapsulates the hosting process: configuration, the registry loader,
// the dispatch hub and its collaborators, and the readiness lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  *registry.Loader
	hub     *hub.Hub
	metrics *hooks.Metrics

	db         *storebadger.DB
	httpServer *http.Server

	ready      atomic.Bool
	lastResult atomic.Pointer[registry.LoadResult]
}

// NewApp constructs the application and wires the hub, stores, hooks and
// built-in operations. No definitions are loaded yet; that happens in Start
// (when auto-init is enabled) or through an explicit InitRegistry call.
func NewApp(outW io.Writer, cfg *Config) (*App, error) {
	logger := NewLogger(cfg.LogLevel, cfg.LogFormat, outW)

	loader, err := registry.NewLoader(registry.Config{
		DefsPath:   cfg.DefsPath,
		SourceRoot: cfg.SourceRoot,
		Mode:       cfg.Mode,
		Drift:      cfg.Drift,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure registry loader: %w", err)
	}

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}

	var (
		sessions  store.SessionStore
		casefiles store.CasefileStore
		audit     store.AuditSink
	)
	if cfg.DataPath != "" {
		db, err := storebadger.Open(cfg.DataPath, logger)
		if err != nil {
			return nil, err
		}
		snapshots := storebadger.NewSnapshots(db)
		a.db = db
		sessions, casefiles, audit = snapshots, snapshots, snapshots
	} else {
		mem := store.NewMemory()
		sessions, casefiles, audit = mem, mem, mem
	}

	a.hub = hub.New(hub.Config{
		Registries: loader.Registries,
		Sessions:   sessions,
		Casefiles:  casefiles,
	})

	a.metrics = hooks.NewMetrics()
	a.hub.RegisterHook(a.metrics)
	a.hub.RegisterHook(hooks.NewAudit(audit, false))
	a.hub.RegisterHook(hooks.NewLifecycle(sessions))

	service.Register(a.hub, service.New(sessions, casefiles))
	logger.Debug("Hub wired.", "mode", string(loader.Mode()), "drift", loader.DriftEnabled())

	return a, nil
}

// Start brings the process up: the health endpoint begins answering
// immediately (not ready), and when auto-init is enabled the registry is
// loaded. In strict mode a failed load leaves the process running but never
// ready; in warning mode the process becomes ready and the full report is
// logged for operators.
func (a *App) Start(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
	}

	if !a.config.autoInit() {
		a.logger.Info("Registry auto-initialization disabled; waiting for explicit InitRegistry call.")
		return nil
	}

	result, err := a.InitRegistry(ctx)
	if err != nil {
		return err
	}
	if !result.Success {
		a.logger.Error("Startup load rejected; process will not become ready.",
			"errors", len(result.Errors))
	}
	return nil
}

// InitRegistry performs one load-validate-publish cycle and updates the
// readiness gate. It may be called again later for a hot reload; a rejected
// reload keeps the previously published registries and the ready state.
func (a *App) InitRegistry(ctx context.Context) (*registry.LoadResult, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	result, err := a.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry initialization failed: %w", err)
	}
	a.lastResult.Store(result)

	for _, w := range result.Warnings {
		a.logger.Warn("Validation warning.", "issue", w)
	}
	for _, e := range result.Errors {
		if result.Success {
			a.logger.Warn("Validation failure tolerated by mode.", "issue", e)
		} else {
			a.logger.Error("Validation failure.", "issue", e)
		}
	}

	if result.Published {
		a.ready.Store(true)
		a.logger.Info("Application ready.",
			"methods", result.MethodCount, "tools", result.ToolCount)
	}
	return result, nil
}

// Run starts the app and blocks until the context is cancelled, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return a.Stop(context.WithoutCancel(ctx))
}

// Stop shuts down the health server and closes the data store.
func (a *App) Stop(ctx context.Context) error {
	var firstErr error
	if err := a.closeHealthcheckServer(ctx); err != nil {
		firstErr = err
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ready reports whether a load has published registries.
func (a *App) Ready() bool { return a.ready.Load() }

// Hub returns the dispatch hub.
func (a *App) Hub() *hub.Hub { return a.hub }

// Loader returns the registry loader. This is primarily for testing.
func (a *App) Loader() *registry.Loader { return a.loader }

// LastLoadResult returns the most recent load result, or nil before the
// first load.
func (a *App) LastLoadResult() *registry.LoadResult { return a.lastResult.Load() }
