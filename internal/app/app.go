// Package app implements the application layer for hoard.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/hoard/internal/adapters/telemetry"
	"go.trai.ch/hoard/internal/adapters/watcher"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/hoard/internal/engine/bundler"
	"go.trai.ch/hoard/internal/engine/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	logger        ports.Logger
	fs            ports.FileSystem
	hasher        ports.Hasher
	tracer        ports.Tracer
	metrics       ports.Metrics
	store         *cache.Store
	newStateStore ports.StateStoreFactory
	newWatcher    ports.WatcherFactory

	mu       sync.Mutex
	session  *session
	provider *sdktrace.TracerProvider
}

// session is the cache lifetime of one process: the first command opens it and
// every later build reuses its orchestrator.
type session struct {
	cfg          *domain.Config
	orchestrator *cache.Orchestrator
	bundler      *bundler.Bundler
	state        ports.StateStore
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	fsys ports.FileSystem,
	hasher ports.Hasher,
	tracer ports.Tracer,
	metrics ports.Metrics,
	store *cache.Store,
	newStateStore ports.StateStoreFactory,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader:  loader,
		logger:        log,
		fs:            fsys,
		hasher:        hasher,
		tracer:        tracer,
		metrics:       metrics,
		store:         store,
		newStateStore: newStateStore,
		newWatcher:    newWatcher,
	}
}

// Options configures a build or watch session.
type Options struct {
	// ConfigPath names hoard.yaml or a directory to search from. Empty means the working directory.
	ConfigPath string
	// NoPersist disables loading and saving the cache state for this process.
	NoPersist bool
	// JSON switches log output to JSON regardless of the config.
	JSON bool
	// Verbose enables debug logging and span tracing.
	Verbose bool
}

// Report describes the outcome of one build.
type Report struct {
	Stats *bundler.Stats
	// Output is the absolute path of the bundle file.
	Output string
	// Written reports whether the bundle file was (re)written.
	Written bool
	// Metrics is a snapshot of the cache metrics after the build.
	Metrics map[string]float64
}

// Build runs one incremental build.
func (a *App) Build(ctx context.Context, opts Options) (*Report, error) {
	s, err := a.open(ctx, opts)
	if err != nil {
		return nil, err
	}
	return a.build(ctx, s)
}

// Watch builds once and then rebuilds whenever a watched directory changes,
// until ctx is canceled. Failed rebuilds are logged and do not end the session.
func (a *App) Watch(ctx context.Context, opts Options) error {
	s, err := a.open(ctx, opts)
	if err != nil {
		return err
	}

	if _, err := a.build(ctx, s); err != nil {
		if !recoverable(err) {
			return err
		}
		a.logger.Error(err)
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	g, ctx := errgroup.WithContext(ctx)
	if err := w.Start(ctx, s.watchDirs()); err != nil {
		return err
	}

	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		// A pending trigger already covers these paths: every build probes the full snapshot.
		select {
		case trigger <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	g.Go(func() error {
		for event := range w.Events() {
			if s.ignored(event.Path) {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-trigger:
				a.logger.Info("change detected", "paths", len(paths))
				if _, err := a.build(ctx, s); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					a.logger.Error(err)
				}
				if err := w.Start(ctx, s.watchDirs()); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	a.logger.Info("watching for changes", "entry", s.cfg.Entry)
	return g.Wait()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// ConfigPath names hoard.yaml or a directory to search from.
	ConfigPath string
	// Output also removes the emitted bundle.
	Output bool
}

// Clean removes the persisted cache state and, optionally, the bundle.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	a.store.Reset()

	var errs error
	if err := a.newStateStore(cfg.StatePath()).Clear(ctx); err != nil {
		errs = errors.Join(errs, err)
	} else {
		a.logger.Info("removed cache state", "path", cfg.StatePath())
	}

	if opts.Output {
		output := cfg.OutputPath()
		switch err := os.Remove(output); {
		case err == nil:
			a.logger.Info("removed bundle", "path", output)
		case !errors.Is(err, fs.ErrNotExist):
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove bundle"), "path", output))
		}
	}
	return errs
}

// Close flushes and stops span tracing, if it was enabled.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	tp := a.provider
	a.provider = nil
	a.mu.Unlock()

	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}

// open loads the configuration, applies its log settings and restores the
// persisted cache state. It runs once per process.
func (a *App) open(ctx context.Context, opts Options) (*session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		return a.session, nil
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	a.configureLogging(cfg, opts)
	if opts.Verbose {
		a.provider = telemetry.Setup(telemetry.NewBridge(a.logger))
	}

	orchestrator := cache.NewOrchestrator(a.store, a.fs, a.hasher, a.logger,
		cache.WithTracer(a.tracer),
		cache.WithMetrics(a.metrics),
		cache.WithParallelism(cfg.Cache.Workers()),
		cache.WithInitialAccuracy(cfg.Cache.Accuracy()),
		cache.WithHashLedger(cfg.Cache.LedgerEnabled()),
	)

	s := &session{
		cfg:          cfg,
		orchestrator: orchestrator,
		bundler: bundler.New(a.fs, a.hasher, a.logger,
			bundler.WithRoot(cfg.Root),
			bundler.WithAssetName(filepath.Base(cfg.OutputPath())),
		),
	}

	if cfg.PersistEnabled() && !opts.NoPersist {
		s.state = a.newStateStore(cfg.StatePath())
		a.restore(ctx, s)
	}

	a.session = s
	return s, nil
}

func (a *App) configureLogging(cfg *domain.Config, opts Options) {
	level := domain.ParseLogLevel(cfg.Log.Level)
	if opts.Verbose {
		level = domain.LogLevelDebug
	}
	if l, ok := a.logger.(interface{ SetLevel(domain.LogLevel) }); ok {
		l.SetLevel(level)
	}
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(cfg.Log.JSON || opts.JSON)
	}
}

// restore loads persisted state into the orchestrator. An unreadable or corrupt
// state only costs a full rebuild, so it is logged and discarded.
func (a *App) restore(ctx context.Context, s *session) {
	path := s.cfg.StatePath()
	state, ok, err := s.state.Load(ctx)
	if err != nil {
		a.logger.Warn("discarding cache state", "path", path, "error", err.Error())
		return
	}
	if !ok {
		return
	}
	if err := s.orchestrator.Restore(state); err != nil {
		a.logger.Warn("discarding cache state", "path", path, "error", err.Error())
		return
	}

	files := 0
	if state.Snapshot != nil {
		files = state.Snapshot.Len()
	}
	a.logger.Debug("cache state restored", "path", path, "paths", files, "window", state.AccuracyWindow.Milliseconds())
}

func (a *App) build(ctx context.Context, s *session) (*Report, error) {
	stats, err := s.bundler.Build(ctx, s.cfg.EntryPath(), s.orchestrator)
	if err != nil {
		return nil, zerr.Wrap(err, "bundle failed")
	}

	report := &Report{Stats: stats, Output: s.cfg.OutputPath()}
	if stats.Emitted || !exists(report.Output) {
		if err := writeAsset(report.Output, stats.Asset.Content); err != nil {
			bundler.InvalidateAsset(s.orchestrator.Store(), stats.Asset.Name)
			return report, errors.Join(domain.ErrAssetWriteFailed, zerr.With(err, "path", report.Output))
		}
		report.Written = true
	}

	a.save(ctx, s)
	report.Metrics = a.metrics.Snapshot()

	a.logger.Info("bundle ready",
		"modules", len(stats.Result.Modules),
		"built", stats.Built(),
		"cached", stats.Cached(),
		"written", report.Written,
		"duration", stats.Duration.String(),
	)

	if stats.HasErrors() {
		return report, errors.Join(domain.ErrBuildFailed, errors.Join(stats.Errors...))
	}
	return report, nil
}

func (a *App) save(ctx context.Context, s *session) {
	if s.state == nil {
		return
	}
	if err := s.state.Save(ctx, s.orchestrator.State()); err != nil {
		a.logger.Warn("failed to save cache state", "path", s.cfg.StatePath(), "error", err.Error())
	}
}

// watchDirs returns the directories of the last build's snapshot, or the entry's
// directory before the first successful probe.
func (s *session) watchDirs() []string {
	if snap := s.orchestrator.State().Snapshot; snap != nil && len(snap.ContextDependencies()) > 0 {
		return snap.ContextDependencies()
	}
	return []string{filepath.Dir(s.cfg.EntryPath())}
}

// ignored reports whether path is written by hoard itself.
func (s *session) ignored(path string) bool {
	if path == s.cfg.OutputPath() {
		return true
	}
	stateDir := filepath.Dir(s.cfg.StatePath())
	return path == stateDir || strings.HasPrefix(path, stateDir+string(filepath.Separator))
}

// recoverable reports whether a watch session can continue after err.
func recoverable(err error) bool {
	return errors.Is(err, domain.ErrBuildFailed) || errors.Is(err, domain.ErrAssetWriteFailed)
}

func writeAsset(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, content, domain.FilePerm)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
