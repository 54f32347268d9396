package cache

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildObserver = (*Orchestrator)(nil)

// Orchestrator drives the cache through the lifecycle of repeated builds:
// Idle -> Probing -> Building -> Finalizing -> Idle.
//
// Its BuildCacheState is held behind an atomic pointer and replaced wholesale, so a
// reader always sees a complete snapshot, ledger and window from the same commit.
type Orchestrator struct {
	store  *Store
	fs     ports.FileSystem
	hasher ports.Hasher
	logger ports.Logger
	tracer ports.Tracer

	metrics    ports.Metrics
	oracle     *Oracle
	ledger     *LedgerUpdater
	hashLedger bool
	subBuild   int

	state atomic.Pointer[domain.BuildCacheState]

	mu      sync.Mutex
	phase   domain.Phase
	table   *domain.TimestampTable
	buildID string
}

// Option configures an Orchestrator.
type Option func(*options)

type options struct {
	tracer      ports.Tracer
	metrics     ports.Metrics
	parallelism int
	accuracy    domain.AccuracyWindow
	hashLedger  bool
	subBuild    int
}

// WithTracer sets the tracer used for lifecycle spans.
func WithTracer(t ports.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m ports.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithParallelism caps the number of concurrent stat and hash operations.
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithInitialAccuracy sets the accuracy window assumed before any timestamp is observed.
func WithInitialAccuracy(w domain.AccuracyWindow) Option {
	return func(o *options) { o.accuracy = w }
}

// WithHashLedger enables or disables the content hash ledger.
func WithHashLedger(enabled bool) Option {
	return func(o *options) { o.hashLedger = enabled }
}

// WithSubBuild tags the orchestrator with its position in a composite build.
func WithSubBuild(i int) Option {
	return func(o *options) { o.subBuild = i }
}

// NewOrchestrator creates an Orchestrator bound to store.
func NewOrchestrator(
	store *Store,
	fsys ports.FileSystem,
	hasher ports.Hasher,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	cfg := options{
		tracer:      noopTracer{},
		metrics:     noopMetrics{},
		parallelism: runtime.NumCPU(),
		accuracy:    domain.DefaultAccuracyWindow,
		hashLedger:  true,
		subBuild:    -1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Orchestrator{
		store:      store,
		fs:         fsys,
		hasher:     hasher,
		logger:     logger,
		tracer:     cfg.tracer,
		metrics:    cfg.metrics,
		oracle:     NewOracle(fsys, cfg.parallelism),
		ledger:     NewLedgerUpdater(fsys, hasher, cfg.parallelism),
		hashLedger: cfg.hashLedger,
		subBuild:   cfg.subBuild,
	}
	initial := domain.NewBuildCacheState(cfg.accuracy)
	o.state.Store(&initial)
	return o
}

// Phase returns the current lifecycle phase.
func (o *Orchestrator) Phase() domain.Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Store returns the cache store this orchestrator attaches to builds.
func (o *Orchestrator) Store() *Store {
	return o.store
}

// State returns the last committed BuildCacheState.
func (o *Orchestrator) State() domain.BuildCacheState {
	return *o.state.Load()
}

// Restore replaces the committed state, typically with one loaded from disk.
// It is only allowed while Idle. The restored window never widens the current one.
func (o *Orchestrator) Restore(state domain.BuildCacheState) error {
	if !state.AccuracyWindow.Valid() {
		err := zerr.Wrap(domain.ErrInvalidAccuracy, "cannot restore state")
		return zerr.With(err, "window", state.AccuracyWindow.Milliseconds())
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase != domain.PhaseIdle {
		return o.transitionError("restore")
	}

	if state.HashLedger == nil {
		state.HashLedger = domain.NewModuleHashLedger(nil)
	}
	state.AccuracyWindow = state.AccuracyWindow.Narrower(o.state.Load().AccuracyWindow)
	o.state.Store(&state)
	return nil
}

// BuildStarted probes the previous dependency snapshot and publishes the resulting
// timestamp table. The first build has no snapshot and skips probing.
func (o *Orchestrator) BuildStarted(ctx context.Context) error {
	o.mu.Lock()
	if o.phase != domain.PhaseIdle {
		defer o.mu.Unlock()
		return o.transitionError("build started")
	}
	o.phase = domain.PhaseProbing
	o.table = nil
	o.buildID = uuid.NewString()
	buildID := o.buildID
	o.mu.Unlock()

	ctx, span := o.tracer.Start(ctx, "cache.build_started",
		ports.WithAttribute("build_id", buildID),
		ports.WithAttribute("sub_build", o.subBuild),
	)
	defer span.End()

	current := o.state.Load()
	if !current.HasSnapshot() {
		o.logger.Debug("no previous snapshot, skipping probe", "build_id", buildID)
		o.setPhase(domain.PhaseBuilding)
		return nil
	}

	res, err := o.probe(ctx, current)
	if err != nil {
		span.RecordError(err)
		o.metrics.BatchFailed("probe")
		o.setPhase(domain.PhaseIdle)
		return o.annotate(err, buildID)
	}

	o.narrow(res.Window)
	span.SetAttribute("paths", res.Table.Len()+len(res.Missing))
	span.SetAttribute("missing", len(res.Missing))
	span.SetAttribute("accuracy_ms", res.Window.Milliseconds())

	o.mu.Lock()
	o.table = res.Table
	o.phase = domain.PhaseBuilding
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) probe(ctx context.Context, current *domain.BuildCacheState) (ProbeResult, error) {
	ctx, span := o.tracer.Start(ctx, "cache.probe")
	defer span.End()

	res, err := o.oracle.Probe(ctx, current.Snapshot, current.AccuracyWindow)
	if err != nil {
		span.RecordError(err)
		return ProbeResult{}, err
	}

	for _, path := range res.Missing {
		o.logger.Debug("dependency missing", "path", path)
	}
	o.logger.Debug("probe complete",
		"paths", res.Table.Len()+len(res.Missing),
		"missing", len(res.Missing),
		"accuracy_ms", res.Window.Milliseconds(),
	)
	o.metrics.ProbeCompleted(res.Table.Len()+len(res.Missing), len(res.Missing))
	o.metrics.AccuracyObserved(res.Window.Milliseconds())
	return res, nil
}

// GraphReady attaches the cache store and the published freshness data to bc.
func (o *Orchestrator) GraphReady(bc *ports.BuildContext) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase != domain.PhaseBuilding {
		return o.transitionError("graph ready")
	}

	var ledger *domain.ModuleHashLedger
	if o.hashLedger {
		ledger = o.state.Load().HashLedger
	}

	bc.BuildID = o.buildID
	bc.Cache = o.store
	bc.Timestamps = o.table
	bc.Ledger = ledger
	bc.Freshness = NewFreshness(o.table, ledger, o.fs, o.hasher, o.logger)
	return nil
}

// BuildFinished captures the new dependency snapshot and, when the ledger is enabled,
// hashes every rebuilt module. Nothing is committed if hashing fails.
func (o *Orchestrator) BuildFinished(ctx context.Context, result *domain.BuildResult) error {
	o.mu.Lock()
	if o.phase != domain.PhaseBuilding {
		defer o.mu.Unlock()
		return o.transitionError("build finished")
	}
	o.phase = domain.PhaseFinalizing
	buildID := o.buildID
	o.mu.Unlock()

	defer o.setPhase(domain.PhaseIdle)

	ctx, span := o.tracer.Start(ctx, "cache.build_finished",
		ports.WithAttribute("build_id", buildID),
		ports.WithAttribute("sub_build", o.subBuild),
	)
	defer span.End()

	if result == nil {
		result = &domain.BuildResult{}
	}
	snapshot := domain.NewDependencySnapshot(result.FileDependencies, result.ContextDependencies)

	built := result.Count(domain.ModuleBuilt)
	cached := result.Count(domain.ModuleCached)
	failed := result.Count(domain.ModuleFailed)
	o.metrics.ModulesProcessed(built, cached, failed)
	span.SetAttribute("modules", len(result.Modules))

	var updates map[string]string
	if o.hashLedger {
		var err error
		updates, err = o.hashRebuilt(ctx, result)
		if err != nil {
			span.RecordError(err)
			o.metrics.BatchFailed("ledger")
			return o.annotate(err, buildID)
		}
	}

	o.commit(snapshot, updates)
	o.logger.Debug("build recorded",
		"build_id", buildID,
		"built", built,
		"cached", cached,
		"failed", failed,
		"dependencies", snapshot.Len(),
	)
	return nil
}

func (o *Orchestrator) hashRebuilt(ctx context.Context, result *domain.BuildResult) (map[string]string, error) {
	ctx, span := o.tracer.Start(ctx, "cache.ledger")
	defer span.End()

	updates, err := o.ledger.Hash(ctx, result.Modules)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("resources", len(updates))
	o.metrics.LedgerUpdated(len(updates))
	o.logger.Debug("hash ledger updated", "resources", len(updates))
	return updates, nil
}

// commit swaps in a state holding snapshot and the ledger merged with updates.
func (o *Orchestrator) commit(snapshot *domain.DependencySnapshot, updates map[string]string) {
	for {
		current := o.state.Load()
		next := *current
		next.Snapshot = snapshot
		if len(updates) > 0 {
			next.HashLedger = current.HashLedger.Merge(updates)
		}
		if o.state.CompareAndSwap(current, &next) {
			return
		}
	}
}

// narrow swaps in a state whose window is no wider than w.
func (o *Orchestrator) narrow(w domain.AccuracyWindow) {
	for {
		current := o.state.Load()
		if w >= current.AccuracyWindow {
			return
		}
		next := *current
		next.AccuracyWindow = w
		if o.state.CompareAndSwap(current, &next) {
			return
		}
	}
}

func (o *Orchestrator) setPhase(p domain.Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phase = p
}

// transitionError must be called with o.mu held.
func (o *Orchestrator) transitionError(event string) error {
	err := zerr.Wrap(domain.ErrInvalidTransition, event+" rejected")
	return zerr.With(err, "phase", o.phase.String())
}

func (o *Orchestrator) annotate(err error, buildID string) error {
	err = zerr.With(err, "build_id", buildID)
	if o.subBuild >= 0 {
		err = zerr.With(err, "sub_build", o.subBuild)
	}
	return err
}
