// Package bundler implements a minimal CommonJS bundler that drives the build
// cache lifecycle: it reuses cached modules whose sources have not changed and
// emits its output only when the bundle content changes.
package bundler

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultAssetName is the asset name used when none is configured.
const DefaultAssetName = "bundle.js"

// Bundler walks the require graph from an entry module and concatenates it.
type Bundler struct {
	fs        ports.FileSystem
	hasher    ports.Hasher
	logger    ports.Logger
	root      string
	assetName string
	now       func() time.Time
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithRoot sets the directory module headers are made relative to.
// Defaults to the entry module's directory.
func WithRoot(root string) Option {
	return func(b *Bundler) { b.root = root }
}

// WithAssetName sets the name of the emitted asset.
func WithAssetName(name string) Option {
	return func(b *Bundler) { b.assetName = name }
}

// WithClock replaces the clock used to stamp module builds.
func WithClock(now func() time.Time) Option {
	return func(b *Bundler) { b.now = now }
}

// New creates a Bundler.
func New(fsys ports.FileSystem, hasher ports.Hasher, logger ports.Logger, opts ...Option) *Bundler {
	b := &Bundler{
		fs:        fsys,
		hasher:    hasher,
		logger:    logger,
		assetName: DefaultAssetName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// build holds the state of one Build call.
type build struct {
	*Bundler
	bc      *ports.BuildContext
	root    string
	visited map[string]struct{}
	order   []*Module
	records []domain.ModuleRecord
	errs    []error
}

// Build bundles entry, firing the observer's lifecycle events around the walk.
// Module failures are reported in Stats.Errors and do not fail the call; a
// lifecycle error or cancellation does.
func (b *Bundler) Build(ctx context.Context, entry string, observer ports.BuildObserver) (*Stats, error) {
	start := b.now()

	entry, err := filepath.Abs(entry)
	if err != nil {
		return nil, zerr.With(err, "entry", entry)
	}

	if err := observer.BuildStarted(ctx); err != nil {
		return nil, err
	}

	bc := &ports.BuildContext{}
	if err := observer.GraphReady(bc); err != nil {
		return nil, err
	}

	root := b.root
	if root == "" {
		root = filepath.Dir(entry)
	}

	run := &build{
		Bundler: b,
		bc:      bc,
		root:    root,
		visited: make(map[string]struct{}),
	}
	walkErr := run.visit(ctx, entry)

	result := run.result()
	stats := &Stats{
		BuildID: bc.BuildID,
		Errors:  run.errs,
		Result:  result,
	}

	if err := observer.BuildFinished(ctx, result); err != nil {
		return stats, errors.Join(walkErr, err)
	}
	if walkErr != nil {
		return stats, walkErr
	}

	stats.Asset = run.asset()
	stats.Emitted = run.emit(stats.Asset)
	stats.Duration = b.now().Sub(start)

	b.logger.Debug("bundle built",
		"build_id", stats.BuildID,
		"built", stats.Built(),
		"cached", stats.Cached(),
		"errors", len(stats.Errors),
		"emitted", stats.Emitted,
	)
	return stats, nil
}

// visit builds path and its dependencies depth-first, appending to order after
// the dependencies. Only cancellation stops the walk.
func (r *build) visit(ctx context.Context, path string) error {
	if _, ok := r.visited[path]; ok {
		return nil
	}
	r.visited[path] = struct{}{}

	if err := ctx.Err(); err != nil {
		return err
	}

	mod, record := r.buildModule(ctx, path)
	r.records = append(r.records, record)
	if mod == nil {
		r.errs = append(r.errs, record.Err)
		return nil
	}

	dir := filepath.Dir(path)
	for _, req := range mod.Requests {
		dep, err := r.resolve(ctx, dir, req)
		if err != nil {
			r.errs = append(r.errs, zerr.With(err, "module", r.rel(path)))
			continue
		}
		if err := r.visit(ctx, dep); err != nil {
			return err
		}
	}

	r.order = append(r.order, mod)
	return nil
}

// buildModule returns the cached artifact for path when it is still fresh, or reads
// and parses the file. A nil module means the build failed.
func (r *build) buildModule(ctx context.Context, path string) (*Module, domain.ModuleRecord) {
	key := ModuleKey(path)
	record := domain.ModuleRecord{Key: key, Resource: path}

	if mod, ok := r.cached(ctx, key, path); ok {
		record.Status = domain.ModuleCached
		return mod, record
	}

	builtAt := r.now().UnixMilli()
	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		record.Status = domain.ModuleFailed
		record.Err = errors.Join(domain.ErrModuleBuildFailed, zerr.With(err, "module", r.rel(path)))
		return nil, record
	}

	mod := &Module{
		Resource: path,
		Requests: parseRequires(data),
		Source:   string(data),
		BuiltAt:  builtAt,
	}
	if r.bc.Cache != nil {
		r.bc.Cache.Put(key, mod)
	}
	record.Status = domain.ModuleBuilt
	record.ContentHash = r.hasher.HashContent(data)
	return mod, record
}

func (r *build) cached(ctx context.Context, key, path string) (*Module, bool) {
	if r.bc.Cache == nil || r.bc.Freshness == nil {
		return nil, false
	}
	artifact, ok := r.bc.Cache.Get(key)
	if !ok {
		return nil, false
	}
	mod, ok := artifact.(*Module)
	if !ok {
		return nil, false
	}
	if r.bc.Freshness.Changed(ctx, path, mod.BuiltAt) {
		return nil, false
	}
	return mod, true
}

// resolve maps a relative request to a file, trying the exact path and then ".js".
func (r *build) resolve(ctx context.Context, dir, request string) (string, error) {
	base := filepath.Join(dir, filepath.FromSlash(request))
	for _, candidate := range []string{base, base + ".js"} {
		info, err := r.fs.Stat(ctx, candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "cannot resolve '"+request+"'"), "request", request)
}

func (r *build) result() *domain.BuildResult {
	files := make([]string, 0, len(r.records))
	contexts := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Resource == "" {
			continue
		}
		files = append(files, rec.Resource)
		contexts = append(contexts, filepath.Dir(rec.Resource))
	}
	return &domain.BuildResult{
		FileDependencies:    files,
		ContextDependencies: contexts,
		Modules:             r.records,
	}
}

// asset concatenates the modules in dependency-first order.
func (r *build) asset() Asset {
	var buf bytes.Buffer
	for i, mod := range r.order {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("/* " + r.rel(mod.Resource) + " */\n")
		buf.WriteString(mod.Source)
		if !strings.HasSuffix(mod.Source, "\n") {
			buf.WriteByte('\n')
		}
	}
	content := buf.Bytes()
	return Asset{
		Name:    r.assetName,
		Content: content,
		Hash:    r.hasher.HashContent(content),
	}
}

// emit records the asset hash and reports whether it differs from the last emitted one.
func (r *build) emit(a Asset) bool {
	if r.bc.Cache == nil {
		return true
	}
	key := assetKeyPrefix + a.Name
	if prev, ok := r.bc.Cache.Get(key); ok {
		if hash, ok := prev.(string); ok && hash == a.Hash {
			return false
		}
	}
	r.bc.Cache.Put(key, a.Hash)
	return true
}

func (r *build) rel(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// InvalidateAsset clears the recorded hash of the named asset so the next build
// emits it again. Callers use it when writing an emitted asset failed.
func InvalidateAsset(store ports.CacheStore, name string) {
	store.Put(assetKeyPrefix+name, "")
}
