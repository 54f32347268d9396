package app_test

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hoard/internal/adapters/cas"
	"go.trai.ch/hoard/internal/adapters/fs"
	"go.trai.ch/hoard/internal/adapters/logger"
	"go.trai.ch/hoard/internal/adapters/metrics"
	"go.trai.ch/hoard/internal/adapters/telemetry"
	"go.trai.ch/hoard/internal/app"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/hoard/internal/core/ports/mocks"
	"go.trai.ch/hoard/internal/engine/cache"
	"go.uber.org/mock/gomock"
)

const (
	indexSrc = "const a = require('./a');\nconsole.log(a);\n"
	aSrc     = "module.exports = 1;\n"
)

type fixture struct {
	t    *testing.T
	root string
	cfg  *domain.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, root: t.TempDir()}
	f.cfg = &domain.Config{Root: f.root, Entry: "index.js"}
	past := time.Now().Add(-time.Hour).Truncate(time.Second).Add(123 * time.Millisecond)
	f.write("index.js", indexSrc, past)
	f.write("a.js", aSrc, past)
	return f
}

func (f *fixture) path(rel string) string {
	return filepath.Join(f.root, filepath.FromSlash(rel))
}

func (f *fixture) write(rel, content string, mtime time.Time) {
	f.t.Helper()
	path := f.path(rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(f.t, os.Chtimes(path, mtime, mtime))
}

func (f *fixture) bundle() string {
	f.t.Helper()
	data, err := os.ReadFile(f.cfg.OutputPath())
	require.NoError(f.t, err)
	return string(data)
}

func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	return log
}

func newApp(t *testing.T, f *fixture, log ports.Logger, newWatcher ports.WatcherFactory) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(f.cfg, nil).AnyTimes()

	return app.New(
		loader,
		log,
		fs.NewFileSystem(),
		fs.NewHasher(),
		telemetry.NewNoOpTracer(),
		metrics.NoOp{},
		cache.NewStore(),
		func(path string) ports.StateStore { return cas.NewStore(path) },
		newWatcher,
	)
}

func TestApp_BuildWritesBundle(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	a := newApp(t, f, quietLogger(ctrl), nil)

	report, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.True(t, report.Written)
	assert.Equal(t, 2, report.Stats.Built())
	assert.Equal(t, f.path("dist/bundle.js"), report.Output)
	assert.Contains(t, f.bundle(), "/* a.js */\n"+aSrc)
	assert.FileExists(t, f.path(".hoard/state"))

	report, err = a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.False(t, report.Written)
	assert.Equal(t, 2, report.Stats.Cached())
}

func TestApp_RewritesMissingBundle(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	a := newApp(t, f, quietLogger(ctrl), nil)

	_, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	require.NoError(t, os.Remove(f.cfg.OutputPath()))

	report, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.False(t, report.Stats.Emitted)
	assert.True(t, report.Written)
	assert.FileExists(t, f.cfg.OutputPath())
}

func TestApp_RestoresPersistedState(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	_, err := newApp(t, f, quietLogger(ctrl), nil).Build(context.Background(), app.Options{})
	require.NoError(t, err)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("cache state restored", gomock.Any()).Times(1)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	report, err := newApp(t, f, log, nil).Build(context.Background(), app.Options{})
	require.NoError(t, err)
	// A new process has an empty cache store, so every module is built again.
	assert.Equal(t, 2, report.Stats.Built())
}

func TestApp_CorruptStateIsDiscarded(t *testing.T) {
	f := newFixture(t)
	f.write(".hoard/state", "not a state file", time.Now())

	ctrl := gomock.NewController(t)
	log := quietLogger(ctrl)
	log.EXPECT().Warn("discarding cache state", gomock.Any()).Times(1)

	report, err := newApp(t, f, log, nil).Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.True(t, report.Written)

	_, ok, err := cas.NewStore(f.path(".hoard/state")).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok, "state is replaced by the successful build")
}

func TestApp_NoPersist(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	_, err := newApp(t, f, quietLogger(ctrl), nil).Build(context.Background(), app.Options{NoPersist: true})
	require.NoError(t, err)
	assert.NoFileExists(t, f.path(".hoard/state"))
}

func TestApp_PersistDisabledInConfig(t *testing.T) {
	f := newFixture(t)
	persist := false
	f.cfg.Persist = &persist
	ctrl := gomock.NewController(t)

	_, err := newApp(t, f, quietLogger(ctrl), nil).Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.NoFileExists(t, f.path(".hoard/state"))
}

func TestApp_ModuleErrorsFailTheBuild(t *testing.T) {
	f := newFixture(t)
	f.write("index.js", "require('./missing');\n", time.Now().Add(-time.Minute))
	ctrl := gomock.NewController(t)

	report, err := newApp(t, f, quietLogger(ctrl), nil).Build(context.Background(), app.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	require.NotNil(t, report)
	assert.True(t, report.Written)
}

func TestApp_AssetWriteFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.cfg.OutputPath(), 0o750))
	ctrl := gomock.NewController(t)
	a := newApp(t, f, quietLogger(ctrl), nil)

	_, err := a.Build(context.Background(), app.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssetWriteFailed)

	require.NoError(t, os.Remove(f.cfg.OutputPath()))
	report, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.True(t, report.Stats.Emitted, "a failed write must not mark the asset as emitted")
	assert.True(t, report.Written)
}

func TestApp_ConfigLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("missing").Return(nil, domain.ErrConfigNotFound)

	a := app.New(loader, mocks.NewMockLogger(ctrl), nil, nil, nil, nil, cache.NewStore(), nil, nil)
	_, err := a.Build(context.Background(), app.Options{ConfigPath: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	a := newApp(t, f, quietLogger(ctrl), nil)

	_, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)

	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{Output: true}))
	assert.NoFileExists(t, f.path(".hoard/state"))
	assert.NoFileExists(t, f.cfg.OutputPath())

	// Nothing left to remove is not an error.
	require.NoError(t, a.Clean(context.Background(), app.CleanOptions{Output: true}))
}

func TestApp_VerboseLogsSpans(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(f.cfg, nil)

	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	a := app.New(
		loader,
		log,
		fs.NewFileSystem(),
		fs.NewHasher(),
		telemetry.NewOTelTracer("hoard"),
		metrics.NewPrometheus(),
		cache.NewStore(),
		func(path string) ports.StateStore { return cas.NewStore(path) },
		nil,
	)

	report, err := a.Build(context.Background(), app.Options{Verbose: true})
	require.NoError(t, err)
	require.NoError(t, a.Close(context.Background()))

	assert.Contains(t, buf.String(), "span finished")
	assert.Contains(t, buf.String(), "bundle built")
	assert.Contains(t, buf.String(), "bundle ready")
	assert.InDelta(t, 2, report.Metrics[`hoard_cache_modules_total{status="built"}`], 0)
}

func TestApp_WatchRebuildsOnChange(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan ports.WatchEvent)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), []string{f.root}).Return(nil).MinTimes(1)
	w.EXPECT().Stop().Return(nil)
	w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				if !yield(event) {
					return
				}
			}
		}
	}))

	a := newApp(t, f, quietLogger(ctrl), func() (ports.Watcher, error) { return w, nil })

	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, app.Options{NoPersist: true}) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(f.cfg.OutputPath())
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	const changed = "module.exports = 2;\n"
	later := time.Now().Add(time.Hour).Truncate(time.Second).Add(7 * time.Millisecond)
	f.write("a.js", changed, later)
	events <- ports.WatchEvent{Path: f.path("a.js"), Operation: ports.OpWrite}

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(f.cfg.OutputPath())
		return err == nil && bytes.Contains(data, []byte(changed))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestApp_WatcherFactoryError(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	a := newApp(t, f, quietLogger(ctrl), func() (ports.Watcher, error) {
		return nil, domain.ErrWatcherFailed
	})

	err := a.Watch(context.Background(), app.Options{NoPersist: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrWatcherFailed))
}

func TestApp_StateSaveFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)

	state := mocks.NewMockStateStore(ctrl)
	state.EXPECT().Load(gomock.Any()).Return(domain.BuildCacheState{}, false, nil)
	state.EXPECT().Save(gomock.Any(), gomock.Any()).Return(domain.ErrStateWriteFailed)

	log := quietLogger(ctrl)
	log.EXPECT().Warn("failed to save cache state", gomock.Any()).Times(1)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(f.cfg, nil)

	a := app.New(
		loader,
		log,
		fs.NewFileSystem(),
		fs.NewHasher(),
		telemetry.NewNoOpTracer(),
		metrics.NoOp{},
		cache.NewStore(),
		func(path string) ports.StateStore {
			assert.Equal(t, f.path(".hoard/state"), path)
			return state
		},
		nil,
	)

	report, err := a.Build(context.Background(), app.Options{})
	require.NoError(t, err)
	assert.True(t, report.Written)
}
