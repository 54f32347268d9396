package domain_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hoard/internal/core/domain"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &domain.Config{Root: "/project", Entry: "src/index.js"}

	assert.Equal(t, filepath.Join("/project", "src", "index.js"), cfg.EntryPath())
	assert.Equal(t, filepath.Join("/project", "dist", "bundle.js"), cfg.OutputPath())
	assert.Equal(t, filepath.Join("/project", ".hoard", "state"), cfg.StatePath())
	assert.True(t, cfg.PersistEnabled())
	assert.True(t, cfg.Cache.LedgerEnabled())
	assert.Equal(t, domain.DefaultAccuracyWindow, cfg.Cache.Accuracy())
	assert.Equal(t, runtime.NumCPU(), cfg.Cache.Workers())
}

func TestConfig_Overrides(t *testing.T) {
	off := false
	cfg := &domain.Config{
		Root:    "/project",
		Entry:   "/abs/index.js",
		Output:  "out/app.js",
		State:   "/tmp/hoard-state",
		Persist: &off,
		Cache: domain.CacheConfig{
			InitialAccuracy: 1000,
			Parallelism:     3,
			HashLedger:      &off,
		},
	}

	assert.Equal(t, "/abs/index.js", cfg.EntryPath())
	assert.Equal(t, filepath.Join("/project", "out", "app.js"), cfg.OutputPath())
	assert.Equal(t, "/tmp/hoard-state", cfg.StatePath())
	assert.False(t, cfg.PersistEnabled())
	assert.False(t, cfg.Cache.LedgerEnabled())
	assert.Equal(t, domain.AccuracyWindow(1000), cfg.Cache.Accuracy())
	assert.Equal(t, 3, cfg.Cache.Workers())
}

func TestBuildResult_Rebuilt(t *testing.T) {
	r := &domain.BuildResult{Modules: []domain.ModuleRecord{
		{Key: "a", Resource: "/a.js", Status: domain.ModuleBuilt},
		{Key: "b", Resource: "/b.js", Status: domain.ModuleCached},
		{Key: "c", Resource: "/c.js", Status: domain.ModuleFailed},
		{Key: "d", Status: domain.ModuleBuilt},
	}}

	rebuilt := r.Rebuilt()
	assert.Len(t, rebuilt, 1)
	assert.Equal(t, "a", rebuilt[0].Key)
	assert.Equal(t, 2, r.Count(domain.ModuleBuilt))
	assert.Equal(t, 1, r.Count(domain.ModuleCached))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", domain.PhaseIdle.String())
	assert.Equal(t, "probing", domain.PhaseProbing.String())
	assert.Equal(t, "building", domain.PhaseBuilding.String())
	assert.Equal(t, "finalizing", domain.PhaseFinalizing.String())
	assert.Equal(t, "unknown", domain.Phase(42).String())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, domain.LogLevelDebug, domain.ParseLogLevel("DEBUG"))
	assert.Equal(t, domain.LogLevelWarn, domain.ParseLogLevel("warning"))
	assert.Equal(t, domain.LogLevelError, domain.ParseLogLevel("error"))
	assert.Equal(t, domain.LogLevelInfo, domain.ParseLogLevel(""))
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
}
