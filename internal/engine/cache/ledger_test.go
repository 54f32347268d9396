package cache_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/engine/cache"
)

func TestLedgerUpdater_HashesOnlyRebuiltModules(t *testing.T) {
	fsys := newFakeFS()
	fsys.set("/src/a.js", 1, "module.exports = 1;")
	fsys.set("/src/b.js", 1, "module.exports = 2;")
	fsys.set("/src/c.js", 1, "module.exports = 3;")

	updater := cache.NewLedgerUpdater(fsys, xxHasher{}, 4)
	updates, err := updater.Hash(context.Background(), []domain.ModuleRecord{
		{Key: "module:/src/a.js", Resource: "/src/a.js", Status: domain.ModuleBuilt},
		{Key: "module:/src/b.js", Resource: "/src/b.js", Status: domain.ModuleCached},
		{Key: "module:/src/c.js", Resource: "/src/c.js", Status: domain.ModuleFailed},
		{Key: "module:/src/a.js#2", Resource: "/src/a.js", Status: domain.ModuleBuilt},
		{Key: "runtime", Status: domain.ModuleBuilt},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"/src/a.js": xxHasher{}.HashContent([]byte("module.exports = 1;")),
	}, updates)
	assert.Equal(t, []string{"/src/a.js"}, fsys.readCalls(), "each resource is read once, cached modules never")
	assert.Len(t, updates["/src/a.js"], 16)
}

func TestLedgerUpdater_ReadFailureIsFatal(t *testing.T) {
	fsys := newFakeFS()
	fsys.set("/src/a.js", 1, "a")

	updater := cache.NewLedgerUpdater(fsys, xxHasher{}, 1)
	updates, err := updater.Hash(context.Background(), []domain.ModuleRecord{
		{Key: "a", Resource: "/src/a.js", Status: domain.ModuleBuilt},
		{Key: "gone", Resource: "/src/gone.js", Status: domain.ModuleBuilt},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHashComputationFailed)
	assert.ErrorIs(t, err, fs.ErrNotExist, "a just-built module is expected to exist")
	assert.Nil(t, updates)
}

func TestLedgerUpdater_NothingRebuilt(t *testing.T) {
	fsys := newFakeFS()
	updates, err := cache.NewLedgerUpdater(fsys, xxHasher{}, 1).Hash(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, updates)
	assert.Empty(t, fsys.readCalls())
}

func TestLedgerUpdater_PrefersBuiltDigest(t *testing.T) {
	fsys := newFakeFS()
	fsys.set("/src/a.js", 1, "saved after the build read it")
	fsys.set("/src/b.js", 1, "module.exports = 2;")

	updater := cache.NewLedgerUpdater(fsys, xxHasher{}, 2)
	updates, err := updater.Hash(context.Background(), []domain.ModuleRecord{
		{Key: "a", Resource: "/src/a.js", Status: domain.ModuleBuilt, ContentHash: "built-digest"},
		{Key: "b", Resource: "/src/b.js", Status: domain.ModuleBuilt},
		{Key: "c", Resource: "/src/c.js", Status: domain.ModuleCached, ContentHash: "ignored"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"/src/a.js": "built-digest",
		"/src/b.js": xxHasher{}.HashContent([]byte("module.exports = 2;")),
	}, updates)
	assert.Equal(t, []string{"/src/b.js"}, fsys.readCalls(), "a module with a built digest is not read again")
}
