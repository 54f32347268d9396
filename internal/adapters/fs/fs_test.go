package fs_test

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hoard/internal/adapters/fs"
)

func TestFileSystem_Stat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("module.exports = 1;\n"), 0o600))

	mtime := time.UnixMilli(1_700_000_000_123)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	info, err := fs.NewFileSystem().Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000_123), info.ModTime().UnixMilli())
	assert.False(t, info.IsDir())
}

func TestFileSystem_StatMissing(t *testing.T) {
	_, err := fs.NewFileSystem().Stat(context.Background(), filepath.Join(t.TempDir(), "gone.js"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
	assert.Contains(t, err.Error(), "gone.js")
}

func TestFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	data, err := fs.NewFileSystem().ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fs.NewFileSystem().ReadFile(context.Background(), filepath.Join(dir, "missing.js"))
	assert.ErrorIs(t, err, iofs.ErrNotExist)
}

func TestFileSystem_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fsys := fs.NewFileSystem()
	_, err := fsys.Stat(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)

	_, err = fsys.ReadFile(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}
