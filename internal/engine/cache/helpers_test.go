package cache_test

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/hoard/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeInfo struct {
	name  string
	mtime time.Time
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (i fakeInfo) ModTime() time.Time { return i.mtime }
func (i fakeInfo) IsDir() bool        { return false }
func (i fakeInfo) Sys() any           { return nil }

type fakeFile struct {
	mtime   time.Time
	data    []byte
	statErr error
	readErr error
}

// fakeFS is an in-memory ports.FileSystem that records every call.
type fakeFS struct {
	mu    sync.Mutex
	files map[string]fakeFile
	stats []string
	reads []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string]fakeFile)}
}

func (f *fakeFS) set(path string, mtimeMs int64, data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = fakeFile{mtime: time.UnixMilli(mtimeMs), data: []byte(data)}
}

func (f *fakeFS) setFile(path string, file fakeFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = file
}

func (f *fakeFS) remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
}

func (f *fakeFS) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	f.mu.Lock()
	f.stats = append(f.stats, path)
	file, ok := f.files[path]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	if file.statErr != nil {
		return nil, file.statErr
	}
	return fakeInfo{name: path, mtime: file.mtime}, nil
}

func (f *fakeFS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	f.mu.Lock()
	f.reads = append(f.reads, path)
	file, ok := f.files[path]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.readErr != nil {
		return nil, file.readErr
	}
	return slices.Clone(file.data), nil
}

func (f *fakeFS) statCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.stats)
	slices.Sort(out)
	return out
}

func (f *fakeFS) readCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.reads)
	slices.Sort(out)
	return out
}

func (f *fakeFS) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = nil
	f.reads = nil
}

func (f *fakeFS) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Sorted(maps.Keys(f.files))
}

// xxHasher mirrors the production hasher's digest format.
type xxHasher struct{}

func (xxHasher) HashContent(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}
