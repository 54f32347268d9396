// Package cas implements persistence of the build cache state between processes.
package cas

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/opencontainers/go-digest"
	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
)

// Magic is the first line of every state file.
const Magic = "hoard-state v1"

var _ ports.StateStore = (*Store)(nil)

// record is the on-disk form of domain.BuildCacheState.
type record struct {
	HasSnapshot bool              `msgpack:"has_snapshot"`
	Files       []string          `msgpack:"files"`
	Contexts    []string          `msgpack:"contexts"`
	Hashes      map[string]string `msgpack:"hashes"`
	Window      int64             `msgpack:"window"`
}

// Store implements ports.StateStore using a single compressed file.
//
// The file is a text header followed by the payload:
//
//	hoard-state v1
//	sha256:<hex digest of payload>
//	<zstd(msgpack(record))>
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted state. It returns false when no state has been saved.
func (s *Store) Load(ctx context.Context) (domain.BuildCacheState, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.BuildCacheState{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.BuildCacheState{}, false, nil
		}
		return domain.BuildCacheState{}, false, s.fail(domain.ErrStateReadFailed, err)
	}

	payload, err := s.verify(data)
	if err != nil {
		return domain.BuildCacheState{}, false, err
	}

	state, err := decode(payload)
	if err != nil {
		return domain.BuildCacheState{}, false, zerr.With(err, "path", s.path)
	}
	return state, true, nil
}

// Save writes state to disk, replacing the previous file atomically.
func (s *Store) Save(ctx context.Context, state domain.BuildCacheState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := encode(state)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(Magic) + len(payload) + 80)
	buf.WriteString(Magic)
	buf.WriteByte('\n')
	buf.WriteString(digest.FromBytes(payload).String())
	buf.WriteByte('\n')
	buf.Write(payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return s.fail(domain.ErrStateWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // No-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	if err := tmp.Chmod(domain.PrivateFilePerm); err != nil {
		_ = tmp.Close()
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	return nil
}

// Clear removes the state file. Removing a state that does not exist is not an error.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return s.fail(domain.ErrStateWriteFailed, err)
	}
	return nil
}

// verify checks the header and digest and returns the payload.
func (s *Store) verify(data []byte) ([]byte, error) {
	magic, rest, ok := bytes.Cut(data, []byte{'\n'})
	if !ok || string(magic) != Magic {
		return nil, s.corrupt("unrecognized header")
	}
	sum, payload, ok := bytes.Cut(rest, []byte{'\n'})
	if !ok {
		return nil, s.corrupt("missing digest")
	}

	want, err := digest.Parse(string(sum))
	if err != nil {
		return nil, s.corrupt("malformed digest")
	}
	if got := want.Algorithm().FromBytes(payload); got != want {
		return nil, zerr.With(s.corrupt("digest mismatch"), "digest", got.String())
	}
	return payload, nil
}

func (s *Store) fail(sentinel, cause error) error {
	return errors.Join(sentinel, zerr.With(cause, "path", s.path))
}

func (s *Store) corrupt(reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrStateCorrupt, reason), "path", s.path)
}

func encode(state domain.BuildCacheState) ([]byte, error) {
	rec := record{
		HasSnapshot: state.HasSnapshot(),
		Files:       state.Snapshot.FileDependencies(),
		Contexts:    state.Snapshot.ContextDependencies(),
		Hashes:      state.HashLedger.Entries(),
		Window:      int64(state.AccuracyWindow),
	}

	raw, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, errors.Join(domain.ErrStateEncodeFailed, err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, errors.Join(domain.ErrStateEncodeFailed, err)
	}
	defer enc.Close() //nolint:errcheck // EncodeAll holds no pending data

	return enc.EncodeAll(raw, nil), nil
}

func decode(payload []byte) (domain.BuildCacheState, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return domain.BuildCacheState{}, errors.Join(domain.ErrStateDecodeFailed, err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return domain.BuildCacheState{}, errors.Join(domain.ErrStateDecodeFailed, err)
	}

	var rec record
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return domain.BuildCacheState{}, errors.Join(domain.ErrStateDecodeFailed, err)
	}

	window := domain.AccuracyWindow(rec.Window)
	if !window.Valid() {
		return domain.BuildCacheState{}, zerr.With(
			zerr.Wrap(domain.ErrStateCorrupt, "invalid accuracy window"), "window", rec.Window)
	}

	state := domain.NewBuildCacheState(window)
	state.HashLedger = domain.NewModuleHashLedger(rec.Hashes)
	if rec.HasSnapshot {
		state.Snapshot = domain.NewDependencySnapshot(rec.Files, rec.Contexts)
	}
	return state, nil
}
