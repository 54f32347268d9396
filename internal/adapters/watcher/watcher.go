package watcher

import (
	"context"
	"errors"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher watches a set of directories, non-recursively, using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent

	mu      sync.Mutex
	watched map[string]struct{}
	started bool
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(domain.ErrWatcherFailed, err)
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		watched:   make(map[string]struct{}),
	}, nil
}

// Start watches dirs. Directories from a previous call that are not in dirs are
// dropped. The event loop is started on the first call and ends with ctx.
func (w *Watcher) Start(ctx context.Context, dirs []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	want := make(map[string]struct{}, len(dirs))
	for _, dir := range dirs {
		want[dir] = struct{}{}
	}

	for dir := range w.watched {
		if _, keep := want[dir]; !keep {
			_ = w.fsWatcher.Remove(dir)
			delete(w.watched, dir)
		}
	}

	var errs error
	for _, dir := range slices.Sorted(maps.Keys(want)) {
		if _, ok := w.watched[dir]; ok {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			// A context directory may have been deleted since the last build.
			w.logger.Warn("cannot watch directory", "dir", dir, "error", err.Error())
			errs = errors.Join(errs, zerr.With(err, "dir", dir))
			continue
		}
		w.watched[dir] = struct{}{}
	}

	if len(w.watched) == 0 && errs != nil {
		return errors.Join(domain.ErrWatcherFailed, errs)
	}

	if !w.started {
		w.started = true
		go w.processEvents(ctx)
	}
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents converts raw fsnotify events to ports.WatchEvent.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file system watcher error", "error", err.Error())
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
// Chmod-only events are dropped.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}
	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}
