package watcher

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/hoard/internal/adapters/logger"
	"go.trai.ch/hoard/internal/core/ports"
)

// WatcherNodeID is the unique identifier for the watcher factory Graft node.
const WatcherNodeID graft.ID = "adapter.watcher"

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        WatcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.WatcherFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				w, err := NewWatcher(log)
				if err != nil {
					return nil, err
				}
				return w, nil
			}, nil
		},
	})
}
