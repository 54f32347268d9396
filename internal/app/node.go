package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hoard/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/hoard/internal/engine/cache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the objects the command line needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.FileSystemNodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			cache.StoreNodeID,
			cas.NodeID,
			watcher.WatcherNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	fsys, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cache.Store](ctx)
	if err != nil {
		return nil, err
	}

	newStateStore, err := graft.Dep[ports.StateStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, fsys, hasher, tracer, m, store, newStateStore, newWatcher), nil
}
