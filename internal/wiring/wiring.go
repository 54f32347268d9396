// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/hoard/internal/adapters/cas"
	_ "go.trai.ch/hoard/internal/adapters/config"
	_ "go.trai.ch/hoard/internal/adapters/fs"
	_ "go.trai.ch/hoard/internal/adapters/logger"
	_ "go.trai.ch/hoard/internal/adapters/metrics"
	_ "go.trai.ch/hoard/internal/adapters/telemetry"
	_ "go.trai.ch/hoard/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/hoard/internal/app"
	_ "go.trai.ch/hoard/internal/engine/cache"
)
