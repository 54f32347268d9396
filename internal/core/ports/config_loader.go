package ports

import "go.trai.ch/hoard/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. path may name a config file or a directory; for a
	// directory the loader walks up until it finds hoard.yaml.
	Load(path string) (*domain.Config, error)
}
