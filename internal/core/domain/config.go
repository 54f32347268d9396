package domain

import (
	"path/filepath"
	"runtime"
)

// Config is the project configuration read from hoard.yaml.
type Config struct {
	// Root is the directory containing the config file. Relative paths resolve against it.
	Root string `yaml:"-"`

	Entry   string      `yaml:"entry" validate:"required"`
	Output  string      `yaml:"output"`
	State   string      `yaml:"state"`
	Persist *bool       `yaml:"persist"`
	Cache   CacheConfig `yaml:"cache"`
	Log     LogConfig   `yaml:"log"`
}

// CacheConfig tunes the incremental build cache.
type CacheConfig struct {
	InitialAccuracy int64 `yaml:"initialAccuracy" validate:"omitempty,oneof=1 10 100 1000 10000"`
	Parallelism     int   `yaml:"parallelism" validate:"gte=0,lte=1024"`
	HashLedger      *bool `yaml:"hashLedger"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// EntryPath returns the absolute path of the entry module.
func (c *Config) EntryPath() string {
	return c.resolve(c.Entry)
}

// OutputPath returns the absolute path the bundle is written to.
func (c *Config) OutputPath() string {
	if c.Output == "" {
		return c.resolve(DefaultOutput)
	}
	return c.resolve(c.Output)
}

// StatePath returns the absolute path of the persisted cache state.
func (c *Config) StatePath() string {
	if c.State == "" {
		return c.resolve(DefaultStatePath())
	}
	return c.resolve(c.State)
}

// PersistEnabled reports whether cache state is saved between processes. Defaults to true.
func (c *Config) PersistEnabled() bool {
	return c.Persist == nil || *c.Persist
}

// Accuracy returns the configured initial accuracy window.
func (c *CacheConfig) Accuracy() AccuracyWindow {
	if c.InitialAccuracy == 0 {
		return DefaultAccuracyWindow
	}
	return AccuracyWindow(c.InitialAccuracy)
}

// Workers returns the fan-out limit for probes and hashing.
func (c *CacheConfig) Workers() int {
	if c.Parallelism <= 0 {
		return runtime.NumCPU()
	}
	return c.Parallelism
}

// LedgerEnabled reports whether the content hash ledger is maintained. Defaults to true.
func (c *CacheConfig) LedgerEnabled() bool {
	return c.HashLedger == nil || *c.HashLedger
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}
