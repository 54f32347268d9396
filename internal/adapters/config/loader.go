// Package config provides the configuration loader for hoard.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger    ports.Logger
	validator *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads hoard.yaml. path may name the file itself or a directory to start
// searching from; an empty path searches from the working directory.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := readAndUnmarshalYAML(configPath, &cfg); err != nil {
		return nil, err
	}

	if err := l.validator.Struct(&cfg); err != nil {
		return nil, zerr.With(invalid(err), "path", configPath)
	}

	root, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", configPath))
	}
	cfg.Root = root

	l.Logger.Debug("loaded config", "path", configPath, "entry", cfg.Entry)
	return &cfg, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", errors.Join(domain.ErrConfigReadFailed, err)
		}
		path = cwd
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, err.Error()), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	currentDir := path
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+domain.ConfigFileName+" in any parent"), "cwd", path)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", configPath))
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(parseErr, "path", configPath))
	}

	return nil
}

// invalid converts validator output into a config error naming the offending fields.
func invalid(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Join(domain.ErrConfigInvalid, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()+" failed "+fe.Tag())
	}
	return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, strings.Join(fields, "; ")), "fields", len(fields))
}
