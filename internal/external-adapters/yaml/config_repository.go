package yaml

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// DefaultConfigFile is read from the working directory when no path is given
const DefaultConfigFile = ".cefrelease.yml"

// ConfigRepository implements repositories.ConfigRepository using a YAML file
type ConfigRepository struct {
	fs       afero.Fs
	path     string
	explicit bool
	parser   *ConfigParser
}

// NewConfigRepository creates a repository reading path from fs. An empty
// path means DefaultConfigFile, which may be absent.
func NewConfigRepository(fs afero.Fs, path string) *ConfigRepository {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	return &ConfigRepository{
		fs:       fs,
		path:     path,
		explicit: explicit,
		parser:   NewConfigParser(),
	}
}

// LoadConfig reads the configuration file. A missing default file yields
// the built-in defaults; a missing explicit file is an error.
func (r *ConfigRepository) LoadConfig(_ context.Context) (*entities.PipelineConfig, error) {
	exists, err := afero.Exists(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config %s: %w", r.path, err)
	}

	if !exists {
		if r.explicit {
			return nil, fmt.Errorf("config not found: %s", r.path)
		}
		return entities.DefaultPipelineConfig(), nil
	}

	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", r.path, err)
	}

	cfg, err := r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", r.path, err)
	}

	return cfg, nil
}
