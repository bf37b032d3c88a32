// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// ConfigRepository defines the interface for loading the pipeline configuration
type ConfigRepository interface {
	// LoadConfig returns the pipeline configuration, falling back to defaults
	// when no configuration file exists
	LoadConfig(ctx context.Context) (*entities.PipelineConfig, error)
}
