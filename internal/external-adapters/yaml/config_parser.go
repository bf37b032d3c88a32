// Package yaml provides YAML-based pipeline configuration parsing and repository implementations.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	IndexURL          string     `yaml:"index_url"`
	PrimaryPlatform   string     `yaml:"primary_platform"`
	RequiredPlatforms []string   `yaml:"required_platforms"`
	BetaMarker        *string    `yaml:"beta_marker"`
	SortByBranch      *bool      `yaml:"sort_by_branch"`
	Notes             *yamlNotes `yaml:"notes"`
}

type yamlNotes struct {
	Label     string `yaml:"label"`
	Delimiter string `yaml:"delimiter"`
	RefEnv    string `yaml:"ref_env"`
}

// ConfigParser parses YAML pipeline configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// Parse parses YAML bytes into a PipelineConfig. Fields that are not set
// keep their default values; unknown fields are rejected.
func (p *ConfigParser) Parse(data []byte) (*entities.PipelineConfig, error) {
	var raw yamlConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultPipelineConfig()

	if raw.IndexURL != "" {
		cfg.IndexURL = raw.IndexURL
	}
	if raw.PrimaryPlatform != "" {
		cfg.PrimaryPlatform = raw.PrimaryPlatform
	}
	if raw.RequiredPlatforms != nil {
		cfg.RequiredPlatforms = normalizePlatforms(raw.RequiredPlatforms)
	}
	if raw.BetaMarker != nil {
		cfg.BetaMarker = *raw.BetaMarker
	}
	if raw.SortByBranch != nil {
		cfg.SortByBranch = *raw.SortByBranch
	}
	if raw.Notes != nil {
		if raw.Notes.Label != "" {
			cfg.Notes.Label = raw.Notes.Label
		}
		if raw.Notes.Delimiter != "" {
			cfg.Notes.Delimiter = raw.Notes.Delimiter
		}
		if raw.Notes.RefEnv != "" {
			cfg.Notes.RefEnv = raw.Notes.RefEnv
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants of a pipeline configuration
func Validate(cfg *entities.PipelineConfig) error {
	if cfg.IndexURL == "" {
		return fmt.Errorf("config must have an index_url")
	}
	if cfg.PrimaryPlatform == "" {
		return fmt.Errorf("config must have a primary_platform")
	}
	if cfg.BetaMarker == "" {
		return fmt.Errorf("config beta_marker must not be empty")
	}
	for _, p := range cfg.RequiredPlatforms {
		if p == "" {
			return fmt.Errorf("config required_platforms must not contain empty names")
		}
	}
	return nil
}

// normalizePlatforms trims names and drops duplicates, keeping order
func normalizePlatforms(platforms []string) []string {
	seen := make(map[string]bool, len(platforms))
	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		p = strings.TrimSpace(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
