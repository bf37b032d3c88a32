package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"github.com/ochairo/cefrelease/internal/domain/interfaces"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/repositories"
	"github.com/ochairo/cefrelease/internal/external-adapters/yaml"
)

// catalogFlags are the selection overrides shared by latest, validate and verify
type catalogFlags struct {
	configPath    string
	indexURL      string
	primary       string
	required      string
	betaMarker    string
	upstreamOrder bool
}

func (c *catalogFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Pipeline config file (default "+yaml.DefaultConfigFile+" if present)")
	fs.StringVar(&c.indexURL, "index-url", "", "CEF build index URL (default "+entities.DefaultIndexURL+")")
	fs.StringVar(&c.primary, "primary", "", "Platform whose version list is searched (default "+entities.DefaultPrimaryPlatform+")")
	fs.StringVar(&c.required, "required", "", "Comma-separated platforms a version must be published on")
	fs.StringVar(&c.betaMarker, "beta-marker", "", "File name substring marking beta artifacts (default "+entities.DefaultBetaMarker+")")
	fs.BoolVar(&c.upstreamOrder, "upstream-order", false, "Keep the index order instead of sorting by Chromium branch")
}

// load reads the config file and applies command-line overrides
func (c *catalogFlags) load(ctx context.Context) (*entities.PipelineConfig, error) {
	cfg, err := loadConfig(ctx, c.configPath)
	if err != nil {
		return nil, err
	}

	if c.indexURL != "" {
		cfg.IndexURL = c.indexURL
	}
	if c.primary != "" {
		cfg.PrimaryPlatform = c.primary
	}
	if c.required != "" {
		cfg.RequiredPlatforms = splitList(c.required)
	}
	if c.betaMarker != "" {
		cfg.BetaMarker = c.betaMarker
	}
	if c.upstreamOrder {
		cfg.SortByBranch = false
	}

	if err := yaml.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadConfig(ctx context.Context, path string) (*entities.PipelineConfig, error) {
	var repo repositories.ConfigRepository = yaml.NewConfigRepository(afero.NewOsFs(), path)
	cfg, err := repo.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newLogger returns a stderr logger; quiet wins over verbose
func newLogger(quiet, verbose bool) interfaces.Logger {
	if quiet {
		return &interfaces.NoOpLogger{}
	}
	if verbose {
		return interfaces.NewWriterLogger(os.Stderr, interfaces.LevelDebug)
	}
	return interfaces.NewWriterLogger(os.Stderr, interfaces.LevelWarn)
}
