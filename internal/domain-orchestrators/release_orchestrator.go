// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"github.com/ochairo/cefrelease/internal/domain/interfaces"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/gateways"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/services"
	domainServices "github.com/ochairo/cefrelease/internal/domain/services"
)

// ReleaseOrchestrator coordinates catalog lookups for the release pipeline
type ReleaseOrchestrator struct {
	catalogGW gateways.CatalogGateway
	selector  services.VersionSelector
	coverage  *domainServices.CoverageService
	logger    interfaces.Logger
	criteria  services.SelectionCriteria
}

// NewReleaseOrchestrator creates a new release orchestrator
func NewReleaseOrchestrator(
	catalogGW gateways.CatalogGateway,
	selector services.VersionSelector,
	logger interfaces.Logger,
	config *entities.PipelineConfig,
) *ReleaseOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ReleaseOrchestrator{
		catalogGW: catalogGW,
		selector:  selector,
		coverage:  domainServices.NewCoverageService(),
		logger:    logger,
		criteria: services.SelectionCriteria{
			PrimaryPlatform:   config.PrimaryPlatform,
			RequiredPlatforms: config.RequiredPlatforms,
			BetaMarker:        config.BetaMarker,
			SortByBranch:      config.SortByBranch,
		},
	}
}

// LatestResult contains the result of a latest-version lookup
type LatestResult struct {
	Entry          *entities.VersionEntry
	Found          bool
	Disqualified   []services.Disqualification
	CandidateCount int
	FetchDuration  time.Duration
}

// ResolveLatest fetches the catalog and selects the newest qualifying version.
// A fetch failure is returned as an error; no qualifying version is not.
func (o *ReleaseOrchestrator) ResolveLatest(ctx context.Context) (*LatestResult, error) {
	catalog, fetchDuration, err := o.fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := &LatestResult{FetchDuration: fetchDuration}
	candidates, _ := catalog.Versions(o.criteria.PrimaryPlatform)
	result.CandidateCount = len(candidates)

	o.logger.Debug("selecting latest stable version",
		interfaces.F("primary", o.criteria.PrimaryPlatform),
		interfaces.F("required", o.criteria.RequiredPlatforms),
		interfaces.F("candidates", result.CandidateCount),
		interfaces.F("sort_by_branch", o.criteria.SortByBranch))

	result.Entry, result.Found = o.selector.SelectLatestStable(catalog, o.criteria, func(d services.Disqualification) {
		result.Disqualified = append(result.Disqualified, d)
		o.logDisqualification(d)
	})

	if result.Found {
		o.logger.Info("selected version",
			interfaces.F("version", result.Entry.Version),
			interfaces.F("chromium", result.Entry.ChromiumVersion))
	} else {
		o.logger.Warn("no qualifying version found",
			interfaces.F("candidates", result.CandidateCount))
	}

	return result, nil
}

// Validate fetches the catalog and reports the coverage of a single version
func (o *ReleaseOrchestrator) Validate(ctx context.Context, version string) (*domainServices.CoverageReport, error) {
	catalog, _, err := o.fetch(ctx)
	if err != nil {
		return nil, err
	}

	report := o.coverage.ValidateVersion(catalog, version, o.criteria)
	o.logger.Debug("validated version",
		interfaces.F("version", version),
		interfaces.F("status", report.Status))

	return report, nil
}

// Lookup fetches the catalog and returns the entry of version on platform
func (o *ReleaseOrchestrator) Lookup(ctx context.Context, platform, version string) (*entities.VersionEntry, error) {
	catalog, _, err := o.fetch(ctx)
	if err != nil {
		return nil, err
	}

	entry, ok := catalog.Lookup(platform, version)
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrVersionNotFound, version, platform)
	}
	return entry, nil
}

func (o *ReleaseOrchestrator) fetch(ctx context.Context) (entities.BuildCatalog, time.Duration, error) {
	start := time.Now()
	catalog, err := o.catalogGW.FetchCatalog(ctx)
	elapsed := time.Since(start)
	if err != nil {
		return nil, elapsed, fmt.Errorf("failed to fetch build catalog: %w", err)
	}

	o.logger.Debug("fetched build catalog",
		interfaces.F("platforms", len(catalog)),
		interfaces.F("duration", elapsed.Round(time.Millisecond)))

	return catalog, elapsed, nil
}

func (o *ReleaseOrchestrator) logDisqualification(d services.Disqualification) {
	if d.Reason == domainServices.ReasonMissingOnPlatform {
		o.logger.Warn("skipping version not found for required platform",
			interfaces.F("version", d.Version),
			interfaces.F("platform", d.Platform))
		return
	}

	o.logger.Warn("skipping beta version",
		interfaces.F("version", d.Version),
		interfaces.F("reason", d.Reason))
}
