package services

import (
	"fmt"
	"strings"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/services"
)

// CoverageStatus represents the release readiness of a single version
type CoverageStatus string

// Coverage validation statuses
const (
	StatusReady            CoverageStatus = "ready"
	StatusNotFound         CoverageStatus = "not_found"
	StatusBeta             CoverageStatus = "beta"
	StatusMissingPlatforms CoverageStatus = "missing_platforms"
)

// CoverageReport contains the validation result for one version
type CoverageReport struct {
	Version            string
	Status             CoverageStatus
	Channel            entities.Channel
	BetaArtifacts      []string
	RequiredPlatforms  []string
	AvailablePlatforms []string
	MissingPlatforms   []string
}

// IsReady returns true if the version can be used for a release
func (r *CoverageReport) IsReady() bool {
	return r.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (r *CoverageReport) ErrorMessage() string {
	switch r.Status {
	case StatusReady:
		return ""
	case StatusNotFound:
		return fmt.Sprintf("Version %s is not published on the primary platform", r.Version)
	case StatusBeta:
		msg := fmt.Sprintf("Version %s is not stable (channel: %s)", r.Version, r.Channel)
		if len(r.BetaArtifacts) > 0 {
			msg += fmt.Sprintf("\n   Beta artifacts: %s", strings.Join(r.BetaArtifacts, ", "))
		}
		return msg
	case StatusMissingPlatforms:
		return fmt.Sprintf("Version %s is missing on %d platforms: %s",
			r.Version, len(r.MissingPlatforms), strings.Join(r.MissingPlatforms, ", "))
	default:
		return "Unknown status"
	}
}

// CoverageService validates a specific version against the selection rules
type CoverageService struct{}

// NewCoverageService creates a new coverage service
func NewCoverageService() *CoverageService {
	return &CoverageService{}
}

// ValidateVersion reports whether version would qualify for selection.
// Platform coverage is always computed, even for beta or unknown versions.
func (s *CoverageService) ValidateVersion(catalog entities.BuildCatalog, version string, criteria services.SelectionCriteria) *CoverageReport {
	report := &CoverageReport{
		Version:           version,
		RequiredPlatforms: s.requiredWithPrimary(criteria),
	}

	for _, platform := range report.RequiredPlatforms {
		if catalog.Has(platform, version) {
			report.AvailablePlatforms = append(report.AvailablePlatforms, platform)
		} else {
			report.MissingPlatforms = append(report.MissingPlatforms, platform)
		}
	}

	entry, found := catalog.Lookup(criteria.PrimaryPlatform, version)
	if !found {
		report.Status = StatusNotFound
		return report
	}

	report.Channel = entry.Channel
	report.BetaArtifacts = s.findBetaArtifacts(entry, criteria.BetaMarker)

	switch {
	case entry.Channel != entities.ChannelStable || len(report.BetaArtifacts) > 0:
		report.Status = StatusBeta
	case len(report.MissingPlatforms) > 0:
		report.Status = StatusMissingPlatforms
	default:
		report.Status = StatusReady
	}

	return report
}

// requiredWithPrimary returns the required platforms with the primary
// platform first and duplicates removed
func (s *CoverageService) requiredWithPrimary(criteria services.SelectionCriteria) []string {
	seen := map[string]bool{criteria.PrimaryPlatform: true}
	platforms := []string{criteria.PrimaryPlatform}

	for _, p := range criteria.RequiredPlatforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		platforms = append(platforms, p)
	}

	return platforms
}

// findBetaArtifacts returns the names of files carrying the beta marker
func (s *CoverageService) findBetaArtifacts(entry *entities.VersionEntry, marker string) []string {
	if marker == "" {
		return nil
	}

	var names []string
	for _, f := range entry.Files {
		if strings.Contains(f.Name, marker) {
			names = append(names, f.Name)
		}
	}
	return names
}
