// Package services defines interfaces for domain service contracts.
package services

import (
	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// Disqualification explains why a candidate version was skipped
type Disqualification struct {
	Version  string
	Reason   string
	Platform string // Set for missing-on-platform reasons
}

// DisqualificationObserver receives a notice for each skipped candidate.
// Observers are informational only and cannot change the selection.
type DisqualificationObserver func(Disqualification)

// SelectionCriteria configures which versions qualify
type SelectionCriteria struct {
	PrimaryPlatform   string
	RequiredPlatforms []string
	BetaMarker        string
	SortByBranch      bool
}

// VersionSelector picks the newest qualifying version from a catalog
type VersionSelector interface {
	SelectLatestStable(catalog entities.BuildCatalog, criteria SelectionCriteria, observe DisqualificationObserver) (*entities.VersionEntry, bool)
}
