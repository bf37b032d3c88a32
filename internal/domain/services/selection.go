// Package services implements domain business logic and use cases.
package services

import (
	"sort"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/services"
)

// Disqualification reasons reported to observers
const (
	ReasonBeta              = "beta/has-beta-artifact"
	ReasonMissingOnPlatform = "missing-on-platform"
)

// versionSelector implements VersionSelector over an in-memory catalog
type versionSelector struct{}

// NewVersionSelector creates a new version selector
func NewVersionSelector() services.VersionSelector {
	return &versionSelector{}
}

// SelectLatestStable returns the most preferred candidate of the primary
// platform that is stable and published on every required platform.
// The catalog is never modified.
func (s *versionSelector) SelectLatestStable(catalog entities.BuildCatalog, criteria services.SelectionCriteria, observe services.DisqualificationObserver) (*entities.VersionEntry, bool) {
	if observe == nil {
		observe = func(services.Disqualification) {}
	}

	candidates, _ := catalog.Versions(criteria.PrimaryPlatform)
	if len(candidates) == 0 {
		return nil, false
	}

	order := candidateOrder(candidates, criteria.SortByBranch)
	for _, idx := range order {
		candidate := &candidates[idx]
		qualifies := true

		if candidate.Channel != entities.ChannelStable || candidate.HasFileContaining(criteria.BetaMarker) {
			qualifies = false
			observe(services.Disqualification{Version: candidate.Version, Reason: ReasonBeta})
		}

		for _, platform := range criteria.RequiredPlatforms {
			if platform == criteria.PrimaryPlatform {
				continue
			}
			if !catalog.Has(platform, candidate.Version) {
				qualifies = false
				observe(services.Disqualification{
					Version:  candidate.Version,
					Reason:   ReasonMissingOnPlatform,
					Platform: platform,
				})
			}
		}

		if qualifies {
			return candidate, true
		}
	}

	return nil, false
}

// candidateOrder returns indexes into candidates in preference order.
// With sortByBranch the indexes are stably sorted by descending branch
// number; entries without a branch number keep their relative order last.
func candidateOrder(candidates []entities.VersionEntry, sortByBranch bool) []int {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	if !sortByBranch {
		return order
	}

	sort.SliceStable(order, func(a, b int) bool {
		ba, okA := candidates[order[a]].BranchNumber()
		bb, okB := candidates[order[b]].BranchNumber()
		if okA != okB {
			return okA
		}
		return ba > bb
	})
	return order
}
