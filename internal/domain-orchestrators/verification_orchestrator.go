package orchestrators

import (
	"context"
	"errors"
	"fmt"

	"github.com/ochairo/cefrelease/internal/domain/entities"
	"github.com/ochairo/cefrelease/internal/domain/interfaces"
	"github.com/ochairo/cefrelease/internal/domain/interfaces/gateways"
)

// ErrVersionNotFound is returned when a version is not listed for a platform
var ErrVersionNotFound = errors.New("version not found")

// SignatureLocator finds the detached signature of an artifact
type SignatureLocator interface {
	FindSignature(artifactPath string) (string, bool)
}

// VerificationOrchestrator verifies downloaded archives against the catalog
type VerificationOrchestrator struct {
	finder     gateways.ArtifactFinder
	locator    SignatureLocator
	checksums  gateways.ChecksumVerifier
	signatures gateways.SignatureVerifier // nil disables signature checks
	logger     interfaces.Logger
}

// NewVerificationOrchestrator creates a verification orchestrator.
// Pass a nil SignatureVerifier to verify checksums only.
func NewVerificationOrchestrator(
	finder gateways.ArtifactFinder,
	locator SignatureLocator,
	checksums gateways.ChecksumVerifier,
	signatures gateways.SignatureVerifier,
	logger interfaces.Logger,
) *VerificationOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &VerificationOrchestrator{
		finder:     finder,
		locator:    locator,
		checksums:  checksums,
		signatures: signatures,
		logger:     logger,
	}
}

// VerifyResult summarises the verification of all artifacts found
type VerifyResult struct {
	Results []entities.VerificationResult
	Passed  int
	Failed  int
}

// OK reports whether at least one artifact was verified and none failed
func (r *VerifyResult) OK() bool {
	return len(r.Results) > 0 && r.Failed == 0
}

// VerifyArtifacts checks every local archive of entry found under dir.
// Individual failures are recorded in the result, not returned.
func (o *VerificationOrchestrator) VerifyArtifacts(ctx context.Context, dir, platform string, entry *entities.VersionEntry) (*VerifyResult, error) {
	artifacts, err := o.finder.FindArtifacts(dir, platform, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to find artifacts: %w", err)
	}

	o.logger.Debug("found artifacts",
		interfaces.F("dir", dir),
		interfaces.F("version", entry.Version),
		interfaces.F("count", len(artifacts)))

	result := &VerifyResult{}
	for _, artifact := range artifacts {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r := o.verifyOne(ctx, artifact)
		if r.OK() {
			result.Passed++
		} else {
			result.Failed++
			o.logger.Error("artifact verification failed",
				interfaces.F("artifact", artifact.Name),
				interfaces.F("error", r.Error))
		}
		result.Results = append(result.Results, r)
	}

	return result, nil
}

func (o *VerificationOrchestrator) verifyOne(ctx context.Context, artifact entities.Artifact) entities.VerificationResult {
	r := entities.VerificationResult{Artifact: artifact}

	if artifact.Expected.SHA1 == "" {
		r.Error = "catalog lists no checksum"
		return r
	}

	if err := o.checksums.VerifyChecksum(ctx, artifact.Path, artifact.Expected.SHA1); err != nil {
		r.Error = err.Error()
		return r
	}
	r.ChecksumOK = true

	if o.signatures == nil {
		return r
	}

	r.SignatureChecked = true
	sigPath, ok := o.locator.FindSignature(artifact.Path)
	if !ok {
		r.Error = "no detached signature (.asc or .sig) found"
		return r
	}
	r.SignaturePath = sigPath

	if err := o.signatures.VerifySignatureFromFile(artifact.Path, sigPath); err != nil {
		r.Error = err.Error()
		return r
	}
	r.SignatureOK = true

	return r
}
