package gateways

import (
	"context"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// ArtifactFinder locates downloaded build archives on disk
type ArtifactFinder interface {
	// FindArtifacts returns local files matching the catalog files of entry
	FindArtifacts(dir, platform string, entry *entities.VersionEntry) ([]entities.Artifact, error)
}

// ChecksumVerifier verifies file digests
type ChecksumVerifier interface {
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
}

// SignatureVerifier verifies detached OpenPGP signatures
type SignatureVerifier interface {
	// ImportKeyFromFile loads public keys into the keyring
	ImportKeyFromFile(keyPath string) error

	// VerifySignatureFromFile verifies filePath against the detached signature at sigPath
	VerifySignatureFromFile(filePath, sigPath string) error
}
