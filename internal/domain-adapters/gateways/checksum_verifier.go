package gateways

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: The build index publishes SHA-1 digests
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Supported digest algorithms
const (
	AlgorithmSHA1   = "sha1"
	AlgorithmSHA256 = "sha256"
)

// checksumVerifier implements checksum verification using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// algorithmFor picks the digest algorithm from the hex length of the expected sum
func algorithmFor(expectedSum string) (string, error) {
	switch len(expectedSum) {
	case sha1.Size * 2:
		return AlgorithmSHA1, nil
	case sha256.Size * 2:
		return AlgorithmSHA256, nil
	default:
		return "", fmt.Errorf("unsupported checksum length %d", len(expectedSum))
	}
}

// VerifyChecksum verifies a file's SHA-1 or SHA-256 checksum
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	expectedSum = strings.ToLower(strings.TrimSpace(expectedSum))

	algorithm, err := algorithmFor(expectedSum)
	if err != nil {
		return err
	}

	actualSum, err := v.CalculateChecksum(filePath, algorithm)
	if err != nil {
		return err
	}

	if actualSum != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// CalculateChecksum calculates the checksum of a file with the given algorithm
func (v *checksumVerifier) CalculateChecksum(filePath, algorithm string) (string, error) {
	var h hash.Hash
	switch algorithm {
	case AlgorithmSHA1:
		//nolint:gosec // G401: Matches the digest published by the build index
		h = sha1.New()
	case AlgorithmSHA256:
		h = sha256.New()
	default:
		return "", fmt.Errorf("unsupported checksum algorithm: %s", algorithm)
	}

	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
