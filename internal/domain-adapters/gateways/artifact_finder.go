package gateways

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// ArtifactFinder provides utilities for locating downloaded build archives
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// FindArtifacts searches dir recursively for files named like the catalog
// files of entry. The first match per catalog file wins.
func (f *ArtifactFinder) FindArtifacts(dir, platform string, entry *entities.VersionEntry) ([]entities.Artifact, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("artifacts directory does not exist: %s", dir)
	}

	found := make(map[string]bool)
	var artifacts []entities.Artifact

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		basename := filepath.Base(path)
		if found[basename] {
			return nil
		}

		expected, ok := entry.FileByName(basename)
		if !ok {
			return nil
		}

		found[basename] = true
		artifacts = append(artifacts, entities.Artifact{
			Name:     basename,
			Version:  entry.Version,
			Platform: platform,
			Path:     path,
			Expected: expected,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artifacts, nil
}

// FindSignature returns the detached signature next to artifactPath, trying
// .asc before .sig
func (f *ArtifactFinder) FindSignature(artifactPath string) (string, bool) {
	for _, ext := range []string{".asc", ".sig"} {
		candidate := artifactPath + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
