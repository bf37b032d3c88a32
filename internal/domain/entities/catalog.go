package entities

import (
	"strconv"
	"strings"
)

// Channel is the release maturity of a build
type Channel string

// Release channels published in the build index
const (
	ChannelStable Channel = "stable"
	ChannelBeta   Channel = "beta"
)

// Valid reports whether the channel is one the index is known to publish
func (c Channel) Valid() bool {
	return c == ChannelStable || c == ChannelBeta
}

// FileKind identifies the distribution flavour of an artifact file
type FileKind string

// Artifact kinds published per version
const (
	FileKindStandard       FileKind = "standard"
	FileKindMinimal        FileKind = "minimal"
	FileKindClient         FileKind = "client"
	FileKindDebugSymbols   FileKind = "debug_symbols"
	FileKindReleaseSymbols FileKind = "release_symbols"
)

// ArtifactFile is a single downloadable file of a build
type ArtifactFile struct {
	Kind         FileKind
	Name         string
	SHA1         string
	Size         int64
	LastModified string
}

// VersionEntry is one published build for a platform
type VersionEntry struct {
	Version         string // cef_version, e.g. "120.1.10+g3ce3184+chromium-120.0.6099.129"
	ChromiumVersion string
	Channel         Channel
	Files           []ArtifactFile
}

// HasFileContaining reports whether any artifact file name contains marker
func (v *VersionEntry) HasFileContaining(marker string) bool {
	if marker == "" {
		return false
	}
	for _, f := range v.Files {
		if strings.Contains(f.Name, marker) {
			return true
		}
	}
	return false
}

// FileByName returns the artifact file with the given name
func (v *VersionEntry) FileByName(name string) (ArtifactFile, bool) {
	for _, f := range v.Files {
		if f.Name == name {
			return f, true
		}
	}
	return ArtifactFile{}, false
}

// BranchNumber returns the Chromium branch (build) number of the entry.
// It is the third component of the Chromium version, falling back to the
// "+chromium-" suffix of the CEF version when no Chromium version is listed.
func (v *VersionEntry) BranchNumber() (int, bool) {
	chromium := v.ChromiumVersion
	if chromium == "" {
		_, suffix, found := strings.Cut(v.Version, "+chromium-")
		if !found {
			return 0, false
		}
		chromium = suffix
	}

	parts := strings.Split(chromium, ".")
	if len(parts) < 3 {
		return 0, false
	}

	branch, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return branch, true
}

// BuildCatalog maps a platform identifier (windows64, linux64, ...) to the
// versions published for it, in upstream order.
type BuildCatalog map[string][]VersionEntry

// Versions returns the entries for platform and whether the platform is listed
func (c BuildCatalog) Versions(platform string) ([]VersionEntry, bool) {
	entries, ok := c[platform]
	return entries, ok
}

// Lookup returns the first entry on platform with the given version identifier
func (c BuildCatalog) Lookup(platform, version string) (*VersionEntry, bool) {
	entries, ok := c[platform]
	if !ok {
		return nil, false
	}
	for i := range entries {
		if entries[i].Version == version {
			return &entries[i], true
		}
	}
	return nil, false
}

// Has reports whether platform lists the given version identifier
func (c BuildCatalog) Has(platform, version string) bool {
	_, ok := c.Lookup(platform, version)
	return ok
}
