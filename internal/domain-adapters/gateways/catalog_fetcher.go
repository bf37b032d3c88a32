package gateways

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

// ErrMalformedCatalog is returned when the index document lacks required fields
var ErrMalformedCatalog = errors.New("malformed catalog")

// indexPlatform is the per-platform object of the build index
type indexPlatform struct {
	Versions *[]indexVersion `json:"versions"`
}

type indexVersion struct {
	CEFVersion      string      `json:"cef_version"`
	ChromiumVersion string      `json:"chromium_version"`
	Channel         string      `json:"channel"`
	Files           []indexFile `json:"files"`
}

type indexFile struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	SHA1         string `json:"sha1"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}

// CatalogFetcher downloads the CEF build index
type CatalogFetcher struct {
	httpClient *http.Client
	indexURL   string
	userAgent  string
}

// NewCatalogFetcher creates a fetcher for the given index URL
func NewCatalogFetcher(indexURL string) *CatalogFetcher {
	if indexURL == "" {
		indexURL = entities.DefaultIndexURL
	}
	return &CatalogFetcher{
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // The index is several megabytes
		},
		indexURL:  indexURL,
		userAgent: "cefrelease/1.0",
	}
}

// FetchCatalog performs a single GET of the index and validates it.
// Failures are not retried.
func (f *CatalogFetcher) FetchCatalog(ctx context.Context) (entities.BuildCatalog, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return DecodeCatalog(resp.Body)
}

// DecodeCatalog parses and validates an index document
func DecodeCatalog(r io.Reader) (entities.BuildCatalog, error) {
	var raw map[string]indexPlatform
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %v", ErrMalformedCatalog, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformedCatalog)
	}

	// Deterministic error reporting regardless of map order
	platforms := make([]string, 0, len(raw))
	for platform := range raw {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	catalog := make(entities.BuildCatalog, len(raw))
	for _, platform := range platforms {
		entries, err := convertPlatform(platform, raw[platform])
		if err != nil {
			return nil, err
		}
		catalog[platform] = entries
	}

	return catalog, nil
}

func convertPlatform(platform string, p indexPlatform) ([]entities.VersionEntry, error) {
	if p.Versions == nil {
		return nil, fmt.Errorf("%w: platform %s has no versions list", ErrMalformedCatalog, platform)
	}

	entries := make([]entities.VersionEntry, 0, len(*p.Versions))
	for i, v := range *p.Versions {
		if v.CEFVersion == "" {
			return nil, fmt.Errorf("%w: %s.versions[%d] has no cef_version", ErrMalformedCatalog, platform, i)
		}

		channel := entities.Channel(v.Channel)
		if !channel.Valid() {
			return nil, fmt.Errorf("%w: %s version %s has invalid channel %q", ErrMalformedCatalog, platform, v.CEFVersion, v.Channel)
		}

		files := make([]entities.ArtifactFile, 0, len(v.Files))
		for j, file := range v.Files {
			if file.Name == "" {
				return nil, fmt.Errorf("%w: %s version %s files[%d] has no name", ErrMalformedCatalog, platform, v.CEFVersion, j)
			}
			files = append(files, entities.ArtifactFile{
				Kind:         entities.FileKind(file.Type),
				Name:         file.Name,
				SHA1:         file.SHA1,
				Size:         file.Size,
				LastModified: file.LastModified,
			})
		}

		entries = append(entries, entities.VersionEntry{
			Version:         v.CEFVersion,
			ChromiumVersion: v.ChromiumVersion,
			Channel:         channel,
			Files:           files,
		})
	}

	return entries, nil
}
