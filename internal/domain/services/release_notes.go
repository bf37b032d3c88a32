package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ochairo/cefrelease/internal/domain/entities"
)

const tagRefPrefix = "refs/tags/"

// ErrMalformedPair is returned for analysis entries that are not file=url
var ErrMalformedPair = errors.New("malformed analysis pair")

// ReleaseNotesService formats analysis links into Markdown release notes
type ReleaseNotesService struct {
	label     string
	delimiter string
}

// NewReleaseNotesService creates a formatter; empty arguments fall back to defaults
func NewReleaseNotesService(label, delimiter string) *ReleaseNotesService {
	if label == "" {
		label = entities.DefaultNotesLabel
	}
	if delimiter == "" {
		delimiter = entities.DefaultNotesDelimiter
	}
	return &ReleaseNotesService{label: label, delimiter: delimiter}
}

// ParseAnalysis splits a delimiter-separated list of file=url pairs.
// Only the first '=' separates file from URL so query strings survive.
func (s *ReleaseNotesService) ParseAnalysis(analysis string) ([]entities.AnalysisLink, error) {
	var links []entities.AnalysisLink

	for _, raw := range strings.Split(analysis, s.delimiter) {
		pair := strings.TrimSpace(raw)
		if pair == "" {
			continue
		}

		file, url, found := strings.Cut(pair, "=")
		file = strings.TrimSpace(file)
		url = strings.TrimSpace(url)
		if !found || file == "" || url == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPair, pair)
		}

		links = append(links, entities.AnalysisLink{File: file, URL: url})
	}

	return links, nil
}

// FormatLine renders a single link
func (s *ReleaseNotesService) FormatLine(link entities.AnalysisLink) string {
	return fmt.Sprintf("`%s`: [%s](%s)", link.File, s.label, link.URL)
}

// Format builds the release notes for the given analysis list and tag ref
func (s *ReleaseNotesService) Format(analysis, ref string) (*entities.ReleaseNotes, error) {
	links, err := s.ParseAnalysis(analysis)
	if err != nil {
		return nil, err
	}

	notes := &entities.ReleaseNotes{
		Header: VersionHeader(ref),
		Links:  links,
	}

	lines := make([]string, 0, len(links))
	for _, link := range links {
		lines = append(lines, s.FormatLine(link))
	}

	var body strings.Builder
	if notes.Header != "" {
		body.WriteString(notes.Header)
		body.WriteString("\n\n")
	}
	body.WriteString(strings.Join(lines, "\n"))
	notes.Body = body.String()

	return notes, nil
}

// VersionHeader derives a Markdown heading from a git ref.
// Only tag refs produce a heading; semver tags are normalised to vX.Y.Z.
func VersionHeader(ref string) string {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, tagRefPrefix) {
		return ""
	}

	tag := strings.TrimPrefix(ref, tagRefPrefix)
	if tag == "" {
		return ""
	}

	v, err := semver.NewVersion(tag)
	if err != nil {
		return "## " + tag
	}
	return "## v" + v.String()
}
