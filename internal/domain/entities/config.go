package entities

// Defaults used when no pipeline configuration overrides them
const (
	DefaultIndexURL        = "https://cef-builds.spotifycdn.com/index.json"
	DefaultPrimaryPlatform = "windows64"
	DefaultBetaMarker      = "_beta"
	DefaultNotesLabel      = "VirusTotal analysis"
	DefaultNotesDelimiter  = ","
	DefaultRefEnv          = "GITHUB_REF"
)

// DefaultRequiredPlatforms lists the platforms a version must be published on
func DefaultRequiredPlatforms() []string {
	return []string{"windows64", "linux64", "macosx64"}
}

// PipelineConfig holds the release pipeline settings
type PipelineConfig struct {
	IndexURL          string
	PrimaryPlatform   string
	RequiredPlatforms []string
	BetaMarker        string
	SortByBranch      bool
	Notes             NotesConfig
}

// NotesConfig configures release notes formatting
type NotesConfig struct {
	Label     string
	Delimiter string
	RefEnv    string // Environment variable holding the tag ref (e.g. GITHUB_REF)
}

// DefaultPipelineConfig returns the configuration used when no file is present
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		IndexURL:          DefaultIndexURL,
		PrimaryPlatform:   DefaultPrimaryPlatform,
		RequiredPlatforms: DefaultRequiredPlatforms(),
		BetaMarker:        DefaultBetaMarker,
		SortByBranch:      true,
		Notes: NotesConfig{
			Label:     DefaultNotesLabel,
			Delimiter: DefaultNotesDelimiter,
			RefEnv:    DefaultRefEnv,
		},
	}
}
