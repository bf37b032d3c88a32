package entities

// AnalysisLink pairs a released file with the URL of its analysis report
type AnalysisLink struct {
	File string
	URL  string
}

// ReleaseNotes is the formatted Markdown body of a release
type ReleaseNotes struct {
	Header string // Empty when the run was not triggered by a tag
	Links  []AnalysisLink
	Body   string
}
