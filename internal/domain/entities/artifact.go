// Package entities defines core domain models and data structures.
package entities

// Artifact is a downloaded build archive found on the local filesystem
type Artifact struct {
	Name     string
	Version  string
	Platform string
	Path     string
	Expected ArtifactFile
}

// VerificationResult holds the outcome of verifying one artifact
type VerificationResult struct {
	Artifact         Artifact
	ChecksumOK       bool
	SignatureChecked bool
	SignatureOK      bool
	SignaturePath    string
	Error            string
}

// OK reports whether every check that ran succeeded
func (r *VerificationResult) OK() bool {
	if r.Error != "" || !r.ChecksumOK {
		return false
	}
	return !r.SignatureChecked || r.SignatureOK
}
