// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Record is one row of the literature review: where the document lives,
// whether it was available locally, and the metadata the engine resolved.
type Record struct {
	// Concept is the topic derived from the folder hierarchy (e.g. "Optics > Lasers").
	Concept string `json:"concept" yaml:"concept"`

	// Filename is the base name of the document.
	Filename string `json:"filename" yaml:"filename"`

	// RelativePath is the document path relative to the scanned root.
	RelativePath string `json:"relative_path" yaml:"relative_path"`

	// Available is false for cloud-sync placeholders and unreadable files.
	Available bool `json:"available" yaml:"available"`

	// SizeMB is the file size in megabytes.
	SizeMB float64 `json:"size_mb" yaml:"size_mb"`

	// DOI is the identifier found in the document text, if any.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Lookup is the outcome of the registry lookup.
	Lookup LookupStatus `json:"lookup" yaml:"lookup"`

	// Metadata holds the resolved fields with their provenance.
	Metadata Candidate `json:"metadata" yaml:"metadata"`
}

// DisplayTitle returns the resolved title, or the filename when none was found.
func (r Record) DisplayTitle() string {
	if r.Metadata.Title.Present() {
		return r.Metadata.Title.Value
	}
	return r.Filename
}
