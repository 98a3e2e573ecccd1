package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "litreview/0.1 (mailto:someone@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RegistryConfig holds settings for the DOI registry lookup.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether DOIs found in documents are looked up at all.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Mailto is the contact address sent in the User-Agent for polite access.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`

	// RequestsPerSecond throttles registry calls. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// ScanConfig holds settings for scanning a folder of papers.
type ScanConfig struct {
	// Root is the folder to scan recursively.
	Root string `json:"root" yaml:"root"`

	// Extensions lists the file extensions to include (default ".pdf").
	Extensions []string `json:"extensions" yaml:"extensions"`

	// PlaceholderSize is the size in bytes below which a file is treated as
	// a cloud-sync placeholder (default 1024).
	PlaceholderSize int64 `json:"placeholder_size" yaml:"placeholder_size"`

	// MaxPages is the number of leading pages decoded per document (default 3).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Incremental reuses stored records for documents whose size and
	// modification time are unchanged since the last scan.
	Incremental bool `json:"incremental" yaml:"incremental"`

	// CachePath is the SQLite database holding the lookup cache and scan index.
	// Empty disables the store.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`
}

// ReportFormat selects the literature review output format.
type ReportFormat string

const (
	ReportYAML ReportFormat = "yaml"
	ReportJSON ReportFormat = "json"
	ReportCSV  ReportFormat = "csv"
	ReportCSL  ReportFormat = "csl"
)

// ReorganizeConfig holds settings for the folder reorganization planner.
type ReorganizeConfig struct {
	// Root is the folder whose papers are reorganized.
	Root string `json:"root" yaml:"root"`

	// StartYear and EndYear bound the by-year strategy (defaults 2000 and the current year).
	StartYear int `json:"start_year" yaml:"start_year"`
	EndYear   int `json:"end_year" yaml:"end_year"`

	// MinPapers is the consolidation threshold (default 3).
	MinPapers int `json:"min_papers" yaml:"min_papers"`

	// MaxDepth is the flattening depth (default 2).
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Execute performs the planned moves instead of a dry run.
	Execute bool `json:"execute" yaml:"execute"`
}
