// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the litreview engine and
// its collaborators: the candidate metadata accumulator, registry lookup
// results, report records, and stage configuration.
package types

import "strings"

// Source identifies which stage of the resolution pipeline supplied a field.
// The empty Source marks a field as absent.
type Source string

const (
	SourceNone      Source = ""
	SourceFilename  Source = "filename"
	SourceHeuristic Source = "heuristic"
	SourceEmbedded  Source = "embedded"
	SourceRegistry  Source = "registry"
)

// Rank orders sources by precedence. Higher ranks win.
func (s Source) Rank() int {
	switch s {
	case SourceRegistry:
		return 4
	case SourceEmbedded:
		return 3
	case SourceHeuristic:
		return 2
	case SourceFilename:
		return 1
	default:
		return 0
	}
}

// Field is one optional metadata value together with its provenance.
type Field struct {
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Source Source `json:"source,omitempty" yaml:"source,omitempty"`
}

// Present reports whether the field has been set by any stage.
func (f Field) Present() bool {
	return f.Source != SourceNone
}

// FieldName selects one of the Candidate fields.
type FieldName int

const (
	FieldTitle FieldName = iota
	FieldAuthor
	FieldYear
	FieldJournal
	FieldURL
)

func (n FieldName) String() string {
	switch n {
	case FieldTitle:
		return "title"
	case FieldAuthor:
		return "author"
	case FieldYear:
		return "year"
	case FieldJournal:
		return "journal"
	case FieldURL:
		return "url"
	default:
		return "unknown"
	}
}

// Candidate accumulates metadata for one document. Fields are filled in
// precedence order and a field that is already present is never replaced,
// so a value written by the registry survives every later stage.
type Candidate struct {
	Title   Field `json:"title" yaml:"title"`
	Author  Field `json:"author" yaml:"author"`
	Year    Field `json:"year" yaml:"year"`
	Journal Field `json:"journal" yaml:"journal"`
	URL     Field `json:"url" yaml:"url"`
}

func (c *Candidate) field(name FieldName) *Field {
	switch name {
	case FieldTitle:
		return &c.Title
	case FieldAuthor:
		return &c.Author
	case FieldYear:
		return &c.Year
	case FieldJournal:
		return &c.Journal
	case FieldURL:
		return &c.URL
	default:
		return nil
	}
}

// Fill sets the named field when it is still absent. Blank values and the
// empty source are ignored. It reports whether the field was written.
func (c *Candidate) Fill(name FieldName, value string, src Source) bool {
	f := c.field(name)
	if f == nil || src == SourceNone {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" || f.Present() {
		return false
	}
	*f = Field{Value: value, Source: src}
	return true
}

// Has reports whether the named field is present.
func (c *Candidate) Has(name FieldName) bool {
	f := c.field(name)
	return f != nil && f.Present()
}

// Get returns the value of the named field, or "" when absent.
func (c Candidate) Get(name FieldName) string {
	f := c.field(name)
	if f == nil {
		return ""
	}
	return f.Value
}

// Merge fills every field of c that is absent in c and present in other,
// keeping other's provenance.
func (c *Candidate) Merge(other Candidate) {
	for _, name := range []FieldName{FieldTitle, FieldAuthor, FieldYear, FieldJournal, FieldURL} {
		f := other.field(name)
		c.Fill(name, f.Value, f.Source)
	}
}
