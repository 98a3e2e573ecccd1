// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// MaxAuthors caps the number of names kept in an author list.
const MaxAuthors = 6

// LookupStatus reports the outcome of a registry lookup. Only StatusResolved
// carries data; the other statuses tell the pipeline to fall back.
type LookupStatus string

const (
	// StatusSkipped means no lookup was attempted (no DOI or no resolver).
	StatusSkipped LookupStatus = "skipped"
	// StatusResolved means the registry answered with a parsable record.
	StatusResolved LookupStatus = "resolved"
	// StatusRateLimited means the registry answered HTTP 429.
	StatusRateLimited LookupStatus = "rate_limited"
	// StatusFailed covers transport errors, timeouts, and unexpected statuses.
	StatusFailed LookupStatus = "failed"
)

// AuthorName is one registry author entry.
type AuthorName struct {
	Given  string `json:"given,omitempty" yaml:"given,omitempty"`
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
}

// Display formats the name as "given family", or the family name alone when
// no given name is known.
func (a AuthorName) Display() string {
	given := strings.TrimSpace(a.Given)
	family := strings.TrimSpace(a.Family)
	if given == "" {
		return family
	}
	if family == "" {
		return given
	}
	return given + " " + family
}

// LookupResult is a parsed registry record. Every field is optional.
type LookupResult struct {
	Title   string       `json:"title,omitempty" yaml:"title,omitempty"`
	Authors []AuthorName `json:"authors,omitempty" yaml:"authors,omitempty"`
	Year    string       `json:"year,omitempty" yaml:"year,omitempty"`
	Journal string       `json:"journal,omitempty" yaml:"journal,omitempty"`
	URL     string       `json:"url,omitempty" yaml:"url,omitempty"`
}

// AuthorList returns the display form of the registry authors.
func (r LookupResult) AuthorList() string {
	var list AuthorNameList
	for _, a := range r.Authors {
		list.Add(a.Display())
	}
	return list.String()
}

// AuthorNameList is an ordered list of distinct display names capped at
// MaxAuthors entries.
type AuthorNameList []string

// Add appends name unless it is blank, a duplicate, or the list is full.
// It reports whether the name was added.
func (l *AuthorNameList) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || len(*l) >= MaxAuthors {
		return false
	}
	for _, existing := range *l {
		if existing == name {
			return false
		}
	}
	*l = append(*l, name)
	return true
}

// String joins the names with ", ".
func (l AuthorNameList) String() string {
	return strings.Join(l, ", ")
}
