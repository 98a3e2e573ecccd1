// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/litreview/pkg/types"
)

var (
	// nameShape matches a capitalized word followed by another capital,
	// as in "Jane Doe" or "Smith J".
	nameShape = regexp.MustCompile(`[A-Z][a-z]+\s+[A-Z]`)

	// superscriptMarker matches affiliation numbers after a comma ("Doe,2").
	superscriptMarker = regexp.MustCompile(`,\s*\d+`)

	andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

	leadingDigits  = regexp.MustCompile(`^\d+`)
	trailingDigits = regexp.MustCompile(`\d+$`)
	onlyDigits     = regexp.MustCompile(`^\d+$`)
)

// aggregatorMarkers disqualify a whole line from author parsing.
var aggregatorMarkers = []string{
	"http", "www.", "doi.org", "arxiv.org", "@",
	"researchgate", "sciencedirect", "jstor", "springer.com", "wiley.com",
}

// institutionKeywords disqualify a single token.
var institutionKeywords = []string{
	"university", "department", "institute", "laboratory",
	"center", "centre", "college", "school",
}

// ParseAuthorLine extracts author display names from a line of text. It
// drops affiliation markers, institutions, and numeric tokens, keeps up to
// six names in order, and returns them joined with ", ". Lines that do not
// look like author lists yield no result.
func ParseAuthorLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if Length(line) < 5 {
		return "", false
	}
	if ContainsFold(line, aggregatorMarkers...) {
		return "", false
	}
	if !strings.Contains(line, ",") && !nameShape.MatchString(line) {
		return "", false
	}

	line = superscriptMarker.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "*", "")
	line = andSeparator.ReplaceAllString(line, ", ")

	var names types.AuthorNameList
	for _, tok := range strings.Split(line, ",") {
		if name, ok := authorToken(tok); ok {
			names.Add(name)
		}
	}

	joined := names.String()
	if Length(joined) <= 5 {
		return "", false
	}
	return joined, true
}

// authorToken cleans one comma-separated token and reports whether it is
// usable as a name.
func authorToken(tok string) (string, bool) {
	tok = strings.TrimSpace(tok)
	if Length(tok) < 3 || onlyDigits.MatchString(tok) {
		return "", false
	}
	if ContainsFold(tok, institutionKeywords...) {
		return "", false
	}
	if ContainsFold(tok, "et al") || LooksLikeURL(tok) {
		return "", false
	}

	tok = leadingDigits.ReplaceAllString(tok, "")
	tok = strings.TrimSpace(trailingDigits.ReplaceAllString(tok, ""))
	if !StartsUpper(tok) || !strings.ContainsFunc(tok, unicode.IsLetter) {
		return "", false
	}
	return tok, true
}
