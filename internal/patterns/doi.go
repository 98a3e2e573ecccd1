// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package patterns holds the stateless text matchers used by the metadata
// engine: DOI and year extraction, line-shape predicates for titles and
// author lists, the author-line parser, and filename fallbacks.
//
// Every matcher returns a value and a found flag. A non-match is a normal
// outcome, never an error.
package patterns

import (
	"regexp"
	"strings"
)

// doiBody matches the part of a DOI after the "10." prefix up to the next
// whitespace or markup delimiter.
const doiBody = `10\.\d+/[^\s"<>{}|\\^\[\]` + "`" + `]+`

// doiClasses are tried in order; the first class with a match wins.
var doiClasses = []*regexp.Regexp{
	// doi.org/10.1234/abc (with or without scheme, dx. prefix)
	regexp.MustCompile(`(?i)doi\.org/(` + doiBody + `)`),
	// DOI: 10.1234/abc or DOI 10.1234/abc
	regexp.MustCompile(`(?i)\bdoi(?::|\s)\s*(` + doiBody + `)`),
	// bare 10.1234/abc
	regexp.MustCompile(`(` + doiBody + `)`),
}

// FindDOI returns the first DOI in text. Resolver links take precedence over
// labelled DOIs, which take precedence over bare identifiers. Trailing
// sentence punctuation is stripped from the result.
func FindDOI(text string) (string, bool) {
	for _, re := range doiClasses {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		doi := strings.TrimRight(m[1], ".,;:")
		if doi == "" {
			continue
		}
		return doi, true
	}
	return "", false
}

// FindDOIInPages scans up to maxPages leading pages and returns the first DOI
// found. Later pages are not read once a DOI is found.
func FindDOIInPages(pages [][]string, maxPages int) (string, bool) {
	for i, page := range pages {
		if i >= maxPages {
			break
		}
		if doi, ok := FindDOI(strings.Join(page, "\n")); ok {
			return doi, true
		}
	}
	return "", false
}
