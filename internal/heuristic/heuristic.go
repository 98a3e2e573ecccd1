// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package heuristic recovers titles and author lists from the decoded text
// of a document's first pages when no registry record is available.
//
// Every rule is a Producer: a pure function over the trimmed lines of one
// page that returns a candidate or reports absence. Recovery runs an ordered
// chain of producers and keeps the first candidate.
package heuristic

import (
	"strings"

	"github.com/pdiddy/litreview/internal/patterns"
)

// Producer derives one candidate string from the lines of a page.
type Producer func(lines []string) (string, bool)

// Chain returns a Producer that tries each producer in order and returns
// the first candidate found.
func Chain(producers ...Producer) Producer {
	return func(lines []string) (string, bool) {
		for _, p := range producers {
			if v, ok := p(lines); ok {
				return v, true
			}
		}
		return "", false
	}
}

// pagesTried is the number of leading pages searched by FromPages.
const pagesTried = 2

// FromPages runs p on page 1, then on page 2 if page 1 yields nothing.
func FromPages(p Producer, pages [][]string) (string, bool) {
	for i := 0; i < len(pages) && i < pagesTried; i++ {
		if v, ok := p(pages[i]); ok {
			return v, true
		}
	}
	return "", false
}

// Lines splits decoded page text into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// structuralMarkers start lines that belong to front-matter sections rather
// than to a title or an author list.
var structuralMarkers = []string{
	"received", "published", "accepted", "doi", "pacs",
	"abstract", "introduction", "keywords",
}

func isStructural(line string) bool {
	return patterns.HasPrefixFold(line, structuralMarkers...) || patterns.LooksLikeURL(line)
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}
