// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristic

import (
	"regexp"
	"strings"

	"github.com/pdiddy/litreview/internal/patterns"
)

var (
	// etAlFollower captures the capitalized words after an "et al." marker.
	etAlFollower = regexp.MustCompile(`(?i:\bet\s+al\.?)[\s,]*([A-Z][\p{L}'\-]+(?:\s+[A-Z][\p{L}'\-]+)*)`)

	domainSuffix = regexp.MustCompile(`(?i)\.(?:org|com|edu|net)\b`)
)

// nonNames are capitalized words that follow "et al." in citations but are
// journal or document words rather than names.
var nonNames = map[string]bool{
	"science": true, "nature": true, "cell": true,
	"journal": true, "article": true, "paper": true,
}

// authorLineMarkers start lines that are never author lists.
var authorLineMarkers = []string{
	"received", "published", "doi", "pacs", "abstract", "introduction",
	"department", "university", "institute",
}

const (
	etAlScan      = 10
	windowLast    = 6
	singleLast    = 7
	titleMinWords = 6
)

// Authors recovers an author list from the lines of one page.
var Authors = Chain(EtAlAuthors, WindowAuthors, SingleLineAuthors)

// EtAlAuthors looks for an "et al." marker in the first ten lines and
// returns the capitalized name following it.
func EtAlAuthors(lines []string) (string, bool) {
	for _, line := range head(lines, etAlScan) {
		m := etAlFollower.FindStringSubmatch(line)
		if m == nil || domainSuffix.MatchString(line) {
			continue
		}
		name := m[1]
		if containsNonName(name) {
			continue
		}
		return name, true
	}
	return "", false
}

// WindowAuthors joins two or three lines starting at lines 1 through 6 and
// parses the join as an author list.
func WindowAuthors(lines []string) (string, bool) {
	for start := 1; start < len(lines) && start <= windowLast; start++ {
		if isStructural(lines[start]) || looksLikeTitleLine(lines[start]) {
			continue
		}
		for _, size := range []int{2, 3} {
			end := start + size
			if end > len(lines) {
				continue
			}
			window := lines[start:end]
			if !authorWindow(window) {
				continue
			}
			if names, ok := patterns.ParseAuthorLine(strings.Join(window, ", ")); ok {
				return names, true
			}
		}
	}
	return "", false
}

// SingleLineAuthors parses lines 1 through 7 individually.
func SingleLineAuthors(lines []string) (string, bool) {
	for i := 1; i < len(lines) && i <= singleLast; i++ {
		line := lines[i]
		if patterns.HasPrefixFold(line, authorLineMarkers...) || patterns.LooksLikeURL(line) {
			continue
		}
		if names, ok := patterns.ParseAuthorLine(line); ok {
			return names, true
		}
	}
	return "", false
}

func authorWindow(window []string) bool {
	for _, l := range window {
		if patterns.LooksLikeURL(l) || isStructural(l) {
			return false
		}
	}
	return true
}

// looksLikeTitleLine reports whether line reads as a capitalized sentence
// with no commas, the usual shape of a title line.
func looksLikeTitleLine(line string) bool {
	return !strings.Contains(line, ",") &&
		patterns.StartsUpper(line) &&
		len(strings.Fields(line)) >= titleMinWords
}

func containsNonName(name string) bool {
	for _, w := range strings.Fields(name) {
		if nonNames[strings.ToLower(w)] {
			return true
		}
	}
	return false
}
