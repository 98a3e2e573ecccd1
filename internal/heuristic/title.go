// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heuristic

import (
	"regexp"
	"strings"

	"github.com/pdiddy/litreview/internal/patterns"
)

var (
	// arxivID matches new-style (2101.01234v2) and old-style
	// (cond-mat/0501234) preprint identifiers with their marker.
	arxivID = regexp.MustCompile(`(?i)arxiv:\s*(?:\d{4}\.\d{4,5}|[a-z\-]+(?:\.[a-z]{2})?/\d{7})(?:v\d+)?`)

	bracketTag = regexp.MustCompile(`\[[^\]]*\]`)

	// leadingDate matches a "9 Apr 2008" stamp at the start of a string.
	leadingDate = regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3,9}\.?\s+\d{4}\b`)
)

const (
	arxivMinLen = 20
	arxivMaxLen = 200

	multiLineStarts = 5
	multiLineMinLen = 30
	multiLineMaxLen = 250

	singleLineScan   = 8
	singleLineMinLen = 20
	singleLineMaxLen = 200
	preferredLines   = 3
)

// Title recovers a title from the lines of one page.
var Title = Chain(ArxivTitle, MultiLineTitle, SingleLineTitle)

// ArxivTitle reads a title embedded in a preprint header on line 0, such as
// "arXiv:1234.5678 [cond-mat] 9 Apr 2008 Quantum effects in disordered systems".
func ArxivTitle(lines []string) (string, bool) {
	if len(lines) == 0 || !arxivID.MatchString(lines[0]) {
		return "", false
	}
	s := arxivID.ReplaceAllString(lines[0], " ")
	s = bracketTag.ReplaceAllString(s, " ")
	s = leadingDate.ReplaceAllString(strings.TrimSpace(s), "")
	s = patterns.CollapseSpace(s)
	if n := patterns.Length(s); n < arxivMinLen || n > arxivMaxLen {
		return "", false
	}
	return s, true
}

// MultiLineTitle joins two or three consecutive lines starting within the
// first five lines and returns the first join shaped like a title. Start
// lines that look like metadata or author lines are skipped.
func MultiLineTitle(lines []string) (string, bool) {
	for start := 0; start < len(lines) && start < multiLineStarts; start++ {
		if excludedFromTitle(lines[start]) {
			continue
		}
		for _, size := range []int{2, 3} {
			end := start + size
			if end > len(lines) {
				break
			}
			if joined, ok := acceptMultiLine(lines[start:end]); ok {
				return joined, true
			}
		}
	}
	return "", false
}

// SingleLineTitle scans the first eight lines for a single title-shaped
// line. Line 0 wins when it qualifies, then the first qualifying line among
// the first three, then the first qualifying line at all.
func SingleLineTitle(lines []string) (string, bool) {
	first := -1
	for i, line := range head(lines, singleLineScan) {
		if excludedFromTitle(line) || patterns.LooksLikeShortName(line) {
			continue
		}
		if !acceptSingleLine(line) {
			continue
		}
		if i < preferredLines && patterns.StartsUpper(line) {
			return patterns.CollapseSpace(line), true
		}
		if first < 0 {
			first = i
		}
	}
	if first < 0 {
		return "", false
	}
	return patterns.CollapseSpace(lines[first]), true
}

func excludedFromTitle(line string) bool {
	return patterns.LooksLikeMetadata(line) || patterns.LooksLikeAuthorLine(line)
}

// looksLikeNameList reports whether every comma-separated part of line is a
// short capitalized phrase, as in "J. Smith, A. Doe".
func looksLikeNameList(line string) bool {
	if !strings.Contains(line, ",") {
		return false
	}
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if len(strings.Fields(part)) > 4 || !patterns.StartsUpper(part) {
			return false
		}
	}
	return true
}

// acceptMultiLine joins window and reports whether the join is shaped like a
// title. Windows that would pull a dateline or an author list into the title
// are rejected.
func acceptMultiLine(window []string) (string, bool) {
	for i, l := range window {
		if looksLikeNameList(l) || (i > 0 && excludedFromTitle(l)) {
			return "", false
		}
	}

	s := patterns.CollapseSpace(strings.Join(window, " "))
	n := patterns.Length(s)
	switch {
	case n < multiLineMinLen || n > multiLineMaxLen:
		return "", false
	case !patterns.StartsUpper(s):
		return "", false
	case strings.Contains(s, "@") || patterns.ContainsFold(s, "http"):
		return "", false
	case patterns.HasPrefixFold(s, "doi:", "www."):
		return "", false
	case patterns.LooksLikeFullName(s):
		return "", false
	}
	return s, true
}

func acceptSingleLine(s string) bool {
	n := patterns.Length(s)
	if n < singleLineMinLen || n > singleLineMaxLen {
		return false
	}
	if strings.Contains(s, "@") || patterns.ContainsFold(s, "http") {
		return false
	}
	return !patterns.StartsDigit(s)
}
