// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"
	"strings"
	"unicode"
)

// filenameYear matches an optionally parenthesized or bracketed 4-digit
// token that is not part of a longer number: "Smith (2015)", "[2015]", "Smith_2015".
var filenameYear = regexp.MustCompile(`(?:^|\D)[(\[]?(\d{4})[)\]]?(?:\D|$)`)

var filenameSeparators = regexp.MustCompile(`[_\-\s]+`)

var articles = map[string]bool{"the": true, "a": true, "an": true}

// FilenameYear returns the first plausible year in a filename stem.
func FilenameYear(stem string) (string, bool) {
	for _, m := range filenameYear.FindAllStringSubmatch(stem, -1) {
		if ValidYear(m[1]) {
			return m[1], true
		}
	}
	return "", false
}

// FilenameAuthor returns the leading segment of a stem such as
// "Johnson_2015_Entropy" as an author surname. A leading article is
// skipped. The segment must be alphabetic and longer than two letters.
func FilenameAuthor(stem string) (string, bool) {
	parts := filenameSeparators.Split(strings.TrimSpace(stem), -1)
	if len(parts) > 1 && articles[strings.ToLower(parts[0])] {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "", false
	}
	candidate := parts[0]
	if Length(candidate) <= 2 || !isAlpha(candidate) {
		return "", false
	}
	return candidate, true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
