// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// commaDigit matches a comma directly next to a digit, the usual trace
	// of affiliation superscripts in an author line ("Smith1, Doe2").
	commaDigit = regexp.MustCompile(`\d,|,\d`)

	// fullName matches a bare "FirstName LastName" line.
	fullName = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

	// shortName matches two or three capitalized words, e.g. "Jane A. Doe".
	shortName = regexp.MustCompile(`^[A-Z][\p{L}.'\-]*(?:\s+[A-Z][\p{L}.'\-]*){1,2}$`)

	// urlLike matches web addresses and resolver links.
	urlLike = regexp.MustCompile(`(?i)https?://|www\.|doi\.org/`)
)

// metadataPrefixes start lines that carry publication metadata rather than a title.
var metadataPrefixes = []string{"(", "received", "published", "doi:", "www.", "http"}

// LooksLikeMetadata reports whether line is a dateline, identifier, or link.
func LooksLikeMetadata(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, p := range metadataPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// LooksLikeAuthorLine reports whether line is a short line with
// affiliation superscripts next to commas.
func LooksLikeAuthorLine(line string) bool {
	return utf8.RuneCountInString(line) < 150 && commaDigit.MatchString(line)
}

// LooksLikeFullName reports whether s is exactly two capitalized words.
func LooksLikeFullName(s string) bool {
	return fullName.MatchString(strings.TrimSpace(s))
}

// LooksLikeShortName reports whether line is a short name-shaped line of
// two or three capitalized words.
func LooksLikeShortName(line string) bool {
	line = strings.TrimSpace(line)
	return utf8.RuneCountInString(line) < 50 && shortName.MatchString(line)
}

// LooksLikeURL reports whether s contains a web address.
func LooksLikeURL(s string) bool {
	return urlLike.MatchString(s)
}

// StartsUpper reports whether the first rune of s is an uppercase letter.
func StartsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// StartsDigit reports whether the first rune of s is a digit.
func StartsDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}

// HasPrefixFold reports whether s starts with any of prefixes, ignoring case.
func HasPrefixFold(s string, prefixes ...string) bool {
	lower := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether s contains any of subs, ignoring case.
func ContainsFold(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// CollapseSpace joins the whitespace-separated fields of s with single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Length returns the length of s in runes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}
