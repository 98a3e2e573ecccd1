// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patterns

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

const (
	// yearWindow is the number of leading characters searched for a year.
	yearWindow = 2000

	minYear = 1900
	maxYear = 2100
)

// yearPattern matches a parenthesized 4-digit run or a bare 19xx/20xx token.
var yearPattern = regexp.MustCompile(`\((\d{4})\)|\b((?:19|20)\d{2})\b`)

// creationYearPattern finds a year inside PDF date strings such as
// "D:20150312093000+01'00'", where no word boundary separates the digits.
var creationYearPattern = regexp.MustCompile(`(?:19|20)\d{2}`)

// FindYear returns the publication year from the start of a page. The last
// match inside the first 2000 characters is used because datelines list
// received/accepted dates before the publication date. A last match outside
// 1900-2100 yields no year.
func FindYear(text string) (string, bool) {
	if utf8.RuneCountInString(text) > yearWindow {
		text = string([]rune(text)[:yearWindow])
	}

	matches := yearPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	last := matches[len(matches)-1]
	year := last[1]
	if year == "" {
		year = last[2]
	}
	if !ValidYear(year) {
		return "", false
	}
	return year, true
}

// CreationYear extracts the year from an embedded document creation date.
func CreationYear(date string) (string, bool) {
	year := creationYearPattern.FindString(date)
	if year == "" || !ValidYear(year) {
		return "", false
	}
	return year, true
}

// ValidYear reports whether s is a 4-digit year between 1900 and 2100.
func ValidYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= minYear && n <= maxYear
}
