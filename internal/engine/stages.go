// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"strings"

	"github.com/pdiddy/litreview/internal/heuristic"
	"github.com/pdiddy/litreview/internal/patterns"
	"github.com/pdiddy/litreview/pkg/types"
)

// junkTitles are information dictionary titles written by authoring tools
// rather than by authors.
var junkTitles = map[string]bool{"untitled": true, "title": true, "document": true}

// toolPrefixes mark titles that are really source file names.
var toolPrefixes = []string{"microsoft word - ", "microsoft powerpoint - "}

// ApplyRegistry copies every field present in r into c.
func ApplyRegistry(c *types.Candidate, r types.LookupResult) {
	c.Fill(types.FieldTitle, r.Title, types.SourceRegistry)
	c.Fill(types.FieldAuthor, r.AuthorList(), types.SourceRegistry)
	c.Fill(types.FieldYear, r.Year, types.SourceRegistry)
	c.Fill(types.FieldJournal, r.Journal, types.SourceRegistry)
	c.Fill(types.FieldURL, r.URL, types.SourceRegistry)
}

// ApplyEmbedded fills title, author, and year from the document information
// dictionary.
func ApplyEmbedded(c *types.Candidate, m EmbeddedMetadata) {
	if title := patterns.CollapseSpace(m.Title); usableEmbeddedTitle(title) {
		c.Fill(types.FieldTitle, title, types.SourceEmbedded)
	}
	c.Fill(types.FieldAuthor, patterns.CollapseSpace(m.Author), types.SourceEmbedded)
	if year, ok := patterns.CreationYear(m.CreationDate); ok {
		c.Fill(types.FieldYear, year, types.SourceEmbedded)
	}
}

// ApplyHeuristics fills title and author from page 1 (then page 2) and year
// from the page-1 text.
func ApplyHeuristics(c *types.Candidate, pages [][]string) {
	if !c.Has(types.FieldTitle) {
		if title, ok := heuristic.FromPages(heuristic.Title, pages); ok {
			c.Fill(types.FieldTitle, title, types.SourceHeuristic)
		}
	}
	if !c.Has(types.FieldAuthor) {
		if authors, ok := heuristic.FromPages(heuristic.Authors, pages); ok {
			c.Fill(types.FieldAuthor, authors, types.SourceHeuristic)
		}
	}
	if !c.Has(types.FieldYear) && len(pages) > 0 {
		if year, ok := patterns.FindYear(strings.Join(pages[0], "\n")); ok {
			c.Fill(types.FieldYear, year, types.SourceHeuristic)
		}
	}
}

// ApplyFilename fills year and author from a filename stem such as
// "Johnson_2015_Entropy".
func ApplyFilename(c *types.Candidate, stem string) {
	if year, ok := patterns.FilenameYear(stem); ok {
		c.Fill(types.FieldYear, year, types.SourceFilename)
	}
	if author, ok := patterns.FilenameAuthor(stem); ok {
		c.Fill(types.FieldAuthor, author, types.SourceFilename)
	}
}

func usableEmbeddedTitle(title string) bool {
	if patterns.Length(title) < 3 {
		return false
	}
	return !junkTitles[strings.ToLower(title)] && !patterns.HasPrefixFold(title, toolPrefixes...)
}
