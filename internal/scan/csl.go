// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// writeCSL writes records as a CSL-YAML list.
func writeCSL(w io.Writer, records []types.Record) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Record to a CSLItem. The DOI is the id when known,
// otherwise the relative path.
func toCSLItem(r types.Record) CSLItem {
	m := r.Metadata
	item := CSLItem{
		ID:             r.RelativePath,
		Type:           "article",
		Title:          r.DisplayTitle(),
		ContainerTitle: m.Journal.Value,
		URL:            m.URL.Value,
		DOI:            r.DOI,
		Note:           r.Concept,
	}
	if r.DOI != "" {
		item.ID = r.DOI
	}
	if item.ContainerTitle != "" {
		item.Type = "article-journal"
	}

	if m.Author.Present() {
		for _, a := range strings.Split(m.Author.Value, ",") {
			if name := parseAuthorName(a); name != (CSLName{}) {
				item.Author = append(item.Author, name)
			}
		}
	}

	if y, err := strconv.Atoi(m.Year.Value); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
