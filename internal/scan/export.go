// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/pkg/types"
)

// reportColumns are the literature review columns. The blank columns are
// left for the reader to fill in.
var reportColumns = []string{
	"Concept", "Author", "Year", "Title", "Journal",
	"Main idea", "Conclusion", "Notes 1", "Notes 2",
	"Cross-ref", "Excerpts", "URL",
	"Filename", "Downloaded", "File Path", "DOI", "Lookup",
}

// ParseFormat validates a report format name.
func ParseFormat(s string) (types.ReportFormat, error) {
	switch f := types.ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case types.ReportYAML, types.ReportJSON, types.ReportCSV, types.ReportCSL:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want yaml, json, csv, or csl)", s)
}

// DefaultOutputName returns "literature_review_YYYYMMDD" with the format's
// file extension.
func DefaultOutputName(format types.ReportFormat, day time.Time) string {
	ext := string(format)
	if format == types.ReportCSL {
		ext = "csl.yaml"
	}
	return fmt.Sprintf("literature_review_%s.%s", day.Format("20060102"), ext)
}

// Write renders records in format to w. Records are written in the order
// given; call Sort first for the report order.
func Write(w io.Writer, format types.ReportFormat, records []types.Record) error {
	switch format {
	case types.ReportYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(records)
	case types.ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case types.ReportCSV:
		return writeCSV(w, records)
	case types.ReportCSL:
		return writeCSL(w, records)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// writeCSV writes one row per record with a blank row between concepts.
func writeCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	blank := make([]string, len(reportColumns))
	for i, r := range records {
		if i > 0 && r.Concept != records[i-1].Concept {
			if err := cw.Write(blank); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("writing %s: %w", r.RelativePath, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(r types.Record) []string {
	downloaded := "No"
	if r.Available {
		downloaded = "Yes"
	}
	m := r.Metadata
	return []string{
		r.Concept, m.Author.Value, m.Year.Value, r.DisplayTitle(), m.Journal.Value,
		"", "", "", "",
		"", "", m.URL.Value,
		r.Filename, downloaded, r.RelativePath, r.DOI, string(r.Lookup),
	}
}
