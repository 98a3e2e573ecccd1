// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

const (
	lastConcept = "\uffff"
	lastYear    = "9999"
	lastAuthor  = "\uffff"
	unknownYear = "Unknown"
)

// Sort orders records by concept, then year, then author. Records missing
// a year or author sort after those that have one.
func Sort(records []types.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := sortKey(records[i]), sortKey(records[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

func sortKey(r types.Record) [3]string {
	key := [3]string{r.Concept, r.Metadata.Year.Value, r.Metadata.Author.Value}
	if key[0] == "" {
		key[0] = lastConcept
	}
	if key[1] == "" {
		key[1] = lastYear
	}
	if key[2] == "" {
		key[2] = lastAuthor
	}
	return key
}

// Count is one row of a grouped tally.
type Count struct {
	Key   string
	Count int
}

// Summary tallies a scan.
type Summary struct {
	Total         int
	Available     int
	ByConcept     []Count
	ByYear        []Count
	ByLookup      []Count
	MissingTitle  int
	MissingAuthor int
	MissingYear   int
}

// Summarize builds a Summary. Concepts are ordered by descending count,
// years ascending with unknown years last.
func Summarize(records []types.Record) Summary {
	s := Summary{Total: len(records)}
	concepts := map[string]int{}
	years := map[string]int{}
	lookups := map[string]int{}

	for _, r := range records {
		if r.Available {
			s.Available++
		}
		concept := r.Concept
		if concept == "" {
			concept = uncategorized
		}
		concepts[concept]++

		year := r.Metadata.Year.Value
		if year == "" {
			year = unknownYear
		}
		years[year]++

		if r.Lookup != "" {
			lookups[string(r.Lookup)]++
		}
		if !r.Metadata.Title.Present() {
			s.MissingTitle++
		}
		if !r.Metadata.Author.Present() {
			s.MissingAuthor++
		}
		if !r.Metadata.Year.Present() {
			s.MissingYear++
		}
	}

	s.ByConcept = counts(concepts)
	sort.SliceStable(s.ByConcept, func(i, j int) bool {
		return s.ByConcept[i].Count > s.ByConcept[j].Count
	})
	s.ByYear = counts(years)
	sort.SliceStable(s.ByYear, func(i, j int) bool {
		a, b := s.ByYear[i].Key, s.ByYear[j].Key
		if a == unknownYear || b == unknownYear {
			return b == unknownYear && a != unknownYear
		}
		return a < b
	})
	s.ByLookup = counts(lookups)
	return s
}

// counts flattens a tally map into rows sorted by key.
func counts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Write prints the summary report to w.
func (s Summary) Write(w io.Writer) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w, "\n%s\nSUMMARY REPORT\n%s\n", rule, rule)

	fmt.Fprintf(w, "\nPapers by Concept/Topic:\n")
	for _, c := range s.ByConcept {
		fmt.Fprintf(w, "  %s: %d\n", c.Key, c.Count)
	}

	fmt.Fprintf(w, "\nPapers by Year:\n")
	for _, c := range s.ByYear {
		fmt.Fprintf(w, "  %s: %d\n", c.Key, c.Count)
	}

	fmt.Fprintf(w, "\nDownload Status:\n")
	fmt.Fprintf(w, "  Downloaded: %d\n", s.Available)
	fmt.Fprintf(w, "  Not downloaded: %d\n", s.Total-s.Available)

	if len(s.ByLookup) > 0 {
		fmt.Fprintf(w, "\nRegistry Lookups:\n")
		for _, c := range s.ByLookup {
			fmt.Fprintf(w, "  %s: %d\n", c.Key, c.Count)
		}
	}

	fmt.Fprintf(w, "\nMetadata Coverage:\n")
	fmt.Fprintf(w, "  Missing title: %d/%d\n", s.MissingTitle, s.Total)
	fmt.Fprintf(w, "  Missing author: %d/%d\n", s.MissingAuthor, s.Total)
	fmt.Fprintf(w, "  Missing year: %d/%d\n", s.MissingYear, s.Total)
}
