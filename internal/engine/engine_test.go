// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/litreview/internal/httputil"
	"github.com/pdiddy/litreview/internal/registry"
	"github.com/pdiddy/litreview/pkg/types"
)

func init() {
	httputil.RateLimitPause = 1 * time.Millisecond
}

type stubResolver struct {
	result types.LookupResult
	status types.LookupStatus
	calls  []string
}

func (s *stubResolver) Lookup(_ context.Context, doi string) (types.LookupResult, types.LookupStatus) {
	s.calls = append(s.calls, doi)
	return s.result, s.status
}

// paperPages is a first page with a DOI, a wrapped title, an author line,
// and a dateline.
var paperPages = [][]string{{
	"Quantum effects in",
	"disordered systems",
	"Jane Doe1, John Smith2",
	"(Received 3 Jan 1999; published 22 May 2005)",
	"DOI: 10.1103/PhysRevB.71.1234",
}}

func TestResolveRegistryPrecedence(t *testing.T) {
	resolver := &stubResolver{
		result: types.LookupResult{Title: "Registry Title", Year: "2010", Journal: "Phys. Rev. B"},
		status: types.StatusResolved,
	}
	e := New(Options{Resolver: resolver})

	res := e.Resolve(context.Background(), Document{
		ID:           "Physics/Johnson_2015_Entropy.pdf",
		Pages:        paperPages,
		Available:    true,
		Embedded:     EmbeddedMetadata{Title: "Embedded Title", CreationDate: "D:20010101"},
		FilenameStem: "Johnson_2015_Entropy",
	})

	assert.Equal(t, []string{"10.1103/PhysRevB.71.1234"}, resolver.calls)
	assert.Equal(t, "10.1103/PhysRevB.71.1234", res.DOI)
	assert.Equal(t, types.StatusResolved, res.Lookup)
	assert.Equal(t, types.Field{Value: "Registry Title", Source: types.SourceRegistry}, res.Metadata.Title)
	assert.Equal(t, types.Field{Value: "2010", Source: types.SourceRegistry}, res.Metadata.Year)
	assert.Equal(t, types.Field{Value: "Phys. Rev. B", Source: types.SourceRegistry}, res.Metadata.Journal)
	assert.Equal(t, types.Field{Value: "Johnson", Source: types.SourceFilename}, res.Metadata.Author,
		"a resolved lookup skips text heuristics, only the filename fills gaps")
	assert.Equal(t, []State{StateInit, StateDOISearch, StateRegistryLookup, StateFilenameFallback, StateDone}, res.Trace)
}

func TestRegistryFieldsSurviveLaterStages(t *testing.T) {
	resolver := &stubResolver{
		result: types.LookupResult{
			Title:   "Registry Title",
			Authors: []types.AuthorName{{Given: "Carol", Family: "White"}},
			Year:    "2010",
		},
		status: types.StatusResolved,
	}
	res := New(Options{Resolver: resolver}).Resolve(context.Background(), Document{
		Pages:        paperPages,
		Available:    true,
		FilenameStem: "Johnson_2015_Entropy",
	})
	before := res.Metadata

	ApplyEmbedded(&res.Metadata, EmbeddedMetadata{Title: "Other", Author: "Someone Else", CreationDate: "D:19990101"})
	ApplyHeuristics(&res.Metadata, paperPages)
	ApplyFilename(&res.Metadata, "Johnson_2015_Entropy")

	assert.Equal(t, before.Title, res.Metadata.Title)
	assert.Equal(t, before.Author, res.Metadata.Author)
	assert.Equal(t, before.Year, res.Metadata.Year)
	assert.Equal(t, "Carol White", res.Metadata.Author.Value)
}

func TestResolveRateLimitedFallsBackToHeuristics(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := registry.NewClient(registry.UserAgent("test", ""), registry.WithHTTPClient(ts.Client()), registry.WithBaseURL(ts.URL+"/"))
	var log bytes.Buffer
	e := New(Options{Resolver: client, Log: &log})

	res := e.Resolve(context.Background(), Document{
		ID:           "paper.pdf",
		Pages:        paperPages,
		Available:    true,
		FilenameStem: "paper",
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "the pipeline does not retry the registry")
	assert.Equal(t, types.StatusRateLimited, res.Lookup)
	assert.Contains(t, res.Trace, StateHeuristicFallback)
	assert.Equal(t, types.Field{Value: "Quantum effects in disordered systems", Source: types.SourceHeuristic}, res.Metadata.Title)
	assert.Equal(t, types.Field{Value: "Jane Doe, John Smith", Source: types.SourceHeuristic}, res.Metadata.Author)
	assert.Equal(t, types.Field{Value: "2005", Source: types.SourceHeuristic}, res.Metadata.Year)
	assert.Contains(t, log.String(), "rate limited: 10.1103/PhysRevB.71.1234")
}

func TestResolveLookupFailure(t *testing.T) {
	resolver := &stubResolver{status: types.StatusFailed}
	var log bytes.Buffer
	res := New(Options{Resolver: resolver, Log: &log}).Resolve(context.Background(), Document{
		Pages:     paperPages,
		Available: true,
	})

	assert.Equal(t, types.StatusFailed, res.Lookup)
	assert.Equal(t, types.SourceHeuristic, res.Metadata.Title.Source)
	assert.Contains(t, log.String(), "lookup failed")
}

func TestResolveUnavailableUsesFilenameOnly(t *testing.T) {
	resolver := &stubResolver{status: types.StatusResolved}
	var log bytes.Buffer
	res := New(Options{Resolver: resolver, Log: &log}).Resolve(context.Background(), Document{
		ID:           "Smith (2012) Lasers.pdf",
		Pages:        paperPages,
		Available:    false,
		Embedded:     EmbeddedMetadata{Title: "Embedded Title"},
		FilenameStem: "Smith (2012) Lasers",
	})

	assert.Empty(t, resolver.calls)
	assert.Empty(t, res.DOI)
	assert.Equal(t, types.StatusSkipped, res.Lookup)
	assert.Equal(t, []State{StateInit, StateFilenameFallback, StateDone}, res.Trace)
	assert.False(t, res.Metadata.Title.Present())
	assert.Equal(t, types.Field{Value: "Smith", Source: types.SourceFilename}, res.Metadata.Author)
	assert.Equal(t, types.Field{Value: "2012", Source: types.SourceFilename}, res.Metadata.Year)
	assert.Contains(t, log.String(), "unavailable: Smith (2012) Lasers.pdf")
}

func TestResolveFilenameOnlyEndToEnd(t *testing.T) {
	resolver := &stubResolver{status: types.StatusResolved}
	res := New(Options{Resolver: resolver}).Resolve(context.Background(), Document{
		ID:           "Johnson_2015_Entropy.pdf",
		Pages:        [][]string{{"12 34 56", "Page 1 of 10"}},
		Available:    true,
		FilenameStem: "Johnson_2015_Entropy",
	})

	assert.Empty(t, resolver.calls, "no DOI, no lookup")
	assert.Equal(t, types.StatusSkipped, res.Lookup)
	assert.Equal(t, "Johnson", res.Metadata.Author.Value)
	assert.Equal(t, "2015", res.Metadata.Year.Value)
	assert.False(t, res.Metadata.Title.Present())
	assert.Equal(t, []State{StateInit, StateDOISearch, StateHeuristicFallback, StateFilenameFallback, StateDone}, res.Trace)
}

func TestResolveWithoutResolverKeepsDOI(t *testing.T) {
	res := New(Options{}).Resolve(context.Background(), Document{Pages: paperPages, Available: true})

	assert.Equal(t, "10.1103/PhysRevB.71.1234", res.DOI)
	assert.Equal(t, types.StatusSkipped, res.Lookup)
	assert.NotContains(t, res.Trace, StateRegistryLookup)
	assert.Equal(t, types.SourceHeuristic, res.Metadata.Title.Source)
}

func TestResolveEmbeddedBeforeText(t *testing.T) {
	res := New(Options{}).Resolve(context.Background(), Document{
		Pages:     paperPages,
		Available: true,
		Embedded: EmbeddedMetadata{
			Title:        "Embedded  Title Here",
			Author:       "A. Writer",
			CreationDate: "D:20110304120000Z",
		},
	})

	assert.Equal(t, types.Field{Value: "Embedded Title Here", Source: types.SourceEmbedded}, res.Metadata.Title)
	assert.Equal(t, types.Field{Value: "A. Writer", Source: types.SourceEmbedded}, res.Metadata.Author)
	assert.Equal(t, types.Field{Value: "2011", Source: types.SourceEmbedded}, res.Metadata.Year)
}

func TestResolveSearchesLimitedPages(t *testing.T) {
	pages := [][]string{{"a"}, {"b"}, {"c"}, {"DOI: 10.1000/late"}}
	resolver := &stubResolver{status: types.StatusResolved}
	res := New(Options{Resolver: resolver}).Resolve(context.Background(), Document{Pages: pages, Available: true})
	assert.Empty(t, res.DOI)

	res = New(Options{Resolver: resolver, DOIPages: 4}).Resolve(context.Background(), Document{Pages: pages, Available: true})
	assert.Equal(t, "10.1000/late", res.DOI)
}

func TestApplyEmbeddedSkipsToolTitles(t *testing.T) {
	for _, title := range []string{"Microsoft Word - draft.docx", "untitled", "ab", ""} {
		var c types.Candidate
		ApplyEmbedded(&c, EmbeddedMetadata{Title: title})
		assert.False(t, c.Title.Present(), title)
	}
}

func TestStateString(t *testing.T) {
	require.Equal(t, "registry_lookup", StateRegistryLookup.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(42).String())
}
