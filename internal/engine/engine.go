// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine resolves bibliographic metadata for one document at a time.
// It searches the decoded text for a DOI, asks the optional registry
// resolver for a record, and fills the remaining gaps from embedded document
// metadata, text heuristics, and finally the filename. A field written by an
// earlier stage is never replaced by a later one.
package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/litreview/internal/patterns"
	"github.com/pdiddy/litreview/pkg/types"
)

// DefaultDOIPages is the number of leading pages searched for a DOI.
const DefaultDOIPages = 3

// Resolver looks up a DOI in a bibliographic registry. Implementations
// report failures through the returned status and never return errors.
type Resolver interface {
	Lookup(ctx context.Context, doi string) (types.LookupResult, types.LookupStatus)
}

// State is a step of the per-document resolution pipeline.
type State int

const (
	StateInit State = iota
	StateDOISearch
	StateRegistryLookup
	StateHeuristicFallback
	StateFilenameFallback
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDOISearch:
		return "doi_search"
	case StateRegistryLookup:
		return "registry_lookup"
	case StateHeuristicFallback:
		return "heuristic_fallback"
	case StateFilenameFallback:
		return "filename_fallback"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// EmbeddedMetadata holds the document information dictionary entries the
// engine reads. All fields are optional.
type EmbeddedMetadata struct {
	Title        string
	Author       string
	CreationDate string
}

// Document is everything the engine needs to know about one file.
type Document struct {
	// ID identifies the document in log lines, usually its relative path.
	ID string

	// Pages holds the trimmed, non-empty lines of each decoded page.
	Pages [][]string

	// Available is false for sync placeholders and undecodable files.
	Available bool

	Embedded EmbeddedMetadata

	// FilenameStem is the file name without directory or extension.
	FilenameStem string
}

// Resolution is the engine's answer for one document.
type Resolution struct {
	Metadata types.Candidate
	DOI      string
	Lookup   types.LookupStatus

	// Trace lists the states visited, in order.
	Trace []State
}

// Options configures an Engine.
type Options struct {
	// Resolver is the registry capability. Nil disables registry lookups.
	Resolver Resolver

	// Log receives informational lines. Nil discards them.
	Log io.Writer

	// DOIPages limits the DOI search to the leading pages. Zero means
	// DefaultDOIPages.
	DOIPages int
}

// Engine runs the resolution pipeline. It holds no per-document state and
// may be reused across documents.
type Engine struct {
	resolver Resolver
	log      io.Writer
	doiPages int
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	e := &Engine{
		resolver: opts.Resolver,
		log:      opts.Log,
		doiPages: opts.DOIPages,
	}
	if e.log == nil {
		e.log = io.Discard
	}
	if e.doiPages <= 0 {
		e.doiPages = DefaultDOIPages
	}
	return e
}

// Resolve runs the pipeline for doc. It never fails: every problem degrades
// to fewer populated fields.
func (e *Engine) Resolve(ctx context.Context, doc Document) Resolution {
	res := Resolution{Lookup: types.StatusSkipped}
	state := StateInit

	for state != StateDone {
		res.Trace = append(res.Trace, state)
		state = e.step(ctx, state, doc, &res)
	}
	res.Trace = append(res.Trace, StateDone)
	return res
}

// step performs the work of state and returns the next state.
func (e *Engine) step(ctx context.Context, state State, doc Document, res *Resolution) State {
	switch state {
	case StateInit:
		if !doc.Available {
			fmt.Fprintf(e.log, "unavailable: %s (filename fallback only)\n", doc.ID)
			return StateFilenameFallback
		}
		return StateDOISearch

	case StateDOISearch:
		doi, ok := patterns.FindDOIInPages(doc.Pages, e.doiPages)
		if !ok {
			return StateHeuristicFallback
		}
		res.DOI = doi
		if e.resolver == nil {
			return StateHeuristicFallback
		}
		return StateRegistryLookup

	case StateRegistryLookup:
		result, status := e.resolver.Lookup(ctx, res.DOI)
		res.Lookup = status
		switch status {
		case types.StatusResolved:
			ApplyRegistry(&res.Metadata, result)
			return StateFilenameFallback
		case types.StatusRateLimited:
			fmt.Fprintf(e.log, "rate limited: %s (falling back to heuristics)\n", res.DOI)
		default:
			fmt.Fprintf(e.log, "lookup failed: %s (falling back to heuristics)\n", res.DOI)
		}
		return StateHeuristicFallback

	case StateHeuristicFallback:
		ApplyEmbedded(&res.Metadata, doc.Embedded)
		ApplyHeuristics(&res.Metadata, doc.Pages)
		return StateFilenameFallback

	case StateFilenameFallback:
		ApplyFilename(&res.Metadata, doc.FilenameStem)
		return StateDone
	}
	return StateDone
}
