// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/litreview/pkg/types"
)

// Lookuper resolves a DOI to registry metadata.
type Lookuper interface {
	Lookup(ctx context.Context, doi string) (types.LookupResult, types.LookupStatus)
}

// Cache persists resolved lookups between runs.
type Cache interface {
	CachedLookup(ctx context.Context, doi string) (types.LookupResult, bool, error)
	SaveLookup(ctx context.Context, doi string, result types.LookupResult) error
}

// CachedResolver answers lookups from a Cache before asking the next
// Lookuper. Only resolved lookups are stored, so rate-limited and failed
// DOIs are retried on the next run. Cache errors are logged and otherwise
// ignored.
type CachedResolver struct {
	next  Lookuper
	cache Cache
	log   io.Writer
}

// NewCachedResolver wraps next with cache. A nil log discards diagnostics.
func NewCachedResolver(next Lookuper, cache Cache, log io.Writer) *CachedResolver {
	if log == nil {
		log = io.Discard
	}
	return &CachedResolver{next: next, cache: cache, log: log}
}

// Lookup implements Lookuper.
func (c *CachedResolver) Lookup(ctx context.Context, doi string) (types.LookupResult, types.LookupStatus) {
	res, ok, err := c.cache.CachedLookup(ctx, doi)
	if err != nil {
		fmt.Fprintf(c.log, "registry: %s: reading cache: %v\n", doi, err)
	}
	if ok {
		return res, types.StatusResolved
	}

	res, status := c.next.Lookup(ctx, doi)
	if status != types.StatusResolved {
		return res, status
	}
	if err := c.cache.SaveLookup(ctx, doi, res); err != nil {
		fmt.Fprintf(c.log, "registry: %s: writing cache: %v\n", doi, err)
	}
	return res, status
}
