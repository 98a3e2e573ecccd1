// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/litreview/internal/engine"
	"github.com/pdiddy/litreview/internal/registry"
	"github.com/pdiddy/litreview/internal/store"
	"github.com/pdiddy/litreview/pkg/types"
)

const registryTimeout = registry.DefaultTimeout

// newResolver builds the registry capability for cfg. It returns a nil
// Resolver when the registry is disabled. When db is non-nil, resolved
// lookups are cached in it.
func newResolver(cfg types.RegistryConfig, db *store.Store, log io.Writer) engine.Resolver {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = registryTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = registry.UserAgent(version, cfg.Mailto)
	}

	client := registry.NewClient(cfg.UserAgent,
		registry.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		registry.WithRateLimit(cfg.RequestsPerSecond),
		registry.WithLog(log),
	)
	if db == nil {
		return client
	}
	return registry.NewCachedResolver(client, db, log)
}

// openStore opens the SQLite store at path. An empty path disables the store.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		return nil, nil
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	return db, nil
}
