// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/litreview/internal/document"
	"github.com/pdiddy/litreview/internal/engine"
	"github.com/pdiddy/litreview/pkg/types"
)

// RecordStore keeps records between scans, keyed by relative path and
// invalidated by size or modification time changes.
type RecordStore interface {
	CachedRecord(ctx context.Context, relPath string, size int64, modTime time.Time) (types.Record, bool, error)
	SaveRecord(ctx context.Context, rec types.Record, size int64, modTime time.Time) error
}

// Scanner resolves every document under a folder.
type Scanner struct {
	Engine *engine.Engine
	Loader *document.Loader

	// Store is optional. When set, records are saved after each document
	// and, for incremental scans, reused for unchanged files.
	Store RecordStore

	// Log receives one progress line per document. Nil discards them.
	Log io.Writer
}

// BatchResult holds the outcome of a scan.
type BatchResult struct {
	Processed   int
	Reused      int
	Unavailable int
	Resolved    int
}

// Total returns the number of documents in the scan.
func (r BatchResult) Total() int {
	return r.Processed + r.Reused
}

// Scan walks cfg.Root and returns one record per document, in walk order.
// Per-document problems degrade the record; only a walk failure or
// cancellation returns an error, together with the records built so far.
func (s *Scanner) Scan(ctx context.Context, cfg types.ScanConfig) ([]types.Record, BatchResult, error) {
	w := s.Log
	if w == nil {
		w = io.Discard
	}

	paths, err := Walk(cfg.Root, cfg.Extensions, w)
	if err != nil {
		return nil, BatchResult{}, err
	}

	var (
		records []types.Record
		result  BatchResult
	)
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return records, result, ctx.Err()
		default:
		}

		rel, err := filepath.Rel(cfg.Root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		rel = filepath.ToSlash(rel)

		probe := document.ProbeFile(path, s.Loader.PlaceholderSize)
		if cfg.Incremental && s.Store != nil {
			rec, ok, err := s.Store.CachedRecord(ctx, rel, probe.SizeBytes, probe.ModTime)
			if err != nil {
				fmt.Fprintf(w, "warning: %s: %v\n", rel, err)
			}
			if ok {
				fmt.Fprintf(w, "unchanged: %s\n", rel)
				records = append(records, rec)
				result.Reused++
				countRecord(&result, rec)
				continue
			}
		}

		rec := s.resolve(ctx, cfg.Root, path, rel, w)
		records = append(records, rec)
		result.Processed++
		countRecord(&result, rec)

		if s.Store != nil {
			if err := s.Store.SaveRecord(ctx, rec, probe.SizeBytes, probe.ModTime); err != nil {
				fmt.Fprintf(w, "warning: %s: %v\n", rel, err)
			}
		}
	}
	return records, result, nil
}

func (s *Scanner) resolve(ctx context.Context, root, path, rel string, w io.Writer) types.Record {
	doc, probe := s.Loader.Load(path, rel)
	if probe.Available {
		fmt.Fprintf(w, "processing: %s\n", rel)
	} else {
		fmt.Fprintf(w, "not downloaded: %s\n", rel)
	}

	res := s.Engine.Resolve(ctx, doc)
	return types.Record{
		Concept:      Concept(root, path),
		Filename:     filepath.Base(path),
		RelativePath: rel,
		Available:    doc.Available,
		SizeMB:       probe.SizeMB(),
		DOI:          res.DOI,
		Lookup:       res.Lookup,
		Metadata:     res.Metadata,
	}
}

func countRecord(r *BatchResult, rec types.Record) {
	if !rec.Available {
		r.Unavailable++
	}
	if rec.Lookup == types.StatusResolved {
		r.Resolved++
	}
}
