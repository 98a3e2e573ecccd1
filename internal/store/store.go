// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists registry lookups and per-document scan results in
// SQLite so repeated scans neither re-query the registry nor re-decode
// documents that have not changed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/litreview/pkg/types"
)

// Store manages the litreview SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			doi TEXT PRIMARY KEY,
			result TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			mod_time TEXT NOT NULL,
			record TEXT NOT NULL,
			scanned_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// doiKey normalizes a DOI for use as a key. DOIs are case-insensitive.
func doiKey(doi string) string {
	return strings.ToLower(strings.TrimSpace(doi))
}

// CachedLookup returns the stored registry result for doi, if any.
func (s *Store) CachedLookup(ctx context.Context, doi string) (types.LookupResult, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM lookups WHERE doi = ?`, doiKey(doi)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.LookupResult{}, false, nil
	}
	if err != nil {
		return types.LookupResult{}, false, fmt.Errorf("querying lookup %s: %w", doi, err)
	}

	var result types.LookupResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return types.LookupResult{}, false, fmt.Errorf("decoding lookup %s: %w", doi, err)
	}
	return result, true, nil
}

// SaveLookup stores or replaces the registry result for doi.
func (s *Store) SaveLookup(ctx context.Context, doi string, result types.LookupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding lookup %s: %w", doi, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lookups (doi, result, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(doi) DO UPDATE SET result = excluded.result, fetched_at = excluded.fetched_at`,
		doiKey(doi), string(data), now())
	if err != nil {
		return fmt.Errorf("saving lookup %s: %w", doi, err)
	}
	return nil
}

// CachedRecord returns the record stored for relPath when the file's size
// and modification time still match the stored values.
func (s *Store) CachedRecord(ctx context.Context, relPath string, size int64, modTime time.Time) (types.Record, bool, error) {
	var (
		storedSize int64
		storedMod  string
		raw        string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT size, mod_time, record FROM documents WHERE path = ?`, relPath,
	).Scan(&storedSize, &storedMod, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Record{}, false, nil
	}
	if err != nil {
		return types.Record{}, false, fmt.Errorf("querying document %s: %w", relPath, err)
	}
	if storedSize != size || storedMod != formatTime(modTime) {
		return types.Record{}, false, nil
	}

	var rec types.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return types.Record{}, false, fmt.Errorf("decoding document %s: %w", relPath, err)
	}
	return rec, true, nil
}

// SaveRecord stores the record for rec.RelativePath with the file's size
// and modification time.
func (s *Store) SaveRecord(ctx context.Context, rec types.Record, size int64, modTime time.Time) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", rec.RelativePath, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (path, size, mod_time, record, scanned_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET size = excluded.size, mod_time = excluded.mod_time,
		   record = excluded.record, scanned_at = excluded.scanned_at`,
		rec.RelativePath, size, formatTime(modTime), string(data), now())
	if err != nil {
		return fmt.Errorf("saving document %s: %w", rec.RelativePath, err)
	}
	return nil
}

// Counts returns the number of stored lookups and documents.
func (s *Store) Counts(ctx context.Context) (lookups, documents int, err error) {
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM lookups`).Scan(&lookups); err != nil {
		return 0, 0, fmt.Errorf("counting lookups: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&documents); err != nil {
		return 0, 0, fmt.Errorf("counting documents: %w", err)
	}
	return lookups, documents, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func now() string {
	return formatTime(time.Now())
}
