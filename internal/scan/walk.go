// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan walks a folder of papers, resolves metadata for each
// document, and writes the literature review report.
package scan

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the file extensions scanned when none are given.
var DefaultExtensions = []string{".pdf"}

// walkDir is the directory walker. Tests substitute it to inject errors.
var walkDir = filepath.WalkDir

// uncategorized is the concept of a document whose folder cannot be derived.
const uncategorized = "Uncategorized"

// Walk returns the paths under root whose extension is in exts, in lexical
// order. Hidden files and anything under a hidden directory are skipped.
// Extensions match case-insensitively, with or without the leading dot.
// An unreadable entry below root is reported to log and skipped; only a
// failure to read root itself is an error. A nil log discards warnings.
func Walk(root string, exts []string, log io.Writer) ([]string, error) {
	if log == nil {
		log = io.Discard
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	want := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		want[e] = true
	}

	var paths []string
	err := walkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fmt.Fprintf(log, "skipping: %s (%v)\n", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// Concept derives a topic from the folders between root and path, joined
// with " > ". Documents directly in root take the root folder's name.
func Concept(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return uncategorized
	}
	dir := filepath.Dir(rel)
	if dir == "." {
		abs, err := filepath.Abs(root)
		if err != nil {
			return uncategorized
		}
		return filepath.Base(abs)
	}
	return strings.Join(strings.Split(filepath.ToSlash(dir), "/"), " > ")
}
