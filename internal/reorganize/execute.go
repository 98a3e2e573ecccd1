// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorganize

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// previewLimit is the number of moves listed by Preview.
const previewLimit = 10

// Preview lists the first planned moves relative to root.
func Preview(w io.Writer, root string, moves []Move) {
	fmt.Fprintf(w, "\nSample moves:\n")
	for i, m := range moves {
		if i == previewLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(moves)-previewLimit)
			break
		}
		fmt.Fprintf(w, "  %s\n    -> %s\n", relTo(root, m.Source), relTo(root, m.Target))
	}
}

// ExecResult counts the outcome of Execute.
type ExecResult struct {
	Moved  int
	Errors int
}

// Execute performs moves, creating target folders as needed. A failed move
// is reported to w and does not stop the remaining moves.
func Execute(w io.Writer, moves []Move) ExecResult {
	var r ExecResult
	for _, m := range moves {
		if err := move(m); err != nil {
			fmt.Fprintf(w, "  error moving %s: %v\n", filepath.Base(m.Source), err)
			r.Errors++
			continue
		}
		r.Moved++
	}
	return r
}

func move(m Move) error {
	if err := os.MkdirAll(filepath.Dir(m.Target), 0o755); err != nil {
		return fmt.Errorf("creating folder: %w", err)
	}
	if _, err := os.Stat(m.Target); err == nil {
		return fmt.Errorf("target %s already exists", m.Target)
	}
	return os.Rename(m.Source, m.Target)
}

// RemoveEmptyDirs deletes empty folders under root, deepest first, and
// returns how many were removed. The root itself is kept.
func RemoveEmptyDirs(root string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	removed := 0
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil || len(entries) > 0 {
			continue
		}
		if os.Remove(d) == nil {
			removed++
		}
	}
	return removed, nil
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
