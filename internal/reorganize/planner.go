// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reorganize plans and performs moves that tidy a folder of papers:
// by year, by author, by keyword, consolidating small folders, and
// flattening deep nesting. Planning never touches the filesystem.
package reorganize

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/litreview/internal/patterns"
	"github.com/pdiddy/litreview/internal/scan"
)

const (
	// DefaultStartYear is the first year the by-year strategy files.
	DefaultStartYear = 2000
	// DefaultMinPapers is the consolidation threshold.
	DefaultMinPapers = 3
	// DefaultMaxDepth is the flattening depth.
	DefaultMaxDepth = 2

	authorDir = "By_Author"
	otherDir  = "Other"
	miscDir   = "Miscellaneous"
)

var (
	yearFolder      = regexp.MustCompile(`^\d{4}`)
	authorSeparator = regexp.MustCompile(`[_\-]`)
	nonLetters      = regexp.MustCompile(`[^a-zA-Z]`)
)

// Move is one planned file move. Paths are absolute.
type Move struct {
	Source string
	Target string
}

// Planner accumulates moves for the documents under a root folder. A
// document is moved at most once: the first strategy that plans a move for
// it wins.
type Planner struct {
	root    string
	files   []string
	moves   []Move
	sources map[string]bool
	targets map[string]bool
}

// NewPlanner lists the documents under root with the given extensions.
// Unreadable folders below root are reported to log and left out of the plan.
func NewPlanner(root string, exts []string, log io.Writer) (*Planner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	files, err := scan.Walk(abs, exts, log)
	if err != nil {
		return nil, err
	}
	return &Planner{
		root:    abs,
		files:   files,
		sources: map[string]bool{},
		targets: map[string]bool{},
	}, nil
}

// Root returns the absolute root folder.
func (p *Planner) Root() string {
	return p.root
}

// Files returns the documents found under the root.
func (p *Planner) Files() []string {
	return p.files
}

// Moves returns the moves planned so far, in planning order.
func (p *Planner) Moves() []Move {
	return p.moves
}

// ByYear files documents whose filename carries a year between start and
// end into a folder named for the year. Documents already in a folder whose
// name starts with four digits are left alone.
func (p *Planner) ByYear(start, end int) {
	for _, f := range p.files {
		if yearFolder.MatchString(filepath.Base(filepath.Dir(f))) {
			continue
		}
		y, ok := patterns.FilenameYear(stem(f))
		if !ok {
			continue
		}
		year, _ := strconv.Atoi(y)
		if year < start || year > end {
			continue
		}
		p.plan(f, filepath.Join(p.root, y))
	}
}

// ByKeywords files each document into the first category with a keyword
// contained in its filename, ignoring case.
func (p *Planner) ByKeywords(km KeywordMap) {
	for _, f := range p.files {
		name := strings.ToLower(stem(f))
		for _, cat := range km {
			if cat.matches(name) {
				p.plan(f, filepath.Join(p.root, cat.Folder))
				break
			}
		}
	}
}

// ByAuthor files documents named "Author_Year_Title" into
// By_Author/<initial>/<Author>.
func (p *Planner) ByAuthor() {
	for _, f := range p.files {
		first := authorSeparator.Split(stem(f), 2)[0]
		author := nonLetters.ReplaceAllString(first, "")
		if len(author) <= 2 {
			continue
		}
		initial := strings.ToUpper(author[:1])
		p.plan(f, filepath.Join(p.root, authorDir, initial, author))
	}
}

// Consolidate moves documents out of folders holding fewer than minPapers
// documents into Other/<parent folder name>, or Other/Miscellaneous for
// top-level folders. Documents in the root or already under Other are not
// moved.
func (p *Planner) Consolidate(minPapers int) {
	counts := map[string]int{}
	for _, f := range p.files {
		counts[filepath.Dir(f)]++
	}
	for _, f := range p.files {
		dir := filepath.Dir(f)
		if dir == p.root || counts[dir] >= minPapers {
			continue
		}
		if folders := p.folders(f); folders[0] == otherDir {
			continue
		}
		category := miscDir
		if parent := filepath.Dir(dir); parent != p.root {
			category = filepath.Base(parent)
		}
		p.plan(f, filepath.Join(p.root, otherDir, category))
	}
}

// Flatten moves documents nested deeper than maxDepth folders into a
// top-level folder named after their first maxDepth folders joined with "_".
func (p *Planner) Flatten(maxDepth int) {
	for _, f := range p.files {
		folders := p.folders(f)
		if len(folders) <= maxDepth {
			continue
		}
		p.plan(f, filepath.Join(p.root, strings.Join(folders[:maxDepth], "_")))
	}
}

// folders returns the folder names between the root and f.
func (p *Planner) folders(f string) []string {
	rel, err := filepath.Rel(p.root, filepath.Dir(f))
	if err != nil || rel == "." {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}

// plan records a move of src into targetDir. Moves into the current folder
// are dropped. A name already taken on disk or by an earlier move gets a
// "_N" suffix.
func (p *Planner) plan(src, targetDir string) {
	if filepath.Dir(src) == targetDir || p.sources[src] {
		return
	}
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	target := filepath.Join(targetDir, base)
	for n := 1; p.taken(target); n++ {
		target = filepath.Join(targetDir, fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, ext), n, ext))
	}
	p.sources[src] = true
	p.targets[target] = true
	p.moves = append(p.moves, Move{Source: src, Target: target})
}

func (p *Planner) taken(path string) bool {
	if p.targets[path] {
		return true
	}
	_, err := os.Stat(path)
	return err == nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
