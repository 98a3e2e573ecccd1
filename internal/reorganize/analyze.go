// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorganize

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

const (
	rootLabel = "ROOT"

	crowdedRoot  = 10
	smallFolder  = 2
	deepNesting  = 3
	shownFolders = 5
)

// FolderCount is the number of documents directly in one folder.
type FolderCount struct {
	Folder string
	Count  int
}

// Analysis describes the current folder structure.
type Analysis struct {
	Total        int
	Folders      []FolderCount
	RootCount    int
	SmallFolders []string
	MaxDepth     int
}

// Analyze tallies documents per folder and flags a crowded root, folders
// with two or fewer documents, and deep nesting.
func (p *Planner) Analyze() Analysis {
	counts := map[string]int{}
	for _, f := range p.files {
		folder := rootLabel
		if names := p.folders(f); len(names) > 0 {
			folder = strings.Join(names, "/")
		}
		counts[folder]++
	}

	a := Analysis{Total: len(p.files), RootCount: counts[rootLabel]}
	for folder, n := range counts {
		a.Folders = append(a.Folders, FolderCount{Folder: folder, Count: n})
	}
	sort.Slice(a.Folders, func(i, j int) bool {
		if a.Folders[i].Count != a.Folders[j].Count {
			return a.Folders[i].Count > a.Folders[j].Count
		}
		return a.Folders[i].Folder < a.Folders[j].Folder
	})

	for _, fc := range a.Folders {
		if fc.Folder == rootLabel {
			continue
		}
		if fc.Count <= smallFolder {
			a.SmallFolders = append(a.SmallFolders, fc.Folder)
		}
		if depth := len(strings.Split(fc.Folder, "/")); depth > a.MaxDepth {
			a.MaxDepth = depth
		}
	}
	sort.Strings(a.SmallFolders)
	return a
}

// Write prints the analysis to w.
func (a Analysis) Write(w io.Writer) {
	fmt.Fprintf(w, "Current structure (%d papers):\n", a.Total)
	for _, fc := range a.Folders {
		fmt.Fprintf(w, "  %s: %d papers\n", filepath.FromSlash(fc.Folder), fc.Count)
	}

	fmt.Fprintf(w, "\nPotential issues:\n")
	issues := 0
	if a.RootCount > crowdedRoot {
		fmt.Fprintf(w, "  warning: %d papers in root folder (consider categorizing)\n", a.RootCount)
		issues++
	}
	if len(a.SmallFolders) > 0 {
		fmt.Fprintf(w, "  warning: %d folders with <=%d papers (consider consolidating)\n", len(a.SmallFolders), smallFolder)
		for i, f := range a.SmallFolders {
			if i == shownFolders {
				break
			}
			fmt.Fprintf(w, "      - %s\n", filepath.FromSlash(f))
		}
		issues++
	}
	if a.MaxDepth > deepNesting {
		fmt.Fprintf(w, "  warning: folders nested up to %d levels deep (consider flattening)\n", a.MaxDepth)
		issues++
	}
	if issues == 0 {
		fmt.Fprintf(w, "  none\n")
	}
}
