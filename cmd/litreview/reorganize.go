// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/litreview/internal/reorganize"
	"github.com/pdiddy/litreview/internal/scan"
	"github.com/pdiddy/litreview/pkg/types"
)

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize <folder>",
	Short: "Analyze a paper folder and plan moves that tidy its structure",
	Long: `Reorganize prints an analysis of the folder structure (files per folder,
files at the root, small folders, nesting depth) and then plans moves using
the selected strategies. Strategies run in a fixed order and each file is
moved at most once:

  --by-year        file papers into year folders from the year in the filename
  --by-keywords    file papers into categories from a YAML or JSON keyword map
  --by-author      file papers into By_Author/<initial>/<author>
  --consolidate    move folders with fewer than --min-papers files under Other/
  --flatten        collapse folders nested deeper than --max-depth

Moves are only previewed unless --execute is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runReorganize,
}

func init() {
	f := reorganizeCmd.Flags()
	f.StringSlice("ext", scan.DefaultExtensions, "file extensions to include")
	f.Bool("by-year", false, "organize by the year in the filename")
	f.Int("start-year", reorganize.DefaultStartYear, "first year filed by --by-year")
	f.Int("end-year", 0, "last year filed by --by-year (default current year)")
	f.String("by-keywords", "", "keyword map file (YAML or JSON: folder -> keywords)")
	f.Bool("by-author", false, "organize by the author in the filename")
	f.Bool("consolidate", false, "consolidate small folders under Other/")
	f.Int("min-papers", reorganize.DefaultMinPapers, "folders with fewer files are consolidated")
	f.Bool("flatten", false, "flatten deeply nested folders")
	f.Int("max-depth", reorganize.DefaultMaxDepth, "maximum folder depth kept by --flatten")
	f.Bool("execute", false, "perform the moves (default is a dry run)")
	f.BoolP("yes", "y", false, "do not ask for confirmation before moving files")

	rootCmd.AddCommand(reorganizeCmd)
}

func runReorganize(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	flags := cmd.Flags()
	exts, _ := flags.GetStringSlice("ext")
	byYear, _ := flags.GetBool("by-year")
	keywordFile, _ := flags.GetString("by-keywords")
	byAuthor, _ := flags.GetBool("by-author")
	consolidate, _ := flags.GetBool("consolidate")
	flatten, _ := flags.GetBool("flatten")
	yes, _ := flags.GetBool("yes")

	cfg := types.ReorganizeConfig{Root: root}
	cfg.StartYear, _ = flags.GetInt("start-year")
	cfg.EndYear, _ = flags.GetInt("end-year")
	cfg.MinPapers, _ = flags.GetInt("min-papers")
	cfg.MaxDepth, _ = flags.GetInt("max-depth")
	cfg.Execute, _ = flags.GetBool("execute")
	if cfg.EndYear == 0 {
		cfg.EndYear = time.Now().Year()
	}

	var keywords reorganize.KeywordMap
	if keywordFile != "" {
		keywords, err = reorganize.LoadKeywordMap(keywordFile)
		if err != nil {
			return err
		}
	}

	planner, err := reorganize.NewPlanner(cfg.Root, normalizeExts(exts), os.Stderr)
	if err != nil {
		return err
	}
	planner.Analyze().Write(os.Stdout)

	if !byYear && keywordFile == "" && !byAuthor && !consolidate && !flatten {
		fmt.Println("\nNo strategy selected. Use --by-year, --by-keywords, --by-author, --consolidate, or --flatten.")
		return nil
	}

	if byYear {
		planner.ByYear(cfg.StartYear, cfg.EndYear)
	}
	if keywordFile != "" {
		planner.ByKeywords(keywords)
	}
	if byAuthor {
		planner.ByAuthor()
	}
	if consolidate {
		planner.Consolidate(cfg.MinPapers)
	}
	if flatten {
		planner.Flatten(cfg.MaxDepth)
	}

	moves := planner.Moves()
	fmt.Println()
	reorganize.Preview(os.Stdout, cfg.Root, moves)
	if len(moves) == 0 {
		return nil
	}

	if !cfg.Execute {
		fmt.Println("\nDry run: no files were moved. Re-run with --execute to apply.")
		return nil
	}
	if !yes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Move %d file(s)?", len(moves))) {
		fmt.Println("Cancelled.")
		return nil
	}

	result := reorganize.Execute(os.Stdout, moves)
	removed, err := reorganize.RemoveEmptyDirs(cfg.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: removing empty folders: %v\n", err)
	}
	fmt.Printf("\nMoved %d file(s), %d error(s), removed %d empty folder(s)\n", result.Moved, result.Errors, removed)
	if result.Errors > 0 {
		return fmt.Errorf("%d move(s) failed", result.Errors)
	}
	return nil
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "\n%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
