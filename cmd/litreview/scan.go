// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litreview/internal/document"
	"github.com/pdiddy/litreview/internal/engine"
	"github.com/pdiddy/litreview/internal/scan"
	"github.com/pdiddy/litreview/pkg/types"
)

const defaultCacheName = ".litreview/litreview.db"

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Resolve metadata for every paper in a folder and write a report",
	Long: `Scan walks a folder recursively, reads the leading pages of each paper,
and resolves its title, authors, year, and journal. Papers are grouped into
concepts by their folder path. The report is written as YAML, JSON, CSV, or
CSL YAML, and a summary is printed.

Cloud-sync placeholders (files smaller than --placeholder-size) are recorded
as not downloaded and resolved from the filename alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringSlice("ext", scan.DefaultExtensions, "file extensions to include")
	f.String("format", string(types.ReportYAML), "report format: yaml, json, csv, or csl")
	f.StringP("output", "o", "", "report path (default <folder>/literature_review_YYYYMMDD.<ext>)")
	f.Bool("no-registry", false, "do not look up DOIs in the registry")
	f.String("cache", "", "SQLite cache path (default <folder>/"+defaultCacheName+")")
	f.Bool("no-cache", false, "disable the lookup cache and scan index")
	f.Bool("incremental", false, "reuse records for files unchanged since the last scan")
	f.Int64("placeholder-size", document.DefaultPlaceholderSize, "files smaller than this many bytes are treated as not downloaded")
	f.Int("max-pages", document.DefaultMaxPages, "leading pages decoded per document")

	_ = viper.BindPFlag("scan.format", f.Lookup("format"))
	_ = viper.BindPFlag("scan.cache", f.Lookup("cache"))
	_ = viper.BindPFlag("scan.placeholder_size", f.Lookup("placeholder-size"))

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("reading folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", root)
	}

	format, err := scan.ParseFormat(viper.GetString("scan.format"))
	if err != nil {
		return err
	}

	exts, _ := cmd.Flags().GetStringSlice("ext")
	noRegistry, _ := cmd.Flags().GetBool("no-registry")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	incremental, _ := cmd.Flags().GetBool("incremental")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	output, _ := cmd.Flags().GetString("output")

	cfg := types.ScanConfig{
		Root:            root,
		Extensions:      normalizeExts(exts),
		PlaceholderSize: viper.GetInt64("scan.placeholder_size"),
		MaxPages:        maxPages,
		Incremental:     incremental,
	}
	if !noCache {
		cfg.CachePath = viper.GetString("scan.cache")
		if cfg.CachePath == "" {
			cfg.CachePath = filepath.Join(root, defaultCacheName)
		}
	}

	db, err := openStore(cfg.CachePath)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	loader := document.NewLoader(os.Stderr)
	if cfg.PlaceholderSize > 0 {
		loader.PlaceholderSize = cfg.PlaceholderSize
	}
	if cfg.MaxPages > 0 {
		loader.MaxPages = cfg.MaxPages
	}

	scanner := &scan.Scanner{
		Engine: engine.New(engine.Options{
			Resolver: newResolver(registryConfig(!noRegistry), db, os.Stderr),
			Log:      os.Stdout,
		}),
		Loader: loader,
		Log:    os.Stdout,
	}
	if db != nil {
		scanner.Store = db
	}

	fmt.Printf("Scanning %s\n", root)
	records, result, err := scanner.Scan(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}
	if len(records) == 0 {
		fmt.Printf("No files with extensions %s found.\n", strings.Join(cfg.Extensions, ", "))
		return nil
	}

	scan.Sort(records)

	if output == "" {
		output = filepath.Join(root, scan.DefaultOutputName(format, time.Now()))
	}
	if err := writeReport(output, format, records); err != nil {
		return err
	}

	fmt.Printf("\nScanned %d file(s): %d processed, %d unchanged, %d not downloaded, %d resolved via registry\n",
		result.Total(), result.Processed, result.Reused, result.Unavailable, result.Resolved)
	fmt.Printf("Report written to %s\n\n", output)
	scan.Summarize(records).Write(os.Stdout)

	if db != nil {
		lookups, documents, err := db.Counts(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: reading cache counts: %v\n", err)
		} else {
			fmt.Printf("\nCache %s: %d DOI lookup(s), %d document(s)\n", cfg.CachePath, lookups, documents)
		}
	}
	return nil
}

func writeReport(path string, format types.ReportFormat, records []types.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := scan.Write(f, format, records); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	return nil
}

// normalizeExts lowercases extensions and adds a leading dot where missing.
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return scan.DefaultExtensions
	}
	return out
}
