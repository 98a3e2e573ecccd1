// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litreview/internal/patterns"
	"github.com/pdiddy/litreview/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <doi>",
	Short: "Resolve one DOI through the registry and print the result",
	Long: `Lookup queries the Crossref registry for a single DOI and prints the
parsed record as YAML. The argument may be a bare DOI, a doi.org link, or
text containing a "DOI:" label.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().String("cache", "", "SQLite cache path (no cache by default)")
	rootCmd.AddCommand(lookupCmd)
}

// lookupOutput is the printed form of a lookup.
type lookupOutput struct {
	DOI     string             `yaml:"doi"`
	Status  types.LookupStatus `yaml:"status"`
	Authors string             `yaml:"author_list,omitempty"`
	Result  types.LookupResult `yaml:"result,omitempty"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	doi, ok := patterns.FindDOI(args[0])
	if !ok {
		return fmt.Errorf("no DOI found in %q", args[0])
	}

	cachePath, _ := cmd.Flags().GetString("cache")
	db, err := openStore(cachePath)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	resolver := newResolver(registryConfig(true), db, os.Stderr)
	res, status := resolver.Lookup(context.Background(), doi)

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(lookupOutput{DOI: doi, Status: status, Authors: res.AuthorList(), Result: res}); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if status != types.StatusResolved {
		return fmt.Errorf("lookup %s: %s", doi, status)
	}
	return nil
}
