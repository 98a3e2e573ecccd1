// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the litreview CLI. It scans folders of
// academic papers, resolves bibliographic metadata for each document, writes
// a literature review report, and plans folder reorganizations.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/litreview/internal/secrets"
	"github.com/pdiddy/litreview/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	secretsDir       = ".secrets/"
	defaultRateLimit = 1.0
)

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the litreview CLI.
var rootCmd = &cobra.Command{
	Use:   "litreview",
	Short: "Bibliographic metadata for folders of academic papers",
	Long: `litreview walks a folder of academic papers, finds each paper's DOI and
resolves its title, authors, year, and journal through the Crossref registry,
falling back to embedded document metadata, text heuristics, and the filename.

The scan subcommand writes a literature review report grouped by the folder
hierarchy; reorganize plans (and optionally performs) moves that tidy the
folder structure.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		s, err := secrets.Load(secretsDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./litreview.yaml or ~/.config/litreview/litreview.yaml)")
	pf.String("mailto", "", "contact address sent to the DOI registry (or .secrets/registry-mailto)")
	pf.Float64("rate", defaultRateLimit, "maximum registry requests per second (0 disables throttling)")

	_ = viper.BindPFlag("registry.mailto", pf.Lookup("mailto"))
	_ = viper.BindPFlag("registry.rate", pf.Lookup("rate"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("litreview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "litreview"))
		}
	}

	viper.SetEnvPrefix("LITREVIEW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// registryConfig assembles the registry settings from flags, config, env,
// and secrets, in that order of precedence.
func registryConfig(enabled bool) types.RegistryConfig {
	return types.RegistryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout: registryTimeout,
		},
		Enabled:           enabled,
		Mailto:            secrets.Lookup(loadedSecrets, secrets.MailtoKey, viper.GetString("registry.mailto")),
		RequestsPerSecond: viper.GetFloat64("registry.rate"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
