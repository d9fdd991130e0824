// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "tcrdb-stats/0.1"
)

var pubyearsCmd = &cobra.Command{
	Use:   "pubyears",
	Short: "Fetch publication years for every study cited in the database",
	Long: `Pubyears collects the distinct reference identifiers from the database,
resolves PMID tokens through the NCBI esummary API, applies the curated
overrides table for everything else, and writes the resulting lookup to a
YAML cache. The statistics commands read that cache and never touch the
network themselves.`,
	RunE: runPubyears,
}

func init() {
	addDatabaseFlags(pubyearsCmd)
	pubyearsCmd.Flags().String("out", "pubyears.yaml", "lookup cache file to write")
	pubyearsCmd.Flags().String("overrides", "", "curated overrides YAML (token: year)")
	pubyearsCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	pubyearsCmd.Flags().Duration("delay", 0, "delay between esummary batches (default 500ms)")
	pubyearsCmd.Flags().Int("batch-size", 0, "PMIDs per esummary request (default 100)")
	pubyearsCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	pubyearsCmd.Flags().String("email", "", "contact email sent to NCBI (default: .secrets/ncbi-email)")

	rootCmd.AddCommand(pubyearsCmd)
}

func runPubyears(cmd *cobra.Command, args []string) error {
	records, err := loadDatabase(cmd)
	if err != nil {
		return err
	}

	tokens := pubmed.CollectTokens(records)
	if len(tokens) == 0 {
		return fmt.Errorf("database contains no reference identifiers")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	apiKey, _ := cmd.Flags().GetString("api-key")
	email, _ := cmd.Flags().GetString("email")
	overridesPath, _ := cmd.Flags().GetString("overrides")
	out, _ := cmd.Flags().GetString("out")

	cfg := types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Tool:          "tcrdb-stats",
		APIKey:        secretDefault("ncbi-api-key", apiKey),
		Email:         secretDefault("ncbi-email", email),
		BatchSize:     batchSize,
		BatchDelay:    delay,
		OverridesPath: overridesPath,
		CachePath:     out,
	}

	overrides, err := pubmed.ReadOverrides(cfg.OverridesPath)
	if err != nil {
		return err
	}

	client := &pubmed.Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}

	fmt.Fprintf(os.Stderr, "resolving %d reference identifiers\n", len(tokens))

	lookup, err := pubmed.Build(context.Background(), client, tokens, overrides, os.Stderr)
	if err != nil {
		return err
	}

	if err := pubmed.WriteCache(cfg.CachePath, lookup); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "resolved %d of %d identifiers, cache written to %s\n",
		len(lookup.Years), len(tokens), cfg.CachePath)
	for _, token := range lookup.Unresolved {
		fmt.Fprintf(os.Stderr, "unresolved: %s (add to the overrides file to include it)\n", token)
	}
	return nil
}
