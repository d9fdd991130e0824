// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/internal/stats"
	"github.com/antigenomics/tcrdb-stats/internal/store"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the SQLite export (build, query)",
	Long: `Db maintains a SQLite mirror of the specificity records and computed
snapshots so downstream tooling can query the database without re-parsing
the TSV export.`,
}

// --- build subcommand ---

var dbBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Ingest records (and snapshots, when a lookup cache exists) into SQLite",
	RunE:  runDBBuild,
}

func runDBBuild(cmd *cobra.Command, args []string) error {
	records, err := loadDatabase(cmd)
	if err != nil {
		return err
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()

	n, err := s.InsertRecords(ctx, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "stored %d records\n", n)

	// Snapshots are stored only when a lookup cache is available.
	cachePath, _ := cmd.Flags().GetString("pubyears")
	lookup, err := pubmed.ReadCache(cachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: no lookup cache at %s, skipping snapshots: %v\n", cachePath, err)
		return nil
	}

	snapshots := stats.Annual(records, lookup)
	if err := s.InsertSnapshots(ctx, snapshots); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "stored %d snapshots\n", len(snapshots))
	return nil
}

// --- query subcommand ---

var dbQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query stored records by epitope, species, or chain category",
	RunE:  runDBQuery,
}

func runDBQuery(cmd *cobra.Command, args []string) error {
	epitope, _ := cmd.Flags().GetString("epitope")
	species, _ := cmd.Flags().GetString("species")
	chain, _ := cmd.Flags().GetString("chain")
	limit, _ := cmd.Flags().GetInt("limit")

	if epitope == "" && species == "" && chain == "" {
		return fmt.Errorf("filter required: provide --epitope, --species, or --chain")
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.QueryRecords(context.Background(), store.QueryOptions{
		Epitope: epitope,
		Species: species,
		Chain:   types.ChainCategory(chain),
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(records, jsonOutput)
}

func formatQueryOutput(records []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-7s  %-22s  %-22s  %-15s  %-14s  %s\n",
		"Chain", "CDR3 alpha", "CDR3 beta", "Epitope", "Species", "Reference")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))

	for _, rec := range records {
		fmt.Fprintf(os.Stdout, "%-7s  %-22s  %-22s  %-15s  %-14s  %s\n",
			rec.Chain(), clip(rec.CDR3Alpha, 22), clip(rec.CDR3Beta, 22),
			clip(rec.Epitope, 15), clip(rec.Species, 14), rec.Reference)
	}

	fmt.Fprintf(os.Stdout, "\n%d records\n", len(records))
	return nil
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, _ := cmd.Flags().GetString("store")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.Open(types.StoreConfig{Path: path, MaxResults: maxResults})
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	dbCmd.PersistentFlags().String("store", "tcrdb.db", "SQLite database file")
	dbCmd.PersistentFlags().Int("max-results", 20, "default query result limit")

	addDatabaseFlags(dbBuildCmd)
	dbBuildCmd.Flags().String("pubyears", "pubyears.yaml", "publication year lookup cache")

	dbQueryCmd.Flags().String("epitope", "", "filter by epitope sequence")
	dbQueryCmd.Flags().String("species", "", "filter by organism")
	dbQueryCmd.Flags().String("chain", "", "filter by chain category: TRA, TRB, paired")
	dbQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	dbQueryCmd.Flags().Bool("json", false, "output records as JSON")

	dbCmd.AddCommand(dbBuildCmd)
	dbCmd.AddCommand(dbQueryCmd)

	rootCmd.AddCommand(dbCmd)
}
