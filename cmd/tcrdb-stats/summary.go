// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antigenomics/tcrdb-stats/internal/stats"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print descriptive summary tables for the database",
	Long: `Summary groups the loaded records by species, chain-pairing category, and
MHC class, and lists the most-observed epitopes. Each table reports record
counts alongside distinct TCR, epitope, and study counts.`,
	RunE: runSummary,
}

func init() {
	addDatabaseFlags(summaryCmd)
	summaryCmd.Flags().Int("top", 10, "number of top epitopes to list")
	summaryCmd.Flags().Bool("json", false, "output all tables as one JSON document")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	records, err := loadDatabase(cmd)
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")

	species := stats.BySpecies(records)
	chains := stats.ByChain(records)
	mhcClasses := stats.ByMHCClass(records)
	epitopes := stats.TopEpitopes(records, top)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"species":      species,
			"chains":       chains,
			"mhc_classes":  mhcClasses,
			"top_epitopes": epitopes,
		})
	}

	if err := stats.WriteGroupTSV(os.Stdout, "species", species); err != nil {
		return err
	}
	fmt.Println()
	if err := stats.WriteGroupTSV(os.Stdout, "chain_category", chains); err != nil {
		return err
	}
	fmt.Println()
	if err := stats.WriteGroupTSV(os.Stdout, "mhc_class", mhcClasses); err != nil {
		return err
	}
	fmt.Println()
	return stats.WriteEpitopesTSV(os.Stdout, epitopes)
}
