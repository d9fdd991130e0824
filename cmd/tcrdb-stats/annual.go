// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/internal/stats"
)

var annualCmd = &cobra.Command{
	Use:   "annual",
	Short: "Compute cumulative statistics by publication year",
	Long: `Annual computes, for every publication year observed in the lookup cache
and every chain category (TRA, TRB, paired), the cumulative count of distinct
TCRs, epitopes, studies, and MHC allele pairs published up to and including
that year. Records whose references resolve to no year are absent from this
view; categories without records at a cutoff are reported as zero.

Run 'pubyears' first to build the lookup cache.`,
	RunE: runAnnual,
}

func init() {
	addDatabaseFlags(annualCmd)
	annualCmd.Flags().String("pubyears", "pubyears.yaml", "publication year lookup cache")
	annualCmd.Flags().String("out", "", "output file (default stdout)")
	annualCmd.Flags().Bool("json", false, "output snapshots as JSON instead of TSV")

	rootCmd.AddCommand(annualCmd)
}

func runAnnual(cmd *cobra.Command, args []string) error {
	records, err := loadDatabase(cmd)
	if err != nil {
		return err
	}

	cachePath, _ := cmd.Flags().GetString("pubyears")
	lookup, err := pubmed.ReadCache(cachePath)
	if err != nil {
		return err
	}

	snapshots := stats.Annual(records, lookup)
	if len(snapshots) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no publication years resolved; output is empty")
	}

	var w io.Writer = os.Stdout
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshots)
	}
	return stats.WriteSnapshotsTSV(w, snapshots)
}
