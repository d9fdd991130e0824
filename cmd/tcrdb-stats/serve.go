// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/internal/server"
	"github.com/antigenomics/tcrdb-stats/internal/stats"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve computed statistics over a read-only HTTP API",
	Long: `Serve loads the database once, computes the summary tables and (when a
lookup cache exists) the cumulative annual snapshots, and serves the results
as JSON: /api/summary, /api/annual, /api/records, /healthz.`,
	RunE: runServe,
}

func init() {
	addDatabaseFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("pubyears", "pubyears.yaml", "publication year lookup cache")
	serveCmd.Flags().Int("top", 10, "number of top epitopes in the summary")
	serveCmd.Flags().Int("max-records", 0, "cap on /api/records responses (default 100)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	records, err := loadDatabase(cmd)
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")

	results := server.Results{
		Records:     records,
		Species:     stats.BySpecies(records),
		Chains:      stats.ByChain(records),
		MHCClasses:  stats.ByMHCClass(records),
		TopEpitopes: stats.TopEpitopes(records, top),
	}

	cachePath, _ := cmd.Flags().GetString("pubyears")
	if lookup, err := pubmed.ReadCache(cachePath); err == nil {
		results.Snapshots = stats.Annual(records, lookup)
	} else {
		fmt.Fprintf(os.Stderr, "warning: no lookup cache at %s, /api/annual will be empty\n", cachePath)
	}

	addr, _ := cmd.Flags().GetString("addr")
	maxRecords, _ := cmd.Flags().GetInt("max-records")

	r := server.New(results, types.ServerConfig{Addr: addr, MaxRecords: maxRecords})
	fmt.Fprintf(os.Stderr, "listening on %s\n", addr)
	return r.Run(addr)
}
