// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tcrdb-stats CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/antigenomics/tcrdb-stats/internal/secrets"
	"github.com/antigenomics/tcrdb-stats/internal/vdjdb"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the tcrdb-stats CLI.
var rootCmd = &cobra.Command{
	Use:   "tcrdb-stats",
	Short: "Descriptive statistics over the TCR specificity database",
	Long: `tcrdb-stats loads the tab-separated TCR specificity database export and
produces descriptive statistics: summary tables, cumulative annual statistics
by publication year, a SQLite export, and a read-only HTTP API.

Publication years come from the NCBI PubMed esummary API, merged with a
curated overrides table for identifiers outside PubMed. Fetch them once with
'pubyears'; the statistics commands then run entirely offline.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tcrdb-stats.yaml or ~/.config/tcrdb-stats/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tcrdb-stats")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tcrdb-stats"))
		}
	}

	viper.SetEnvPrefix("TCRDB_STATS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// addDatabaseFlags registers the shared table-loading flags.
func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("database", "vdjdb.txt", "tab-separated database export to load")
	cmd.Flags().String("species", "", "restrict to one organism (e.g. HomoSapiens; default all)")
}

// loadDatabase reads the specificity table per the command's flags,
// reporting the load summary on stderr.
func loadDatabase(cmd *cobra.Command) ([]types.Record, error) {
	path, _ := cmd.Flags().GetString("database")
	species, _ := cmd.Flags().GetString("species")

	cfg := types.DatabaseConfig{Path: path, Species: species}
	records, summary, err := vdjdb.Load(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "loaded %d records (%d duplicates, %d invalid, %d filtered)\n",
		summary.Loaded, summary.Duplicates, summary.Invalid, summary.Filtered)
	return records, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
