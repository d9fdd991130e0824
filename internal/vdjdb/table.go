// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vdjdb loads the tab-separated TCR specificity table into
// records, validating and deduplicating rows on the way in.
package vdjdb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// requiredColumns must all be present in the header row. Names follow
// the paired database export.
var requiredColumns = []string{
	"cdr3.alpha", "v.alpha", "j.alpha",
	"cdr3.beta", "v.beta", "j.beta",
	"species", "mhc.a", "mhc.b",
	"antigen.epitope", "reference.id",
}

// aaPattern matches amino acid sequences in single-letter code.
var aaPattern = regexp.MustCompile(`^[ARNDCEQGHILKMFPSTWYV]+$`)

// allowedSpecies lists the organisms the database curates.
var allowedSpecies = map[string]bool{
	"HomoSapiens":      true,
	"MusMusculus":      true,
	"RattusNorvegicus": true,
	"MacacaMulatta":    true,
}

// LoadSummary holds counts from one table load.
type LoadSummary struct {
	Loaded     int
	Duplicates int
	Invalid    int
	Filtered   int
}

// Total returns the number of data rows read.
func (s LoadSummary) Total() int {
	return s.Loaded + s.Duplicates + s.Invalid + s.Filtered
}

// Load reads the table at cfg.Path. Rows failing validation are
// counted and reported to w, never fatal; duplicate rows (same full
// composite key) collapse to one; rows outside cfg.Species (when set)
// are filtered out.
func Load(cfg types.DatabaseConfig, w io.Writer) ([]types.Record, LoadSummary, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("opening database table: %w", err)
	}
	defer f.Close()

	records, summary, err := Read(f, cfg.Species, w)
	if err != nil {
		return nil, summary, fmt.Errorf("reading %s: %w", cfg.Path, err)
	}
	return records, summary, nil
}

// Read parses tab-separated record rows from r. See Load.
func Read(r io.Reader, species string, w io.Writer) ([]types.Record, LoadSummary, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("reading header row: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, LoadSummary{}, fmt.Errorf("required columns missing: %v", missing)
	}

	field := func(row []string, name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var (
		records []types.Record
		summary LoadSummary
		seen    = make(map[string]bool)
	)

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, summary, fmt.Errorf("line %d: %w", line, err)
		}

		rec := types.Record{
			CDR3Alpha: field(row, "cdr3.alpha"),
			VAlpha:    field(row, "v.alpha"),
			JAlpha:    field(row, "j.alpha"),
			CDR3Beta:  field(row, "cdr3.beta"),
			VBeta:     field(row, "v.beta"),
			JBeta:     field(row, "j.beta"),
			Species:   field(row, "species"),
			MHCA:      field(row, "mhc.a"),
			MHCB:      field(row, "mhc.b"),
			Epitope:   field(row, "antigen.epitope"),
			Reference: field(row, "reference.id"),
		}

		if msg := validate(rec); msg != "" {
			fmt.Fprintf(w, "warning: line %d skipped: %s\n", line, msg)
			summary.Invalid++
			continue
		}

		if species != "" && rec.Species != species {
			summary.Filtered++
			continue
		}

		key := rec.Key()
		if seen[key] {
			summary.Duplicates++
			continue
		}
		seen[key] = true

		records = append(records, rec)
		summary.Loaded++
	}

	return records, summary, nil
}

// validate returns a non-empty message when the row cannot be used.
func validate(rec types.Record) string {
	if rec.CDR3Alpha == "" && rec.CDR3Beta == "" {
		return "neither CDR3 sequence present"
	}
	if rec.CDR3Alpha != "" && !aaPattern.MatchString(rec.CDR3Alpha) {
		return fmt.Sprintf("bad alpha CDR3 sequence %q", rec.CDR3Alpha)
	}
	if rec.CDR3Beta != "" && !aaPattern.MatchString(rec.CDR3Beta) {
		return fmt.Sprintf("bad beta CDR3 sequence %q", rec.CDR3Beta)
	}
	if rec.Epitope != "" && !aaPattern.MatchString(rec.Epitope) {
		return fmt.Sprintf("bad epitope sequence %q", rec.Epitope)
	}
	if !allowedSpecies[rec.Species] {
		return fmt.Sprintf("unknown species %q", rec.Species)
	}
	return ""
}
