// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"fmt"
	"io"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// TSV writers produce the tabular output any charting layer can
// consume. Column order is fixed; rows keep the order of the input
// slice so the aggregators control ordering.

// WriteSnapshotsTSV writes the cumulative annual statistics table.
func WriteSnapshotsTSV(w io.Writer, snapshots []types.Snapshot) error {
	if _, err := fmt.Fprintln(w, "cutoff_year\tchain_category\ttcr_count\tepitope_count\treference_count\tmhc_count"); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	for _, s := range snapshots {
		_, err := fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
			s.CutoffYear, s.Chain, s.TCRCount, s.EpitopeCount, s.ReferenceCount, s.MHCCount)
		if err != nil {
			return fmt.Errorf("writing snapshot row: %w", err)
		}
	}
	return nil
}

// WriteGroupTSV writes one descriptive summary table. groupColumn
// names the first column (e.g. "species", "chain_category").
func WriteGroupTSV(w io.Writer, groupColumn string, rows []types.GroupCount) error {
	if _, err := fmt.Fprintf(w, "%s\trecords\ttcr_count\tepitope_count\treference_count\n", groupColumn); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, r := range rows {
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			r.Group, r.Records, r.TCRCount, r.EpitopeCount, r.ReferenceCount)
		if err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	return nil
}

// WriteEpitopesTSV writes the top-epitopes table.
func WriteEpitopesTSV(w io.Writer, rows []types.EpitopeCountRow) error {
	if _, err := fmt.Fprintln(w, "antigen.epitope\tspecies\trecords"); err != nil {
		return fmt.Errorf("writing epitope header: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", r.Epitope, r.Species, r.Records); err != nil {
			return fmt.Errorf("writing epitope row: %w", err)
		}
	}
	return nil
}
