// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Snapshot holds the cumulative distinct-value counts for one
// (cutoff year, chain category) pair: every record published in or
// before CutoffYear with the given chain category contributes its
// composite keys once.
type Snapshot struct {
	CutoffYear     int           `yaml:"cutoff_year" json:"cutoff_year"`
	Chain          ChainCategory `yaml:"chain" json:"chain"`
	TCRCount       int           `yaml:"tcr_count" json:"tcr_count"`
	EpitopeCount   int           `yaml:"epitope_count" json:"epitope_count"`
	ReferenceCount int           `yaml:"reference_count" json:"reference_count"`
	MHCCount       int           `yaml:"mhc_count" json:"mhc_count"`
}

// GroupCount is one row of a descriptive summary table: distinct-value
// counts within one grouping value (a species, a chain category, an
// MHC class).
type GroupCount struct {
	Group          string `yaml:"group" json:"group"`
	Records        int    `yaml:"records" json:"records"`
	TCRCount       int    `yaml:"tcr_count" json:"tcr_count"`
	EpitopeCount   int    `yaml:"epitope_count" json:"epitope_count"`
	ReferenceCount int    `yaml:"reference_count" json:"reference_count"`
}

// EpitopeCountRow is one row of the top-epitopes table.
type EpitopeCountRow struct {
	Epitope string `yaml:"epitope" json:"epitope"`
	Species string `yaml:"species" json:"species"`
	Records int    `yaml:"records" json:"records"`
}
