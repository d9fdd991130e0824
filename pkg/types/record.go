// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared across tcrdb-stats stages.
package types

import "strings"

// ChainCategory classifies a record by which TCR chains it reports.
type ChainCategory string

const (
	// ChainTRA marks records reporting only the alpha chain.
	ChainTRA ChainCategory = "TRA"
	// ChainTRB marks records reporting only the beta chain.
	ChainTRB ChainCategory = "TRB"
	// ChainPaired marks records reporting both chains of one receptor.
	ChainPaired ChainCategory = "paired"
	// ChainNone marks degenerate records with neither CDR3 present.
	// Upstream validation should prevent these; they are excluded from
	// chain-category counts rather than treated as errors.
	ChainNone ChainCategory = ""
)

// ChainCategories lists the reportable categories in output order.
var ChainCategories = []ChainCategory{ChainTRA, ChainTRB, ChainPaired}

// MHCClass identifies the MHC molecule class of a record.
type MHCClass string

const (
	MHCI  MHCClass = "MHCI"
	MHCII MHCClass = "MHCII"
)

// Record is one TCR-epitope specificity observation from the paired
// (wide) database export. Chain fields are empty strings when the
// corresponding chain was not reported.
type Record struct {
	VAlpha    string `yaml:"v_alpha" json:"v_alpha"`
	JAlpha    string `yaml:"j_alpha" json:"j_alpha"`
	CDR3Alpha string `yaml:"cdr3_alpha" json:"cdr3_alpha"`

	VBeta    string `yaml:"v_beta" json:"v_beta"`
	JBeta    string `yaml:"j_beta" json:"j_beta"`
	CDR3Beta string `yaml:"cdr3_beta" json:"cdr3_beta"`

	MHCA string `yaml:"mhc_a" json:"mhc_a"`
	MHCB string `yaml:"mhc_b" json:"mhc_b"`

	Epitope   string `yaml:"epitope" json:"epitope"`
	Reference string `yaml:"reference" json:"reference"`
	Species   string `yaml:"species" json:"species"`
}

const keySep = "|"

// TCRKey returns the composite receptor identity: V/J segments and
// CDR3 sequence of both chains. Two rows with equal TCRKey describe
// the same receptor and contribute one unit to distinct-TCR counts.
func (r Record) TCRKey() string {
	return strings.Join([]string{
		r.VAlpha, r.JAlpha, r.CDR3Alpha,
		r.VBeta, r.JBeta, r.CDR3Beta,
	}, keySep)
}

// MHCKey returns the composite identity of the two MHC chain alleles.
func (r Record) MHCKey() string {
	return r.MHCA + keySep + r.MHCB
}

// Key returns the full composite identity used for input deduplication.
func (r Record) Key() string {
	return strings.Join([]string{
		r.TCRKey(), r.MHCKey(), r.Epitope, r.Reference, r.Species,
	}, keySep)
}

// Chain derives the chain-pairing category from which CDR3 sequences
// are present.
func (r Record) Chain() ChainCategory {
	switch {
	case r.CDR3Alpha != "" && r.CDR3Beta != "":
		return ChainPaired
	case r.CDR3Alpha != "":
		return ChainTRA
	case r.CDR3Beta != "":
		return ChainTRB
	default:
		return ChainNone
	}
}

// MHCClass derives the MHC class from the second chain allele: class I
// molecules pair with beta-2 microglobulin, class II with a second
// MHC-encoded chain.
func (r Record) MHCClass() MHCClass {
	if strings.EqualFold(r.MHCB, "B2M") {
		return MHCI
	}
	return MHCII
}
