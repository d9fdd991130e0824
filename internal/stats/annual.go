// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes descriptive and cumulative statistics over
// the loaded specificity records. Everything here is a pure batch
// computation: records and the publication-year lookup come in
// materialized, tables of counts come out.
package stats

import (
	"sort"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// event is one attribution of a record to a publication year through
// one of its reference tokens.
type event struct {
	rec   types.Record
	chain types.ChainCategory
	token string
}

// distinctSets tracks the running distinct-value sets for one chain
// category while sweeping years in ascending order.
type distinctSets struct {
	tcrs     map[string]struct{}
	epitopes map[string]struct{}
	refs     map[string]struct{}
	mhcs     map[string]struct{}
}

func newDistinctSets() *distinctSets {
	return &distinctSets{
		tcrs:     make(map[string]struct{}),
		epitopes: make(map[string]struct{}),
		refs:     make(map[string]struct{}),
		mhcs:     make(map[string]struct{}),
	}
}

func (s *distinctSets) add(ev event) {
	s.tcrs[ev.rec.TCRKey()] = struct{}{}
	s.epitopes[ev.rec.Epitope] = struct{}{}
	s.refs[ev.token] = struct{}{}
	s.mhcs[ev.rec.MHCKey()] = struct{}{}
}

func (s *distinctSets) snapshot(year int, chain types.ChainCategory) types.Snapshot {
	return types.Snapshot{
		CutoffYear:     year,
		Chain:          chain,
		TCRCount:       len(s.tcrs),
		EpitopeCount:   len(s.epitopes),
		ReferenceCount: len(s.refs),
		MHCCount:       len(s.mhcs),
	}
}

// Annual computes one Snapshot per (cutoff year, chain category) pair.
// Cutoff years are the distinct publication years resolvable from the
// records; for each cutoff Y a snapshot counts distinct TCRs,
// epitopes, references, and MHC allele pairs over records published in
// year <= Y with the given chain category.
//
// Records whose reference field resolves to no year are absent from
// this view. A comma-separated reference fans out: the record is
// attributed to every resolvable token. Categories with no records at
// a cutoff are reported with zero counts, never omitted. An empty
// lookup yields an empty result.
//
// Rather than re-aggregating the full table per cutoff, records are
// sorted into per-year buckets once and running distinct sets per
// category are advanced year by year.
func Annual(records []types.Record, lookup pubmed.Lookup) []types.Snapshot {
	byYear := make(map[int][]event)
	for _, rec := range records {
		chain := rec.Chain()
		if chain == types.ChainNone {
			continue
		}
		for token, year := range lookup.RecordYears(rec.Reference) {
			byYear[year] = append(byYear[year], event{rec: rec, chain: chain, token: token})
		}
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	running := make(map[types.ChainCategory]*distinctSets, len(types.ChainCategories))
	for _, chain := range types.ChainCategories {
		running[chain] = newDistinctSets()
	}

	snapshots := make([]types.Snapshot, 0, len(years)*len(types.ChainCategories))
	for _, year := range years {
		for _, ev := range byYear[year] {
			running[ev.chain].add(ev)
		}
		for _, chain := range types.ChainCategories {
			snapshots = append(snapshots, running[chain].snapshot(year, chain))
		}
	}

	return snapshots
}
