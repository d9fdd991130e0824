// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"sort"

	"github.com/antigenomics/tcrdb-stats/internal/pubmed"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// groupAccum accumulates one summary row.
type groupAccum struct {
	records  int
	tcrs     map[string]struct{}
	epitopes map[string]struct{}
	refs     map[string]struct{}
}

func groupBy(records []types.Record, keyOf func(types.Record) string) []types.GroupCount {
	groups := make(map[string]*groupAccum)
	for _, rec := range records {
		key := keyOf(rec)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &groupAccum{
				tcrs:     make(map[string]struct{}),
				epitopes: make(map[string]struct{}),
				refs:     make(map[string]struct{}),
			}
			groups[key] = g
		}
		g.records++
		g.tcrs[rec.TCRKey()] = struct{}{}
		g.epitopes[rec.Epitope] = struct{}{}
		for _, token := range pubmed.SplitReferenceIDs(rec.Reference) {
			g.refs[token] = struct{}{}
		}
	}

	rows := make([]types.GroupCount, 0, len(groups))
	for key, g := range groups {
		rows = append(rows, types.GroupCount{
			Group:          key,
			Records:        g.records,
			TCRCount:       len(g.tcrs),
			EpitopeCount:   len(g.epitopes),
			ReferenceCount: len(g.refs),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Group < rows[j].Group })
	return rows
}

// BySpecies summarizes record and distinct-value counts per organism.
func BySpecies(records []types.Record) []types.GroupCount {
	return groupBy(records, func(r types.Record) string { return r.Species })
}

// ByChain summarizes counts per chain-pairing category. Degenerate
// records with neither CDR3 are excluded.
func ByChain(records []types.Record) []types.GroupCount {
	return groupBy(records, func(r types.Record) string { return string(r.Chain()) })
}

// ByMHCClass summarizes counts per MHC class.
func ByMHCClass(records []types.Record) []types.GroupCount {
	return groupBy(records, func(r types.Record) string { return string(r.MHCClass()) })
}

// TopEpitopes returns the n most-observed epitopes by record count,
// ties broken alphabetically. n <= 0 returns all epitopes.
func TopEpitopes(records []types.Record, n int) []types.EpitopeCountRow {
	type key struct{ epitope, species string }
	counts := make(map[key]int)
	for _, rec := range records {
		if rec.Epitope == "" {
			continue
		}
		counts[key{rec.Epitope, rec.Species}]++
	}

	rows := make([]types.EpitopeCountRow, 0, len(counts))
	for k, c := range counts {
		rows = append(rows, types.EpitopeCountRow{Epitope: k.epitope, Species: k.species, Records: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Records != rows[j].Records {
			return rows[i].Records > rows[j].Records
		}
		return rows[i].Epitope < rows[j].Epitope
	})

	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
