// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := types.StoreConfig{Path: filepath.Join(t.TempDir(), "tcrdb.db")}
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecords() []types.Record {
	return []types.Record{
		{
			CDR3Beta: "CASSLAPGATNEKLFF", VBeta: "TRBV7-6", JBeta: "TRBJ1-4",
			Species: "HomoSapiens", MHCA: "HLA-A*02:01", MHCB: "B2M",
			Epitope: "NLVPMVATV", Reference: "PMID:12555663",
		},
		{
			CDR3Alpha: "CAVSDLEPNSSASKIIF", VAlpha: "TRAV13-1", JAlpha: "TRAJ3",
			CDR3Beta: "CASSDAGGRNTLYF", VBeta: "TRBV13-3", JBeta: "TRBJ1-3",
			Species: "MusMusculus", MHCA: "H-2Kb", MHCB: "B2M",
			Epitope: "SIINFEKL", Reference: "PMID:15849183",
		},
	}
}

func TestInsertAndQueryRecords(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.InsertRecords(ctx, testRecords())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.QueryRecords(ctx, QueryOptions{Epitope: "NLVPMVATV"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CASSLAPGATNEKLFF", got[0].CDR3Beta)
	assert.Equal(t, "PMID:12555663", got[0].Reference)
}

func TestInsertRecordsIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.InsertRecords(ctx, testRecords())
	require.NoError(t, err)
	// Rebuilding must replace, not duplicate.
	_, err = s.InsertRecords(ctx, testRecords())
	require.NoError(t, err)

	got, err := s.QueryRecords(ctx, QueryOptions{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQueryRecordsFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.InsertRecords(ctx, testRecords())
	require.NoError(t, err)

	tests := []struct {
		name string
		opts QueryOptions
		want int
	}{
		{"by species", QueryOptions{Species: "MusMusculus"}, 1},
		{"by chain", QueryOptions{Chain: types.ChainPaired}, 1},
		{"species and chain", QueryOptions{Species: "HomoSapiens", Chain: types.ChainTRB}, 1},
		{"no match", QueryOptions{Species: "HomoSapiens", Chain: types.ChainPaired}, 0},
		{"no filter", QueryOptions{}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryRecords(ctx, tt.opts)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestQueryRecordsLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.InsertRecords(ctx, testRecords())
	require.NoError(t, err)

	got, err := s.QueryRecords(ctx, QueryOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSnapshotsRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	snaps := []types.Snapshot{
		{CutoffYear: 2015, Chain: types.ChainTRA},
		{CutoffYear: 2015, Chain: types.ChainTRB, TCRCount: 1, EpitopeCount: 1, ReferenceCount: 1, MHCCount: 1},
		{CutoffYear: 2015, Chain: types.ChainPaired},
	}
	require.NoError(t, s.InsertSnapshots(ctx, snaps))

	got, err := s.Snapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, snaps, got)

	// Replacing wipes the previous rows.
	require.NoError(t, s.InsertSnapshots(ctx, snaps[:1]))
	got, err = s.Snapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
