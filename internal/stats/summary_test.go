// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"testing"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

func TestBySpecies(t *testing.T) {
	mouse := trbRecord("CASSDAGG", "SIINFEKL", "PMID:3")
	mouse.Species = "MusMusculus"

	records := []types.Record{
		trbRecord("CASSA", "NLVPMVATV", "PMID:1"),
		trbRecord("CASSB", "NLVPMVATV", "PMID:1,PMID:2"),
		mouse,
	}

	rows := BySpecies(records)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	// Sorted by group name: HomoSapiens before MusMusculus.
	human := rows[0]
	if human.Group != "HomoSapiens" {
		t.Fatalf("rows[0].Group = %q, want HomoSapiens", human.Group)
	}
	if human.Records != 2 || human.TCRCount != 2 || human.EpitopeCount != 1 {
		t.Errorf("human = %+v, want records=2 tcr=2 epi=1", human)
	}
	// References are counted per token, so the fan-out row adds PMID:2.
	if human.ReferenceCount != 2 {
		t.Errorf("human.ReferenceCount = %d, want 2", human.ReferenceCount)
	}

	if rows[1].Group != "MusMusculus" || rows[1].Records != 1 {
		t.Errorf("rows[1] = %+v, want one mouse record", rows[1])
	}
}

func TestByChain(t *testing.T) {
	alpha := types.Record{
		CDR3Alpha: "CAVSD", VAlpha: "TRAV13-1", JAlpha: "TRAJ3",
		Species: "HomoSapiens", MHCA: "HLA-A*02:01", MHCB: "B2M",
		Epitope: "NLVPMVATV", Reference: "PMID:1",
	}
	degenerate := types.Record{Species: "HomoSapiens", Epitope: "NLVPMVATV", Reference: "PMID:1"}

	records := []types.Record{
		alpha,
		trbRecord("CASSA", "NLVPMVATV", "PMID:1"),
		pairedRecord("CAVR", "CASSB", "GILGFVFTL", "PMID:2"),
		degenerate,
	}

	rows := ByChain(records)
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (degenerate row excluded)", len(rows))
	}

	got := make(map[string]int)
	for _, r := range rows {
		got[r.Group] = r.Records
	}
	for _, chain := range []string{"TRA", "TRB", "paired"} {
		if got[chain] != 1 {
			t.Errorf("records[%s] = %d, want 1", chain, got[chain])
		}
	}
}

func TestByMHCClass(t *testing.T) {
	classII := trbRecord("CASSA", "PKYVKQNTLKLAT", "PMID:1")
	classII.MHCA = "HLA-DRA*01:01"
	classII.MHCB = "HLA-DRB1*01:01"

	records := []types.Record{
		trbRecord("CASSB", "NLVPMVATV", "PMID:1"),
		classII,
	}

	rows := ByMHCClass(records)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Group != string(types.MHCI) || rows[1].Group != string(types.MHCII) {
		t.Errorf("groups = [%s %s], want [MHCI MHCII]", rows[0].Group, rows[1].Group)
	}
}

func TestTopEpitopes(t *testing.T) {
	records := []types.Record{
		trbRecord("CASSA", "NLVPMVATV", "PMID:1"),
		trbRecord("CASSB", "NLVPMVATV", "PMID:2"),
		trbRecord("CASSC", "NLVPMVATV", "PMID:3"),
		trbRecord("CASSD", "GILGFVFTL", "PMID:4"),
		trbRecord("CASSE", "GILGFVFTL", "PMID:5"),
		trbRecord("CASSF", "ELAGIGILTV", "PMID:6"),
	}

	rows := TopEpitopes(records, 2)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Epitope != "NLVPMVATV" || rows[0].Records != 3 {
		t.Errorf("rows[0] = %+v, want NLVPMVATV with 3 records", rows[0])
	}
	if rows[1].Epitope != "GILGFVFTL" || rows[1].Records != 2 {
		t.Errorf("rows[1] = %+v, want GILGFVFTL with 2 records", rows[1])
	}

	// n <= 0 returns everything.
	all := TopEpitopes(records, 0)
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestTopEpitopesTieBreak(t *testing.T) {
	records := []types.Record{
		trbRecord("CASSA", "GILGFVFTL", "PMID:1"),
		trbRecord("CASSB", "ELAGIGILTV", "PMID:2"),
	}
	rows := TopEpitopes(records, 0)
	if rows[0].Epitope != "ELAGIGILTV" {
		t.Errorf("rows[0].Epitope = %q, want alphabetical tie-break", rows[0].Epitope)
	}
}
