// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"reflect"
	"testing"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

func TestSplitReferenceIDs(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want []string
	}{
		{"single PMID", "PMID:12555663", []string{"PMID:12555663"}},
		{"comma fan-out", "PMID:15849183,PMID:12555663", []string{"PMID:15849183", "PMID:12555663"}},
		{"spaces around tokens", " PMID:1 , PMID:2 ", []string{"PMID:1", "PMID:2"}},
		{"url token", "https://github.com/antigenomics/vdjdb-db/issues/193", []string{"https://github.com/antigenomics/vdjdb-db/issues/193"}},
		{"empty field", "", nil},
		{"stray commas", ",PMID:1,,", []string{"PMID:1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitReferenceIDs(tt.ref)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitReferenceIDs(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestPMID(t *testing.T) {
	tests := []struct {
		token  string
		wantID string
		wantOK bool
	}{
		{"PMID:12555663", "12555663", true},
		{"pmid:42", "42", true},
		{"PMID: 42", "42", true},
		{"12555663", "", false},
		{"https://doi.org/10.1101/100000", "", false},
		{"PMID:", "", false},
		{"PMID:12a34", "", false},
	}
	for _, tt := range tests {
		id, ok := PMID(tt.token)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("PMID(%q) = (%q, %v), want (%q, %v)", tt.token, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestCollectTokens(t *testing.T) {
	records := []types.Record{
		{Reference: "PMID:2,PMID:1"},
		{Reference: "PMID:1"},
		{Reference: "https://example.org/dataset"},
		{Reference: ""},
	}
	got := CollectTokens(records)
	want := []string{"PMID:1", "PMID:2", "https://example.org/dataset"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectTokens() = %v, want %v", got, want)
	}
}
