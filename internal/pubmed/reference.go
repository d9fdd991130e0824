// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"regexp"
	"sort"
	"strings"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// pmidPattern matches PubMed identifier tokens: "PMID:12555663".
// The prefix is matched case-insensitively since curated chunks are
// not uniform about it.
var pmidPattern = regexp.MustCompile(`(?i)^PMID:\s*(\d+)$`)

// SplitReferenceIDs splits a reference field into its source
// identifier tokens. A single field may cite several sources
// comma-separated; every token is returned so the record can be
// attributed to all of them.
func SplitReferenceIDs(ref string) []string {
	var tokens []string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

// PMID extracts the numeric PubMed ID from a token, reporting whether
// the token is a PMID at all. Non-PMID tokens (DOIs, preprint and
// issue-tracker URLs) resolve only through the overrides table.
func PMID(token string) (string, bool) {
	m := pmidPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CollectTokens returns the sorted distinct identifier tokens across
// all record reference fields.
func CollectTokens(records []types.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, token := range SplitReferenceIDs(rec.Reference) {
			seen[token] = true
		}
	}
	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
