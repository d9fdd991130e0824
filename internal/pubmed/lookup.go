// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Lookup is the finite, immutable mapping from identifier token to
// publication year that the statistics stages consume. It is the
// on-disk cache format as well: the fetch stage writes it once and the
// aggregation stages reload it without network access.
type Lookup struct {
	// Fetched records when the lookup was built.
	Fetched time.Time `yaml:"fetched"`

	// Years maps each resolvable identifier token (as it appears in
	// the reference field) to its publication year.
	Years map[string]int `yaml:"years"`

	// Unresolved lists tokens no source could resolve. Records citing
	// only these tokens are absent from the time-series view.
	Unresolved []string `yaml:"unresolved,omitempty"`
}

// YearFor returns the publication year for one identifier token.
func (l Lookup) YearFor(token string) (int, bool) {
	year, ok := l.Years[token]
	return year, ok
}

// RecordYears resolves a full reference field, fanning out over its
// comma-separated tokens. The result maps each resolvable token to its
// year; an empty map means the record cannot appear in the time series.
func (l Lookup) RecordYears(ref string) map[string]int {
	resolved := make(map[string]int)
	for _, token := range SplitReferenceIDs(ref) {
		if year, ok := l.Years[token]; ok {
			resolved[token] = year
		}
	}
	return resolved
}

// overridesFile is the on-disk shape of the curated year table.
type overridesFile struct {
	Overrides map[string]int `yaml:"overrides"`
}

// ReadOverrides loads the manually curated token → year table.
// The overrides cover identifiers outside PubMed (preprints, dataset
// links, issue-tracker URLs); maintaining them is a data concern, so
// they live in a YAML file rather than in code. A missing path returns
// an empty table.
func ReadOverrides(path string) (map[string]int, error) {
	if path == "" {
		return map[string]int{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing overrides file %s: %w", path, err)
	}
	if f.Overrides == nil {
		f.Overrides = map[string]int{}
	}
	return f.Overrides, nil
}

// Build resolves every token: overrides win, PMID tokens go to the
// client in one batched fetch, everything else is unresolved.
func Build(ctx context.Context, client *Client, tokens []string, overrides map[string]int, w io.Writer) (Lookup, error) {
	lookup := Lookup{
		Fetched: time.Now().UTC(),
		Years:   make(map[string]int, len(tokens)),
	}

	var pmids []string
	tokenByPMID := make(map[string]string)

	for _, token := range tokens {
		if year, ok := overrides[token]; ok {
			lookup.Years[token] = year
			continue
		}
		if id, ok := PMID(token); ok {
			pmids = append(pmids, id)
			tokenByPMID[id] = token
			continue
		}
		lookup.Unresolved = append(lookup.Unresolved, token)
	}

	if len(pmids) > 0 {
		years, unresolved, err := client.FetchYears(ctx, pmids, w)
		if err != nil {
			return Lookup{}, fmt.Errorf("fetching publication years: %w", err)
		}
		for id, year := range years {
			lookup.Years[tokenByPMID[id]] = year
		}
		for _, id := range unresolved {
			lookup.Unresolved = append(lookup.Unresolved, tokenByPMID[id])
		}
	}

	return lookup, nil
}

// WriteCache saves the lookup to a YAML file.
func WriteCache(path string, lookup Lookup) error {
	data, err := yaml.Marshal(&lookup)
	if err != nil {
		return fmt.Errorf("marshaling lookup cache: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadCache loads a previously written lookup cache.
func ReadCache(path string) (Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lookup{}, fmt.Errorf("reading lookup cache: %w", err)
	}
	var lookup Lookup
	if err := yaml.Unmarshal(data, &lookup); err != nil {
		return Lookup{}, fmt.Errorf("parsing lookup cache %s: %w", path, err)
	}
	if lookup.Years == nil {
		lookup.Years = map[string]int{}
	}
	return lookup, nil
}
