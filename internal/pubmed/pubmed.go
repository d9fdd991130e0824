// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed resolves study reference identifiers to publication
// years. PMID tokens are looked up through the NCBI E-utilities
// esummary endpoint; everything else comes from a curated overrides
// table. The resulting lookup is fetched once and cached, so the
// statistics stages never touch the network.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/antigenomics/tcrdb-stats/internal/httputil"
	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

// esummaryBase is the NCBI E-utilities esummary endpoint. Declared as
// a var so tests can substitute an httptest server.
var esummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"

const (
	defaultBatchSize  = 100
	defaultBatchDelay = 500 * time.Millisecond
)

// yearPattern extracts the leading year from esummary pubdate strings
// such as "2015 Jul 21" or "2003 Nov-Dec".
var yearPattern = regexp.MustCompile(`\d{4}`)

// Client queries the NCBI esummary API for publication years.
type Client struct {
	HTTP *http.Client
	Cfg  types.PubMedConfig
}

// FetchYears resolves publication years for the given numeric PMIDs.
// IDs are queried in batches with a politeness delay between batches.
// Returned map is keyed by numeric PMID; ids PubMed does not know, or
// whose pubdate carries no parseable year, come back in unresolved.
func (c *Client) FetchYears(ctx context.Context, pmids []string, w io.Writer) (map[string]int, []string, error) {
	years := make(map[string]int, len(pmids))
	var unresolved []string

	batchSize := c.Cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	batchDelay := c.Cfg.BatchDelay
	if batchDelay <= 0 {
		batchDelay = defaultBatchDelay
	}

	for start := 0; start < len(pmids); start += batchSize {
		end := start + batchSize
		if end > len(pmids) {
			end = len(pmids)
		}
		batch := pmids[start:end]

		if start > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(batchDelay):
			}
		}

		fmt.Fprintf(w, "fetching publication years %d-%d of %d\n", start+1, end, len(pmids))

		batchYears, err := c.fetchBatch(ctx, batch)
		if err != nil {
			return nil, nil, err
		}

		for _, id := range batch {
			if year, ok := batchYears[id]; ok {
				years[id] = year
			} else {
				unresolved = append(unresolved, id)
			}
		}
	}

	return years, unresolved, nil
}

func (c *Client) fetchBatch(ctx context.Context, pmids []string) (map[string]int, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"json"},
	}
	if c.Cfg.Tool != "" {
		params.Set("tool", c.Cfg.Tool)
	}
	if c.Cfg.Email != "" {
		params.Set("email", c.Cfg.Email)
	}
	if c.Cfg.APIKey != "" {
		params.Set("api_key", c.Cfg.APIKey)
	}

	reqURL := esummaryBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("esummary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esummary returned HTTP %d", resp.StatusCode)
	}

	// The esummary result object maps each uid to its document, plus a
	// "uids" list. Dynamic keys force a two-stage decode.
	var envelope struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("parsing esummary response: %w", err)
	}

	var uids []string
	if raw, ok := envelope.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &uids); err != nil {
			return nil, fmt.Errorf("parsing esummary uid list: %w", err)
		}
	}

	years := make(map[string]int, len(uids))
	for _, uid := range uids {
		raw, ok := envelope.Result[uid]
		if !ok {
			continue
		}
		var doc struct {
			PubDate string `json:"pubdate"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil || doc.Error != "" {
			continue
		}
		if year, ok := parseYear(doc.PubDate); ok {
			years[uid] = year
		}
	}

	return years, nil
}

// parseYear extracts the publication year from a pubdate string.
// A malformed or missing year makes the id unresolvable, same as an
// unknown id.
func parseYear(pubdate string) (int, bool) {
	m := yearPattern.FindString(pubdate)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}
