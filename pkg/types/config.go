package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tcrdb-stats/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DatabaseConfig holds settings for loading the specificity table.
type DatabaseConfig struct {
	// Path is the tab-separated database export to load.
	Path string `json:"path" yaml:"path"`

	// Species restricts loading to one organism (e.g. "HomoSapiens").
	// Empty means all species.
	Species string `json:"species,omitempty" yaml:"species,omitempty"`
}

// PubMedConfig holds settings for the publication year fetch stage.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey raises the NCBI E-utilities rate limit from 3 to 10
	// requests per second. Optional.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Tool and Email identify the client to NCBI (politeness
	// parameters, analogous to the OpenAlex mailto convention).
	Tool  string `json:"tool" yaml:"tool"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// BatchSize is the number of PMIDs per esummary request (default 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelay is the pause between consecutive batches (default 500ms).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// OverridesPath points to the YAML table of manually curated years
	// for identifiers PubMed cannot resolve. Configuration data:
	// additions belong in that file, not in code.
	OverridesPath string `json:"overrides_path,omitempty" yaml:"overrides_path,omitempty"`

	// CachePath is where the fetched lookup is written and reloaded from.
	CachePath string `json:"cache_path" yaml:"cache_path"`
}

// StoreConfig holds settings for the SQLite export.
type StoreConfig struct {
	// Path is the SQLite database file (default "tcrdb.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default query result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the read-only HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxRecords caps the /api/records response size (default 100).
	MaxRecords int `json:"max_records" yaml:"max_records"`
}
