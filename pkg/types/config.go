// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pogo-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// CacheDir is the on-disk HTTP response cache directory. Empty
	// disables caching.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
}

// SourceKind identifies how a configured source is fetched and parsed.
type SourceKind string

const (
	SourceRSS  SourceKind = "rss"
	SourceHTML SourceKind = "html"
	SourceJSON SourceKind = "json"
)

// SourceConfig describes one upstream source for a domain.
type SourceConfig struct {
	// Name is the source identifier recorded in provenance sets.
	Name string `json:"name" yaml:"name"`

	// Kind selects the fetch/parse strategy: rss, html, or json.
	Kind SourceKind `json:"kind" yaml:"kind"`

	// URL is the feed, page, or API endpoint.
	URL string `json:"url" yaml:"url"`

	// Enabled gates the source; disabled sources are skipped.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Keywords supplements the domain's default keyword filter for
	// keyword-gated sources (balance, features).
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Allow restricts link-list extraction to anchors containing one of
	// these terms (wiki sources).
	Allow []string `json:"allow,omitempty" yaml:"allow,omitempty"`
}

// ScrapeConfig holds settings for the scrape stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// SourceDelay is the delay between consecutive source fetches (default 700ms).
	SourceDelay time.Duration `json:"source_delay" yaml:"source_delay"`

	// Sources maps a domain name to its configured upstream sources.
	Sources map[string][]SourceConfig `json:"sources" yaml:"sources"`

	// Leagues lists the PvP leagues to pull rankings for (default
	// great, ultra, master).
	Leagues []string `json:"leagues,omitempty" yaml:"leagues,omitempty"`

	// Cups lists the PvP cups to pull in addition to overall.
	Cups []string `json:"cups,omitempty" yaml:"cups,omitempty"`
}

// BuildConfig holds settings for the build (normalize/merge/validate) stage.
type BuildConfig struct {
	// LibraryDir is the base directory for the canonical library
	// (contains raw/, <domain>/index.json, index/).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// Strict makes a missing domain schema a hard error instead of a
	// warning-and-skip.
	Strict bool `json:"strict" yaml:"strict"`
}

// IndexConfig holds settings for the lexical index stage.
type IndexConfig struct {
	// LibraryDir is the base directory for the canonical library.
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MinTokens drops documents with fewer tokens from the fitted
	// models (default 3). Their metadata is still counted as skipped.
	MinTokens int `json:"min_tokens" yaml:"min_tokens"`
}

// QueryConfig holds settings for the query stage.
type QueryConfig struct {
	// LibraryDir is the base directory for the canonical library.
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the maximum number of ranked results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// LibraryDir is the base directory for the canonical library.
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// OutDir is the directory for digest artifacts (CSV, Excel, ICS).
	OutDir string `json:"out_dir" yaml:"out_dir"`
}

// StoreConfig holds settings for the SQLite library store.
type StoreConfig struct {
	// LibraryDir is the base directory for the canonical library
	// (the database lives in LibraryDir/index/digest.db).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Scrape ScrapeConfig `json:"scrape" yaml:"scrape"`
	Build  BuildConfig  `json:"build" yaml:"build"`
	Index  IndexConfig  `json:"index" yaml:"index"`
	Query  QueryConfig  `json:"query" yaml:"query"`
	Export ExportConfig `json:"export" yaml:"export"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
