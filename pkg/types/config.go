package types

import "time"

// StoreConfig holds connection settings for the papers database. The core
// only depends on the query contract; connection parameters are plain
// configuration.
type StoreConfig struct {
	// Driver is the database/sql driver name: "pgx" for PostgreSQL or
	// "sqlite3" for a local SQLite file (default).
	Driver string `json:"driver" yaml:"driver"`

	// DSN is the driver-specific data source name.
	DSN string `json:"dsn" yaml:"dsn"`
}

// CitationConfig holds settings for the citation resolver and its two
// provider tiers.
type CitationConfig struct {
	// LocalBaseURL is the base URL of the primary, locally hosted citation
	// service (default "http://localhost:5000").
	LocalBaseURL string `json:"local_base_url" yaml:"local_base_url"`

	// OpenCitationsBaseURL is the base URL of the secondary, public citation
	// index (default "https://api.opencitations.net/index/v1").
	OpenCitationsBaseURL string `json:"opencitations_base_url" yaml:"opencitations_base_url"`

	// AccessToken authenticates requests to the public index. Optional.
	AccessToken string `json:"access_token,omitempty" yaml:"access_token,omitempty"`

	// LocalTimeout is the per-request timeout for the primary tier
	// (default 5s).
	LocalTimeout time.Duration `json:"local_timeout" yaml:"local_timeout"`

	// OpenCitationsTimeout is the per-request timeout for the secondary tier
	// (default 10s).
	OpenCitationsTimeout time.Duration `json:"opencitations_timeout" yaml:"opencitations_timeout"`

	// Workers bounds the parallelism of batch resolution (default 8).
	Workers int `json:"workers" yaml:"workers"`

	// UserAgent is the User-Agent header sent with provider requests
	// (e.g. "research-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PipelineConfig groups the configuration consumed by one query run.
type PipelineConfig struct {
	Store     StoreConfig    `json:"store" yaml:"store"`
	Citations CitationConfig `json:"citations" yaml:"citations"`
}
