// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-finder
// query pipeline: the predicates derived from a free-text question, the
// paper rows returned by the papers database, resolved citation data, and
// the aggregated result set handed back to the caller.
package types

// QueryPredicates holds the structured fields extracted from one free-text
// research question. A predicate set is immutable once produced: extraction
// never fails, it simply leaves fields at their defaults when the query
// carries no matching signal.
type QueryPredicates struct {
	// Topic is the canonical research topic, or empty when none was detected.
	Topic string `json:"topic,omitempty" yaml:"topic,omitempty"`

	// Year is the lower publication-year bound, or zero when none was
	// detected. Valid extracted years lie in [1900, 2030]; out-of-range
	// matches are discarded rather than reported.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// CitationPriority is true when the query asks for citation-ranked
	// results ("most cited", "h-index", ...).
	CitationPriority bool `json:"citation_priority" yaml:"citation_priority"`

	// SpecificPaperTitle is the quoted title of a single requested paper.
	// When set, topic and year are ignored downstream.
	SpecificPaperTitle string `json:"specific_paper_title,omitempty" yaml:"specific_paper_title,omitempty"`

	// ResultCount is the requested number of results, clamped to [1, 100].
	// Defaults to 5.
	ResultCount int `json:"result_count" yaml:"result_count"`

	// WantSummary is true when the query asks for analysis or summaries.
	WantSummary bool `json:"want_summary" yaml:"want_summary"`
}

// SpecificPaperLookup reports whether the query targets a single paper by
// quoted title.
func (p QueryPredicates) SpecificPaperLookup() bool {
	return p.SpecificPaperTitle != ""
}
