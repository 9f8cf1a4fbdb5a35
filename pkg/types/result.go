// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Statistics summarizes one result set. It is recomputed for every query and
// never persisted.
//
// Averaging policy: papers whose citation source is "none" count toward
// TotalPapers and contribute 0 to TotalCitations, but are excluded from the
// AvgCitations denominator. AvgCitations therefore reads as "citations per
// resolved paper".
type Statistics struct {
	// TotalPapers is the number of papers in the result set.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// TotalCitations is the sum of resolved citation counts.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`

	// AvgCitations is TotalCitations divided by the number of resolved papers.
	AvgCitations float64 `json:"avg_citations" yaml:"avg_citations"`

	// YearHistogram tallies papers per publication year.
	YearHistogram map[string]int `json:"year_histogram,omitempty" yaml:"year_histogram,omitempty"`

	// VenueHistogram tallies papers per cleaned venue string.
	VenueHistogram map[string]int `json:"venue_histogram,omitempty" yaml:"venue_histogram,omitempty"`
}

// ResultSet is the ordered, citation-annotated outcome of one query.
type ResultSet struct {
	// Papers is the ordered result sequence.
	Papers []AnnotatedPaper `json:"papers" yaml:"papers"`

	// Stats summarizes the papers above.
	Stats Statistics `json:"statistics" yaml:"statistics"`
}
