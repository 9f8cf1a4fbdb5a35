// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationSource identifies which provider tier produced a CitationResult.
type CitationSource string

const (
	// SourcePrimary is the locally hosted citation service.
	SourcePrimary CitationSource = "primary"

	// SourceSecondary is the public OpenCitations index.
	SourceSecondary CitationSource = "secondary"

	// SourceNone means no provider returned usable data. The count is a
	// placeholder zero, not a measured zero.
	SourceNone CitationSource = "none"
)

// CitingPaper is one entry in a citation list: a paper that cites the
// resolved paper.
type CitingPaper struct {
	// Title is the citing paper's title or identifier, whichever the
	// provider reports.
	Title string `json:"citing_title" yaml:"citing_title"`

	// Date is the citing paper's creation date as reported by the provider.
	Date string `json:"citing_date,omitempty" yaml:"citing_date,omitempty"`
}

// CitationResult holds resolved citation data for one paper identifier.
// Results are never mutated after resolution.
type CitationResult struct {
	// Count is the citation count, always >= 0.
	Count int `json:"count" yaml:"count"`

	// Citations lists up to 50 citing papers. The count is load-bearing for
	// ranking; the list is supplementary display data.
	Citations []CitingPaper `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Source is the provider tier that produced this result.
	Source CitationSource `json:"source" yaml:"source"`
}

// Resolved reports whether any provider returned usable data.
func (c CitationResult) Resolved() bool {
	return c.Source != SourceNone && c.Source != ""
}
