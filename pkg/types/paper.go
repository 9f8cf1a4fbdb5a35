// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PaperRecord is one row from the papers table. Records are read-only after
// creation and live only for the duration of one query/response cycle.
type PaperRecord struct {
	// ID is the paper identifier as stored in the database. It may embed a
	// DOI, an OpenCitations Meta id, an ORCID, or several of these separated
	// by whitespace (e.g. "doi:10.1007/978-94-007-6738-6 meta:br/0614082260").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Author is the author string in source order.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// PubDate is the publication date as stored, typically "YYYY-MM-DD" but
	// sometimes just "YYYY". Empty when unknown.
	PubDate string `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`

	// Venue is the publication venue.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Type is the bibliographic record type (e.g. "journal article").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Year returns the 4-digit publication year prefix of PubDate, or empty when
// no date is recorded.
func (r PaperRecord) Year() string {
	if len(r.PubDate) < 4 {
		return ""
	}
	return r.PubDate[:4]
}

// AnnotatedPaper joins a PaperRecord with its resolved citation data. It is
// never mutated after the join.
type AnnotatedPaper struct {
	PaperRecord `yaml:",inline"`

	// Citation is the resolved citation data for this paper.
	Citation CitationResult `json:"citation" yaml:"citation"`
}
