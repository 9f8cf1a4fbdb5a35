// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate joins paper rows with their resolved citation data and
// derives summary statistics for one query/response cycle.
package aggregate

import (
	"strings"

	"github.com/pdiddy/research-finder/internal/citations"
	"github.com/pdiddy/research-finder/pkg/types"
)

// Aggregate joins each row with its citation result by identifier, reorders
// by citation count when the query asked for citation priority, and computes
// statistics over the final set. Rows with no map entry are annotated with
// the zero/none result.
//
// Under citation priority the row budget was widened at synthesis time to
// give the post-hoc ranking enough candidates; after sorting, the set is
// trimmed back to the requested result count.
func Aggregate(p types.QueryPredicates, records []types.PaperRecord, citationMap map[string]types.CitationResult) types.ResultSet {
	papers := make([]types.AnnotatedPaper, 0, len(records))
	for _, rec := range records {
		cit, ok := citationMap[rec.ID]
		if !ok {
			cit = types.CitationResult{Source: types.SourceNone}
		}
		papers = append(papers, types.AnnotatedPaper{PaperRecord: rec, Citation: cit})
	}

	if p.CitationPriority {
		papers = citations.SortByCitations(papers)
		if p.ResultCount > 0 && len(papers) > p.ResultCount {
			papers = papers[:p.ResultCount]
		}
	}

	return types.ResultSet{Papers: papers, Stats: computeStats(papers)}
}

// computeStats tallies the result set in a single pass. Unresolved papers
// count toward TotalPapers and add nothing to TotalCitations; the average
// divides by resolved papers only (see types.Statistics).
func computeStats(papers []types.AnnotatedPaper) types.Statistics {
	stats := types.Statistics{
		TotalPapers:    len(papers),
		YearHistogram:  make(map[string]int),
		VenueHistogram: make(map[string]int),
	}

	resolved := 0
	for _, p := range papers {
		if year := p.Year(); year != "" {
			stats.YearHistogram[year]++
		}
		if venue := cleanVenue(p.Venue); venue != "" {
			stats.VenueHistogram[venue]++
		}
		if p.Citation.Resolved() {
			resolved++
			stats.TotalCitations += p.Citation.Count
		}
	}

	if resolved > 0 {
		stats.AvgCitations = float64(stats.TotalCitations) / float64(resolved)
	}
	return stats
}

// cleanVenue normalizes a venue string for tallying: collapse whitespace and
// drop trailing punctuation.
func cleanVenue(venue string) string {
	venue = strings.Join(strings.Fields(venue), " ")
	return strings.TrimRight(venue, ".,; ")
}
