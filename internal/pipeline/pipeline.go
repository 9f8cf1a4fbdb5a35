// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the query stages together: predicate extraction,
// SQL synthesis, execution against the papers store, batch citation
// resolution, and aggregation. The pipeline always produces a ResultSet,
// possibly empty; no network- or storage-dependent condition aborts it.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/research-finder/internal/aggregate"
	"github.com/pdiddy/research-finder/internal/predicate"
	"github.com/pdiddy/research-finder/internal/sqlgen"
	"github.com/pdiddy/research-finder/pkg/types"
)

// PaperStore executes one synthesized SELECT against the papers table.
type PaperStore interface {
	QueryPapers(ctx context.Context, sqlQuery string) ([]types.PaperRecord, error)
}

// CitationResolver resolves citation data for a batch of paper identifiers.
type CitationResolver interface {
	ResolveMany(ctx context.Context, paperIDs []string) map[string]types.CitationResult
}

// Output holds everything one query run produced.
type Output struct {
	// Query is the raw input question.
	Query string `json:"query" yaml:"query"`

	// Predicates is the structured decomposition of the question.
	Predicates types.QueryPredicates `json:"predicates" yaml:"predicates"`

	// SQL is the synthesized statement that was executed.
	SQL string `json:"sql" yaml:"sql"`

	// Results is the ranked, citation-annotated result set.
	Results types.ResultSet `json:"results" yaml:"results"`
}

// Run processes one free-text query end to end. Storage unavailability
// degrades to a zero-match outcome with a warning on w; it is never an
// error. The ctx deadline bounds the whole run including in-flight provider
// calls.
func Run(ctx context.Context, rawQuery string, store PaperStore, resolver CitationResolver, dialect sqlgen.Dialect, w io.Writer) Output {
	preds := predicate.Extract(rawQuery)
	sqlText := sqlgen.Synthesize(dialect, preds, rawQuery)

	if preds.CitationPriority {
		fmt.Fprintln(w, "citation data prioritized for this query")
	}
	if preds.SpecificPaperLookup() {
		fmt.Fprintf(w, "citation lookup for paper %q\n", preds.SpecificPaperTitle)
	}
	fmt.Fprintf(w, "synthesized SQL: %s\n", sqlText)

	records, err := store.QueryPapers(ctx, sqlText)
	if err != nil {
		fmt.Fprintf(w, "warning: papers store unavailable, returning no matches: %v\n", err)
		records = nil
	}

	var citationMap map[string]types.CitationResult
	if len(records) > 0 {
		ids := make([]string, 0, len(records))
		for _, rec := range records {
			if rec.ID != "" {
				ids = append(ids, rec.ID)
			}
		}
		fmt.Fprintf(w, "resolving citations for %d papers\n", len(ids))
		citationMap = resolver.ResolveMany(ctx, ids)
	}

	return Output{
		Query:      rawQuery,
		Predicates: preds,
		SQL:        sqlText,
		Results:    aggregate.Aggregate(preds, records, citationMap),
	}
}
