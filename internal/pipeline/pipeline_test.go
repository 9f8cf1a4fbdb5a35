// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/research-finder/internal/sqlgen"
	"github.com/pdiddy/research-finder/pkg/types"
)

// fakeStore records the SQL it was given and plays back canned rows.
type fakeStore struct {
	gotSQL  string
	records []types.PaperRecord
	err     error
}

func (f *fakeStore) QueryPapers(_ context.Context, sqlQuery string) ([]types.PaperRecord, error) {
	f.gotSQL = sqlQuery
	return f.records, f.err
}

// fakeResolver records the batch it was given and plays back a canned map.
type fakeResolver struct {
	gotIDs  []string
	results map[string]types.CitationResult
	calls   int
}

func (f *fakeResolver) ResolveMany(_ context.Context, paperIDs []string) map[string]types.CitationResult {
	f.calls++
	f.gotIDs = paperIDs
	return f.results
}

func TestRunEndToEnd(t *testing.T) {
	store := &fakeStore{records: []types.PaperRecord{
		{ID: "doi:10.1/a", Title: "A", PubDate: "2021-01-01"},
		{ID: "doi:10.2/b", Title: "B", PubDate: "2022-01-01"},
	}}
	resolver := &fakeResolver{results: map[string]types.CitationResult{
		"doi:10.1/a": {Count: 30, Source: types.SourcePrimary},
		"doi:10.2/b": {Count: 8, Source: types.SourceSecondary},
	}}
	var progress strings.Builder

	out := Run(context.Background(), "most cited machine learning papers", store, resolver, sqlgen.Postgres, &progress)

	if out.Query != "most cited machine learning papers" {
		t.Errorf("Query = %q", out.Query)
	}
	if !out.Predicates.CitationPriority {
		t.Error("CitationPriority should be set")
	}
	if out.SQL != store.gotSQL {
		t.Errorf("Output.SQL %q differs from executed SQL %q", out.SQL, store.gotSQL)
	}
	if len(resolver.gotIDs) != 2 {
		t.Fatalf("resolver got %d ids, want 2", len(resolver.gotIDs))
	}
	if len(out.Results.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(out.Results.Papers))
	}
	// Citation priority reorders by count.
	if out.Results.Papers[0].ID != "doi:10.1/a" {
		t.Errorf("Papers[0].ID = %q, want the most cited first", out.Results.Papers[0].ID)
	}
	if !strings.Contains(progress.String(), "citation data prioritized") {
		t.Errorf("progress missing priority notice: %q", progress.String())
	}
	if !strings.Contains(progress.String(), "synthesized SQL:") {
		t.Errorf("progress missing SQL echo: %q", progress.String())
	}
}

func TestRunStoreFailureDegradesToEmpty(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	resolver := &fakeResolver{}
	var progress strings.Builder

	out := Run(context.Background(), "papers about robotics", store, resolver, sqlgen.Postgres, &progress)

	if len(out.Results.Papers) != 0 {
		t.Errorf("len(Papers) = %d, want 0", len(out.Results.Papers))
	}
	if out.Results.Stats.TotalPapers != 0 {
		t.Errorf("TotalPapers = %d, want 0", out.Results.Stats.TotalPapers)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver called %d times with no rows", resolver.calls)
	}
	if !strings.Contains(progress.String(), "warning:") {
		t.Errorf("progress missing storage warning: %q", progress.String())
	}
}

func TestRunZeroMatchesSkipsResolution(t *testing.T) {
	store := &fakeStore{}
	resolver := &fakeResolver{}

	out := Run(context.Background(), "papers about robotics", store, resolver, sqlgen.Postgres, &strings.Builder{})

	if resolver.calls != 0 {
		t.Errorf("resolver called %d times for zero matches", resolver.calls)
	}
	if len(out.Results.Papers) != 0 {
		t.Errorf("len(Papers) = %d, want 0", len(out.Results.Papers))
	}
}

func TestRunSkipsBlankIdentifiers(t *testing.T) {
	store := &fakeStore{records: []types.PaperRecord{
		{ID: "doi:10.1/a", Title: "A"},
		{ID: "", Title: "No id"},
	}}
	resolver := &fakeResolver{}

	out := Run(context.Background(), "papers about robotics", store, resolver, sqlgen.Postgres, &strings.Builder{})

	if len(resolver.gotIDs) != 1 || resolver.gotIDs[0] != "doi:10.1/a" {
		t.Errorf("resolver ids = %v, want only the non-blank id", resolver.gotIDs)
	}
	// The blank-id row still appears in the results, annotated as unresolved.
	if len(out.Results.Papers) != 2 {
		t.Fatalf("len(Papers) = %d, want 2", len(out.Results.Papers))
	}
	if out.Results.Papers[1].Citation.Source != types.SourceNone {
		t.Errorf("blank-id paper Source = %q, want %q", out.Results.Papers[1].Citation.Source, types.SourceNone)
	}
}

func TestRunSQLiteDialect(t *testing.T) {
	store := &fakeStore{}
	Run(context.Background(), "papers about robotics", store, &fakeResolver{}, sqlgen.SQLite, &strings.Builder{})

	if strings.Contains(store.gotSQL, "ILIKE") {
		t.Errorf("sqlite run produced ILIKE: %s", store.gotSQL)
	}
}
