// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package predicate

import (
	"testing"
	"time"

	"github.com/pdiddy/research-finder/pkg/types"
)

// fixedNow anchors relative temporal phrases for deterministic assertions.
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// --- Topic extraction ---

func TestExtractTopic(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"known area", "find papers about machine learning", "machine learning"},
		{"known area misspelled", "machien learning papers from 2020", "machien learning"},
		{"most cited phrasing", "most cited quantum computing papers", "quantum computing"},
		{"influential phrasing", "influential robotics studies", "robotics"},
		{"published-after phrasing", "reinforcement learning papers published after 2019", "reinforcement learning"},
		{"papers-about phrasing", "papers about graph databases published in 2021", "graph databases"},
		{"research-on phrasing", "research on protein folding since 2018", "protein folding"},
		{"keyword dictionary ml", "show me some ml results", "machine learning"},
		{"nlp matched as known area", "anything interesting in nlp lately", "nlp"},
		{"ml not matched inside html", "rendering html tables quickly", ""},
		{"no topic signal", "what do you have for me", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.Topic != tt.want {
				t.Errorf("Topic = %q, want %q", got.Topic, tt.want)
			}
		})
	}
}

// --- Year extraction ---

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"after year", "papers about nlp after 2019", 2019},
		{"since year", "robotics research since 2015", 2015},
		{"published in year", "papers published in 2021", 2021},
		{"bare year", "2020 machine learning papers", 2020},
		{"last N years", "deep learning papers from the last 5 years", 2021},
		{"past N years", "papers from the past 3 years", 2023},
		{"recent years", "recent years of quantum computing work", 2021},
		{"last year", "papers from last year", 2025},
		{"year below range ignored", "papers since 1776", 0},
		{"year above range ignored", "papers from 2150", 0},
		{"no year", "papers about blockchain", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.Year != tt.want {
				t.Errorf("Year = %d, want %d", got.Year, tt.want)
			}
		})
	}
}

// --- Citation priority and specific-paper lookup ---

func TestDetectCitationPriority(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"most cited", "most cited papers on ai", true},
		{"highly cited", "highly cited vision papers", true},
		{"citation count", "citation count for transformer papers", true},
		{"influential", "influential nlp research", true},
		{"impact", "papers with the biggest impact", true},
		{"plain topical query", "papers about machine learning", false},
		{"excited is not cited", "excited states in quantum chemistry", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.CitationPriority != tt.want {
				t.Errorf("CitationPriority = %v, want %v", got.CitationPriority, tt.want)
			}
		})
	}
}

func TestExtractSpecificTitle(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"citations for quoted title",
			"citations for 'Attention Is All You Need'",
			"attention is all you need",
		},
		{
			"how many citations",
			`how many citations does the paper "Deep Residual Learning" have`,
			"deep residual learning",
		},
		{
			"citation count of",
			"citation count of 'BERT: Pre-training of Deep Bidirectional Transformers'",
			"bert: pre-training of deep bidirectional transformers",
		},
		{
			"too-short title dropped",
			"citations for 'BERT'",
			"",
		},
		{
			"quoted title without citation intent stays unset",
			"papers titled 'Attention Is All You Need'",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.SpecificPaperTitle != tt.want {
				t.Errorf("SpecificPaperTitle = %q, want %q", got.SpecificPaperTitle, tt.want)
			}
		})
	}
}

// --- Result count ---

func TestExtractResultCount(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"find N papers", "find 10 papers about robotics", 10},
		{"top N", "top 7 papers on nlp", 7},
		{"top N most cited", "the top 3 most cited ai papers", 3},
		{"clamped high", "find 500 papers about physics", 100},
		{"clamped low", "find 0 papers about physics", 1},
		{"default when absent", "papers about physics", 5},
		{"year is not a count", "papers about physics from 2020", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.ResultCount != tt.want {
				t.Errorf("ResultCount = %d, want %d", got.ResultCount, tt.want)
			}
		})
	}
}

// --- Summary intent ---

func TestDetectSummaryRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"summarize", "summarize recent nlp papers", true},
		{"trends", "trends in computer vision", true},
		{"key findings", "key findings in battery research", true},
		{"plain retrieval", "find papers about batteries", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got.WantSummary != tt.want {
				t.Errorf("WantSummary = %v, want %v", got.WantSummary, tt.want)
			}
		})
	}
}

// --- End-to-end predicate sets ---

func TestExtractScenarios(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  types.QueryPredicates
	}{
		{
			"citation priority with topic and year",
			"most cited machine learning papers from 2020",
			types.QueryPredicates{
				Topic:            "machine learning",
				Year:             2020,
				CitationPriority: true,
				ResultCount:      5,
			},
		},
		{
			"specific paper lookup",
			"citations for 'Attention Is All You Need'",
			types.QueryPredicates{
				CitationPriority:   true,
				SpecificPaperTitle: "attention is all you need",
				ResultCount:        5,
			},
		},
		{
			"no signals yields unconstrained defaults",
			"hello",
			types.QueryPredicates{ResultCount: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAt(tt.query, fixedNow)
			if got != tt.want {
				t.Errorf("extractAt(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	query := "top 10 most cited neural network papers since 2018"
	first := extractAt(query, fixedNow)
	for i := 0; i < 20; i++ {
		if got := extractAt(query, fixedNow); got != first {
			t.Fatalf("run %d: %+v != %+v", i, got, first)
		}
	}
}
