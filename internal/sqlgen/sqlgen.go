// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sqlgen synthesizes a single bounded SELECT statement over the
// papers table from a predicate set. Synthesis is a pure function: the same
// predicates and raw query always yield byte-identical SQL, and the
// statement is never executed here.
package sqlgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/research-finder/pkg/types"
)

// Dialect selects the SQL flavor of the papers database.
type Dialect int

const (
	// Postgres emits ILIKE for case-insensitive substring matches.
	Postgres Dialect = iota

	// SQLite emits LIKE, which is case-insensitive for ASCII by default.
	SQLite
)

// DialectForDriver maps a database/sql driver name to its dialect.
// Unrecognized drivers get the Postgres dialect.
func DialectForDriver(driver string) Dialect {
	if driver == "sqlite3" {
		return SQLite
	}
	return Postgres
}

func (d Dialect) likeOp() string {
	if d == SQLite {
		return "LIKE"
	}
	return "ILIKE"
}

// SortByCitationsMarker prefixes statements whose results must be reordered
// by citation count after the fetch. Citation counts live in an external
// system, not the relational store, so the ranking happens post-hoc.
const SortByCitationsMarker = "/* SORT_BY_CITATIONS */"

const (
	columnList = "id, title, author, pub_date, venue, type"

	// futureDateCap excludes implausible future publication dates, aligned
	// with the upper bound of year validation.
	futureDateCap = "2030-12-31"

	// citationCandidateFactor widens the row budget under citation priority
	// so post-hoc ranking has enough candidates.
	citationCandidateFactor = 3

	defaultResultCount = 5
	maxResultCount     = 100
)

// Synthesize builds the SELECT statement for one predicate set. rawQuery is
// only consulted for the keyword fallback when no structured predicate could
// be derived.
func Synthesize(d Dialect, p types.QueryPredicates, rawQuery string) string {
	count := clampCount(p.ResultCount)

	if p.SpecificPaperLookup() {
		return specificPaperQuery(d, p.SpecificPaperTitle, count)
	}

	var b strings.Builder
	if p.CitationPriority {
		b.WriteString(SortByCitationsMarker)
		b.WriteString(" ")
	}
	b.WriteString("SELECT ")
	b.WriteString(columnList)
	b.WriteString(" FROM papers")

	var conds []string
	if p.Topic != "" {
		conds = append(conds, topicCondition(d, p.Topic))
	}
	if p.Year != 0 {
		conds = append(conds, fmt.Sprintf("pub_date >= '%d-01-01' AND pub_date <= '%s'", p.Year, futureDateCap))
	} else {
		conds = append(conds, fmt.Sprintf("pub_date <= '%s'", futureDateCap))
	}
	if p.Topic == "" && p.Year == 0 {
		if fallback := keywordFallback(d, rawQuery); fallback != "" {
			conds = append(conds, fallback)
		}
	}

	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(conds, " AND "))

	if p.CitationPriority {
		b.WriteString(" ORDER BY pub_date DESC")
		count = WidenedCount(count)
	}

	fmt.Fprintf(&b, " LIMIT %d", count)
	return b.String()
}

// WidenedCount returns the citation-priority row budget for a requested
// result count.
func WidenedCount(count int) int {
	widened := count * citationCandidateFactor
	if widened > maxResultCount {
		return maxResultCount
	}
	return widened
}

func clampCount(n int) int {
	switch {
	case n < 1:
		return defaultResultCount
	case n > maxResultCount:
		return maxResultCount
	default:
		return n
	}
}

// specificPaperQuery looks a single paper up by case-insensitive title
// substring, ignoring all other predicates.
func specificPaperQuery(d Dialect, title string, count int) string {
	return fmt.Sprintf(
		"SELECT %s FROM papers WHERE title %s '%%%s%%' AND pub_date <= '%s' LIMIT %d",
		columnList, d.likeOp(), escape(title), futureDateCap, count,
	)
}

// escape doubles single quotes so interpolated user text cannot terminate
// the string literal.
func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// misspellings normalizes common topic misspellings before synonym lookup.
var misspellings = map[string]string{
	"machien learning":            "machine learning",
	"machin learning":             "machine learning",
	"masheen learning":            "machine learning",
	"artifical intelligence":      "artificial intelligence",
	"artficial intelligence":      "artificial intelligence",
	"artificial intellgence":      "artificial intelligence",
	"neaural network":             "neural network",
	"neaural networks":            "neural networks",
	"deep learnign":               "deep learning",
	"dep learning":                "deep learning",
	"quantam computing":           "quantum computing",
	"quantum computng":            "quantum computing",
	"computor vision":             "computer vision",
	"natrual language processing": "natural language processing",
}

// synonymGroup expands a research domain into the title terms that papers in
// that domain actually carry, so a literal substring match does not lose
// recall. Groups are an ordered slice: map iteration would make synthesis
// nondeterministic.
type synonymGroup struct {
	triggers []string
	terms    []string
}

var synonymGroups = []synonymGroup{
	{
		triggers: []string{"neural network", "neural networks"},
		terms:    []string{"neural network", "neural networks", "deep learning", "CNN", "RNN", "LSTM"},
	},
	{
		triggers: []string{"machine learning"},
		terms:    []string{"machine learning", "data mining", "supervised learning", "classification"},
	},
	{
		triggers: []string{"quantum computing", "quantum computer"},
		terms:    []string{"quantum", "qubit", "quantum computer", "quantum algorithm"},
	},
	{
		triggers: []string{"natural language processing", "nlp"},
		terms:    []string{"natural language", "nlp", "language model", "text mining", "sentiment analysis"},
	},
	{
		triggers: []string{"artificial intelligence"},
		terms:    []string{"artificial intelligence", "machine intelligence"},
	},
	{
		triggers: []string{"computer vision", "image recognition"},
		terms:    []string{"computer vision", "image recognition", "object detection", "image classification"},
	},
}

// topicCondition builds the WHERE condition for a topic, expanding known
// domains through the synonym table and falling back to a single substring
// match otherwise.
func topicCondition(d Dialect, topic string) string {
	normalized := strings.ToLower(topic)
	if corrected, ok := misspellings[normalized]; ok {
		normalized = corrected
	}

	for _, g := range synonymGroups {
		for _, trigger := range g.triggers {
			if strings.Contains(normalized, trigger) {
				return termDisjunction(d, g.terms)
			}
		}
	}

	return fmt.Sprintf("title %s '%%%s%%'", d.likeOp(), escape(topic))
}

func termDisjunction(d Dialect, terms []string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("title %s '%%%s%%'", d.likeOp(), escape(t))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

var wordRe = regexp.MustCompile(`\b\w+\b`)

// fallbackStopwords are query words that carry no topical signal.
var fallbackStopwords = map[string]bool{
	"find": true, "about": true, "papers": true, "paper": true, "and": true,
	"the": true, "their": true, "explain": true, "published": true,
	"most": true, "cited": true, "with": true, "more": true, "than": true,
	"least": true, "top": true, "since": true, "from": true, "show": true,
	"give": true, "articles": true, "research": true, "results": true,
}

// keywordFallback OR-joins substring conditions over the 1-3 longest
// non-stopword tokens of the raw query. Returns empty when the query has no
// usable tokens.
func keywordFallback(d Dialect, rawQuery string) string {
	var words []string
	for _, w := range wordRe.FindAllString(strings.ToLower(rawQuery), -1) {
		if len(w) > 3 && !fallbackStopwords[w] {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return ""
	}

	// Longest first; stable so equal-length tokens keep query order.
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	if len(words) > 3 {
		words = words[:3]
	}

	return termDisjunction(d, words)
}
