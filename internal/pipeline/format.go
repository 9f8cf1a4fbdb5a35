// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FormatTable writes the result set as a human-readable table followed by
// summary statistics.
func FormatTable(out Output, w io.Writer) {
	papers := out.Results.Papers
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found matching your query.")
		return
	}

	if out.Predicates.SpecificPaperLookup() {
		formatSpecificLookup(out, w)
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-24s  %-6s  %s\n",
		"Rank", "Title", "Author", "Year", "Venue", "Cites", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 122))

	for i, p := range papers {
		cites := ""
		if p.Citation.Resolved() {
			cites = fmt.Sprintf("%d", p.Citation.Count)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %-24s  %-6s  %s\n",
			i+1, truncate(p.Title, 50), truncate(p.Author, 20), p.Year(),
			truncate(p.Venue, 24), cites, p.Citation.Source)
	}

	formatStats(out, w)
}

// formatSpecificLookup shows the focused citation view for a quoted-title
// query: the matching papers, their counts, and a few sample citing papers.
func formatSpecificLookup(out Output, w io.Writer) {
	title := out.Predicates.SpecificPaperTitle
	fmt.Fprintf(w, "Citation count for %q:\n", title)
	for _, p := range out.Results.Papers {
		if !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		fmt.Fprintf(w, "  %s: %d citations (source: %s)\n", p.Title, p.Citation.Count, p.Citation.Source)
		for i, c := range p.Citation.Citations {
			if i == 3 {
				break
			}
			fmt.Fprintf(w, "    cited by %s (%s)\n", c.Title, c.Date)
		}
	}
	fmt.Fprintln(w)
}

func formatStats(out Output, w io.Writer) {
	stats := out.Results.Stats
	fmt.Fprintf(w, "\n%d papers", stats.TotalPapers)
	if stats.TotalCitations > 0 {
		fmt.Fprintf(w, ", %d citations (%.2f per resolved paper)", stats.TotalCitations, stats.AvgCitations)
	}
	fmt.Fprintln(w)

	if years := topEntries(stats.YearHistogram, 5); len(years) > 0 {
		fmt.Fprintf(w, "years:  %s\n", strings.Join(years, ", "))
	}
	if venues := topEntries(stats.VenueHistogram, 3); len(venues) > 0 {
		fmt.Fprintf(w, "venues: %s\n", strings.Join(venues, ", "))
	}
}

// topEntries returns the n highest-count histogram entries as "key (count)"
// strings, ordered by count descending then key for determinism.
func topEntries(hist map[string]int, n int) []string {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(hist))
	for k, c := range hist {
		entries = append(entries, entry{k, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = fmt.Sprintf("%s (%d)", e.key, e.count)
	}
	return out
}

// FormatJSON writes the full output as indented JSON.
func FormatJSON(out Output, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
