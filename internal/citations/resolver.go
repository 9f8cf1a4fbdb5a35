// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations resolves per-paper citation counts through an ordered
// chain of providers: a locally hosted citation service first, the public
// OpenCitations index second, and a terminal zero result when neither
// answers. Provider failures are recovered locally and never surfaced to
// the caller.
package citations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/research-finder/pkg/types"
)

// Defaults applied by NewResolver when the config leaves a field zero.
const (
	DefaultLocalBaseURL         = "http://localhost:5000"
	DefaultOpenCitationsBaseURL = "https://api.opencitations.net/index/v1"

	defaultLocalTimeout         = 5 * time.Second
	defaultOpenCitationsTimeout = 10 * time.Second
	defaultWorkers              = 8

	// maxCitationList bounds the citing-paper list attached to a result.
	maxCitationList = 50
)

// Resolver resolves citation counts for paper identifiers. All provider
// parameters are explicit configuration so tests run without ambient state
// or network access.
type Resolver struct {
	cfg    types.CitationConfig
	client *http.Client
	w      io.Writer
}

// NewResolver builds a Resolver. A nil client gets a plain http.Client; a
// nil writer discards progress output.
func NewResolver(cfg types.CitationConfig, client *http.Client, w io.Writer) *Resolver {
	if cfg.LocalBaseURL == "" {
		cfg.LocalBaseURL = DefaultLocalBaseURL
	}
	if cfg.OpenCitationsBaseURL == "" {
		cfg.OpenCitationsBaseURL = DefaultOpenCitationsBaseURL
	}
	if cfg.LocalTimeout <= 0 {
		cfg.LocalTimeout = defaultLocalTimeout
	}
	if cfg.OpenCitationsTimeout <= 0 {
		cfg.OpenCitationsTimeout = defaultOpenCitationsTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if client == nil {
		client = &http.Client{}
	}
	if w == nil {
		w = io.Discard
	}
	return &Resolver{cfg: cfg, client: client, w: w}
}

func zeroResult() types.CitationResult {
	return types.CitationResult{Source: types.SourceNone}
}

// ResolveOne resolves the citation data for one paper identifier. It never
// fails: when no identifier can be derived it returns the zero result
// without any network call, and provider errors advance the fallback chain.
func (r *Resolver) ResolveOne(ctx context.Context, paperID string) types.CitationResult {
	id := parseIdentifier(paperID)
	if id.empty() {
		return zeroResult()
	}

	res, err := r.queryLocal(ctx, id.local)
	if err == nil {
		// A zero from the primary tier may just mean the local index has
		// not ingested this paper; a standard DOI lets the public index
		// have a say.
		if res.Count == 0 && id.doi != "" {
			if sec, secErr := r.queryOpenCitations(ctx, id.doi); secErr == nil && sec.Count > 0 {
				return sec
			}
		}
		return res
	}
	fmt.Fprintf(r.w, "warning: primary citation service for %s: %v\n", id.local, err)

	if id.doi != "" {
		sec, secErr := r.queryOpenCitations(ctx, id.doi)
		if secErr == nil {
			return sec
		}
		fmt.Fprintf(r.w, "warning: citation index for %s: %v\n", id.doi, secErr)
	}

	return zeroResult()
}

// ResolveMany resolves citation data for a batch of identifiers with
// bounded parallelism. Every input identifier gets an entry in the returned
// map; identifiers whose resolution was cut short by ctx come back as the
// zero result rather than blocking.
func (r *Resolver) ResolveMany(ctx context.Context, paperIDs []string) map[string]types.CitationResult {
	results := make(map[string]types.CitationResult, len(paperIDs))

	// Deduplicate while preserving order.
	var unique []string
	for _, id := range paperIDs {
		if _, ok := results[id]; ok {
			continue
		}
		results[id] = zeroResult()
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return results
	}

	workers := r.cfg.Workers
	if workers > len(unique) {
		workers = len(unique)
	}

	type outcome struct {
		id  string
		res types.CitationResult
	}

	jobs := make(chan string)
	out := make(chan outcome, len(unique))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				select {
				case <-ctx.Done():
					out <- outcome{id: id, res: zeroResult()}
				default:
					out <- outcome{id: id, res: r.ResolveOne(ctx, id)}
				}
			}
		}()
	}

	go func() {
		for _, id := range unique {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	// The join is single-threaded; each worker owned its own identifier.
	for oc := range out {
		results[oc.id] = oc.res
	}
	return results
}

// SortByCitations returns the papers in stable descending citation-count
// order. Papers with no resolved count sort as zero. The input is not
// modified.
func SortByCitations(papers []types.AnnotatedPaper) []types.AnnotatedPaper {
	sorted := make([]types.AnnotatedPaper, len(papers))
	copy(sorted, papers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Citation.Count > sorted[j].Citation.Count
	})
	return sorted
}
