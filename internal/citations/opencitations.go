// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/pdiddy/research-finder/internal/httputil"
	"github.com/pdiddy/research-finder/pkg/types"
)

// OpenCitations JSON structures. The count endpoint returns a one-element
// list whose count field may be a JSON string or number.
type ocCountEntry struct {
	Count json.Number `json:"count"`
}

type ocCitationEntry struct {
	Citing   string `json:"citing"`
	Creation string `json:"creation"`
}

// queryOpenCitations asks the public citation index for a standard DOI. It
// fetches the count first and, when positive, the citing-paper list, which
// is truncated to bound memory use. A failure on the list call is non-fatal:
// only the count is load-bearing for ranking.
func (r *Resolver) queryOpenCitations(ctx context.Context, doi string) (types.CitationResult, error) {
	headers := r.headers()
	if r.cfg.AccessToken != "" {
		headers["Authorization"] = r.cfg.AccessToken
	}

	var counts []ocCountEntry
	countURL := r.cfg.OpenCitationsBaseURL + "/citation-count/" + doi
	if err := httputil.GetJSON(ctx, r.client, countURL, headers, r.cfg.OpenCitationsTimeout, &counts); err != nil {
		return zeroResult(), err
	}

	res := types.CitationResult{Source: types.SourceSecondary}
	if len(counts) > 0 {
		if n, err := strconv.Atoi(counts[0].Count.String()); err == nil && n > 0 {
			res.Count = n
		}
	}
	if res.Count == 0 {
		return res, nil
	}

	var entries []ocCitationEntry
	listURL := r.cfg.OpenCitationsBaseURL + "/citations/" + doi
	if err := httputil.GetJSON(ctx, r.client, listURL, headers, r.cfg.OpenCitationsTimeout, &entries); err != nil {
		return res, nil
	}
	for i, e := range entries {
		if i == maxCitationList {
			break
		}
		res.Citations = append(res.Citations, types.CitingPaper{Title: e.Citing, Date: e.Creation})
	}
	return res, nil
}
