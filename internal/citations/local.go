// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"fmt"

	"github.com/pdiddy/research-finder/internal/httputil"
	"github.com/pdiddy/research-finder/pkg/types"
)

// localResponse is the primary provider's citation payload.
type localResponse struct {
	Status    string          `json:"status"`
	Count     int             `json:"count"`
	Citations []localCitation `json:"citations"`
}

type localCitation struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// queryLocal asks the locally hosted citation service for one identifier.
// The id keeps its "omid:" or DOI form; the local routes accept both.
func (r *Resolver) queryLocal(ctx context.Context, id string) (types.CitationResult, error) {
	endpoint := r.cfg.LocalBaseURL + "/api/paper/citations/" + id

	var body localResponse
	err := httputil.GetJSON(ctx, r.client, endpoint, r.headers(), r.cfg.LocalTimeout, &body)
	if err != nil {
		return zeroResult(), err
	}
	if body.Status != "ok" {
		return zeroResult(), fmt.Errorf("local citation service status %q", body.Status)
	}

	res := types.CitationResult{Count: body.Count, Source: types.SourcePrimary}
	for i, c := range body.Citations {
		if i == maxCitationList {
			break
		}
		res.Citations = append(res.Citations, types.CitingPaper{Title: c.Title, Date: c.Date})
	}
	return res, nil
}

func (r *Resolver) headers() map[string]string {
	h := map[string]string{}
	if r.cfg.UserAgent != "" {
		h["User-Agent"] = r.cfg.UserAgent
	}
	return h
}
