// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import "strings"

// parsedIdentifier holds the provider-specific forms derived from one raw
// paper identifier.
type parsedIdentifier struct {
	// doi is the standard DOI form used by the public index.
	doi string

	// local is the identifier used by the local citation service: an
	// "omid:"-prefixed OpenCitations Meta id when present, else the DOI.
	local string
}

func (p parsedIdentifier) empty() bool {
	return p.doi == "" && p.local == ""
}

// parseIdentifier extracts provider identifiers from a raw papers-table id.
// Raw ids come in several shapes:
//
//	"doi:10.1234/abcd meta:br/0614082260"
//	"10.1234/abcd"
//	"orcid:0000-0003-1414-3507 meta:ra/0614082260"
//	"isbn:9789400767386 doi:10.1007/978-94-007-6738-6"
//
// Preference order: an explicit "doi:" value, then a "meta:br/" value
// rewritten with the "omid:" marker, then a bare raw DOI. When nothing can
// be derived the result is empty and the resolver short-circuits without a
// network call.
func parseIdentifier(raw string) parsedIdentifier {
	lower := strings.ToLower(strings.TrimSpace(raw))
	var p parsedIdentifier

	if i := strings.Index(lower, "meta:br/"); i >= 0 {
		rest := lower[i+len("meta:"):]
		if fields := strings.Fields(rest); len(fields) > 0 {
			p.local = "omid:" + fields[0]
		}
	}

	if i := strings.Index(lower, "doi:"); i >= 0 {
		rest := lower[i+len("doi:"):]
		if fields := strings.Fields(rest); len(fields) > 0 && strings.HasPrefix(fields[0], "10.") {
			p.doi = fields[0]
			if p.local == "" {
				p.local = p.doi
			}
		}
	} else if strings.HasPrefix(lower, "10.") && strings.Contains(lower, "/") {
		p.doi = lower
		if p.local == "" {
			p.local = lower
		}
	}

	return p
}
