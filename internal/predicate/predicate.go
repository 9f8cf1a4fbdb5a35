// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package predicate turns a free-text research question into a structured
// predicate set. Extraction is deterministic, rule-based, and total: no
// sub-extraction can fail, each simply degrades to its default when the
// query carries no matching signal.
package predicate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/research-finder/pkg/types"
)

const (
	defaultResultCount = 5
	minResultCount     = 1
	maxResultCount     = 100

	// Extracted years outside this range are treated as not found.
	minYear = 1900
	maxYear = 2030

	// Quoted titles this short are treated as absent.
	minTitleLen = 6
)

// Extract derives a predicate set from one query string. It always returns a
// value; a query with no recognizable signals yields the unconstrained
// default set.
func Extract(query string) types.QueryPredicates {
	return extractAt(query, time.Now())
}

// extractAt is Extract with an explicit clock, so relative temporal phrases
// ("last 5 years") resolve deterministically in tests.
func extractAt(query string, now time.Time) types.QueryPredicates {
	q := strings.ToLower(strings.TrimSpace(query))

	p := types.QueryPredicates{
		Topic:            extractTopic(q),
		Year:             extractYear(q, now),
		CitationPriority: detectCitationPriority(q),
		ResultCount:      extractResultCount(q),
		WantSummary:      detectSummaryRequest(q),
	}

	// Specific-paper lookup is only meaningful for citation queries.
	if p.CitationPriority {
		p.SpecificPaperTitle = extractSpecificTitle(q)
	}

	return p
}

// Topic extraction rules, ordered most to least specific. The first rule
// that yields a non-trivial match wins; overlapping patterns would otherwise
// produce nondeterministic topics.
var topicPatterns = []*regexp.Regexp{
	// Known research areas, including common misspellings.
	regexp.MustCompile(`\b(machine learning|machien learning|machin learning|artificial intelligence|artifical intelligence|artficial intelligence|neural networks?|neaural networks?|deep learning|computer vision|natural language processing|nlp|quantum computing|quantam computing|robotics|cybersecurity|blockchain)\b`),

	// Citation-focused phrasings.
	regexp.MustCompile(`most cited\s+([\w\s]+?)\s+papers`),
	regexp.MustCompile(`top cited\s+([\w\s]+?)\s+papers`),
	regexp.MustCompile(`highly cited\s+([\w\s]+?)\s+papers`),
	regexp.MustCompile(`influential\s+([\w\s]+?)\s+(?:papers|studies|research)`),

	// Temporal publication phrasings.
	regexp.MustCompile(`([\w\s\-'"]+?)\s+papers\s+published\s+(?:after|since|from)`),
	regexp.MustCompile(`([\w\s\-'"]+?)\s+research\s+(?:after|since|from)`),

	// Prepositional phrasings.
	regexp.MustCompile(`papers\s+(?:on|about)\s+([\w\s\-'"]+?)(?:\s+published|\s+in|\s+from|\s+and|\s+with|\s+since|$)`),
	regexp.MustCompile(`research\s+(?:on|about|in)\s+([\w\s\-'"]+?)(?:\s+published|\s+in|\s+from|\s+since|$)`),
	regexp.MustCompile(`(?:find|get|show)\s+(?:papers|research)\s+(?:on|about)\s+([\w\s\-'"]+?)(?:\s+published|\s+since|$)`),

	// Broad fallback phrasings.
	regexp.MustCompile(`about\s+([\w\s\-'"]+?)(?:\s+published|\s+in|\s+from|\s+and|\s+with|\s+since|$)`),
	regexp.MustCompile(`\bon\s+([\w\s\-'"]+?)(?:\s+published|\s+in|\s+from|\s+and|\s+with|\s+since|$)`),
}

// topicKeyword maps misspellings and synonyms of a research area to its
// canonical topic string. Evaluated in order after the pattern rules.
type topicKeyword struct {
	canonical string
	keywords  []string
}

var topicKeywords = []topicKeyword{
	{"machine learning", []string{"machine learning", "machien learning", "machin learning", "masheen learning", "ml", "machine-learning"}},
	{"artificial intelligence", []string{"artificial intelligence", "artifical intelligence", "artficial intelligence", "artificial intellgence", "ai", "artificial-intelligence"}},
	{"neural networks", []string{"neural network", "neural networks", "neaural network", "neaural networks", "neural-network"}},
	{"deep learning", []string{"deep learning", "deep-learning", "deep learnign", "dep learning"}},
	{"computer vision", []string{"computer vision", "computer-vision", "computor vision"}},
	{"natural language processing", []string{"natural language processing", "nlp", "natrual language processing"}},
	{"quantum computing", []string{"quantum computing", "quantum-computing", "quantam computing", "quantum computng", "quantum"}},
	{"robotics", []string{"robotics", "robotic", "robot"}},
	{"cybersecurity", []string{"cybersecurity", "cyber security", "cyber-security"}},
	{"blockchain", []string{"blockchain", "block chain", "blokchain"}},
	{"algorithms", []string{"algorithm", "algorithms", "algorithim", "algoritm"}},
	{"optimization", []string{"optimization", "optimize", "optimisation", "optimzation"}},
}

// extractTopic applies the ordered pattern rules, then the keyword
// dictionary. Returns empty when no rule matches.
func extractTopic(q string) string {
	for _, re := range topicPatterns {
		m := re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		// Take the longest non-trivial capture group.
		var best string
		for _, g := range m[1:] {
			g = strings.TrimSpace(g)
			if len(g) > 2 && !isNumeric(g) && len(g) > len(best) {
				best = g
			}
		}
		if best != "" {
			return best
		}
	}

	for _, tk := range topicKeywords {
		for _, kw := range tk.keywords {
			if containsKeyword(q, kw) {
				return tk.canonical
			}
		}
	}

	return ""
}

// containsKeyword matches multi-word keywords by substring and single words
// at word boundaries, so "ml" does not fire inside "html".
func containsKeyword(q, kw string) bool {
	if strings.ContainsAny(kw, " -") {
		return strings.Contains(q, kw)
	}
	for _, field := range strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if field == kw {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Year extraction. Relative phrases resolve against the clock before
// absolute 4-digit patterns are tried.
var (
	lastNYearsRe = regexp.MustCompile(`(?:last|past)\s+(\d+)\s+years`)

	yearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:after|since|from)\s+(\d{4})`),
		regexp.MustCompile(`published\s+in\s+(\d{4})`),
		regexp.MustCompile(`(?:in|from)\s+(\d{4})\s+to\s+\d{4}`),
		regexp.MustCompile(`\b(\d{4})\b`),
		regexp.MustCompile(`(\d{4})s`),
	}
)

func extractYear(q string, now time.Time) int {
	if m := lastNYearsRe.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && n <= now.Year()-minYear {
			return now.Year() - n
		}
	}
	if strings.Contains(q, "recent years") {
		return now.Year() - 5
	}
	if strings.Contains(q, "last year") || strings.Contains(q, "past year") {
		return now.Year() - 1
	}

	for _, re := range yearPatterns {
		m := re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year >= minYear && year <= maxYear {
			return year
		}
	}
	return 0
}

// citationPatterns is the fixed citation-intent vocabulary.
var citationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bmost cited\b`),
	regexp.MustCompile(`\btop cited\b`),
	regexp.MustCompile(`\bhighly cited\b`),
	regexp.MustCompile(`\bhighest cited\b`),
	regexp.MustCompile(`\bcitations?\b`),
	regexp.MustCompile(`\bcited papers\b`),
	regexp.MustCompile(`\binfluential\b`),
	regexp.MustCompile(`\bimpact\b`),
	regexp.MustCompile(`\bh-?index\b`),
	regexp.MustCompile(`\bcitation count\b`),
	regexp.MustCompile(`\bwith more than\b`),
	regexp.MustCompile(`\bat least\b`),
}

func detectCitationPriority(q string) bool {
	for _, re := range citationPatterns {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}

// specificTitlePatterns extract a quoted title from citation-lookup
// phrasings like "citations for 'Attention Is All You Need'".
var specificTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`how many citations (?:does|for) (?:the )?(?:paper|article)?\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`citation count (?:of|for) (?:the )?(?:paper|article)?\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`citations (?:of|for) (?:the )?(?:paper|article)?\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?:paper|article) titled?\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`['"]([^'"]+)['"]\s*(?:paper|article)?\s*(?:citations?|citation count)`),
}

func extractSpecificTitle(q string) string {
	for _, re := range specificTitlePatterns {
		if m := re.FindStringSubmatch(q); m != nil {
			title := strings.TrimSpace(m[1])
			if len(title) >= minTitleLen {
				return title
			}
		}
	}
	return ""
}

// countPatterns extract an explicit result-count request.
var countPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:find|get|retrieve|show|give me)\s+(\d+)\s+(?:papers?|articles?|results?)`),
	regexp.MustCompile(`top\s+(\d+)\s+(?:papers?|articles?|results?)`),
	regexp.MustCompile(`(?:the\s+)?top\s+(\d+)\s+most\s+cited`),
	regexp.MustCompile(`first\s+(\d+)\s+(?:papers?|articles?|results?)`),
	regexp.MustCompile(`(\d+)\s+(?:papers?|articles?|results?)\s+(?:about|on|for)`),
	regexp.MustCompile(`(\d+)\s+(?:most\s+)?(?:relevant|recent|cited)\s+(?:papers?|articles?)`),
	regexp.MustCompile(`(?:find|get|show)\s+(\d+)\s+most\s+cited`),
}

func extractResultCount(q string) int {
	for _, re := range countPatterns {
		m := re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n < minResultCount {
			return minResultCount
		}
		if n > maxResultCount {
			return maxResultCount
		}
		return n
	}
	return defaultResultCount
}

// summaryPatterns is the fixed analysis/summary-intent vocabulary.
var summaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsummariz\w*\b`),
	regexp.MustCompile(`\bsummary\b`),
	regexp.MustCompile(`\banalyz\w*\b`),
	regexp.MustCompile(`\banalysis\b`),
	regexp.MustCompile(`\bexplain\b`),
	regexp.MustCompile(`\bcompare\b`),
	regexp.MustCompile(`\bcontrast\b`),
	regexp.MustCompile(`\breview\b`),
	regexp.MustCompile(`\binsights?\b`),
	regexp.MustCompile(`\btrends?\b`),
	regexp.MustCompile(`\bkey findings\b`),
	regexp.MustCompile(`\bmain (?:findings|points|ideas)\b`),
	regexp.MustCompile(`\bhighlight\b`),
	regexp.MustCompile(`\boverview\b`),
}

func detectSummaryRequest(q string) bool {
	for _, re := range summaryPatterns {
		if re.MatchString(q) {
			return true
		}
	}
	return false
}
