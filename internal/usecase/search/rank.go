package search

import (
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/kartgeo/crsdex/internal/domain/search/result"
)

// Weights holds the relevance formula constants. The values are
// empirically tuned against the production registry; treat them as
// behavior, not as something to re-derive.
type Weights struct {
	DB            float64 `yaml:"db"`
	Text          float64 `yaml:"text"`
	ExactBonus    float64 `yaml:"exact_bonus"`
	PrefixBonus   float64 `yaml:"prefix_bonus"`
	PriorityStep  float64 `yaml:"priority_step"`
	PriorityFloor float64 `yaml:"priority_floor"`
}

// DefaultWeights returns the production scoring constants.
func DefaultWeights() Weights {
	return Weights{
		DB:            0.3,
		Text:          0.5,
		ExactBonus:    0.25,
		PrefixBonus:   0.15,
		PriorityStep:  0.1,
		PriorityFloor: 0.5,
	}
}

// score combines the retrieval engine's own relevance with textual
// similarity of the query against the derived display fields, damped
// by how far the matching variant departed from the literal input.
// Exact and prefix matches on the raw query earn a bonus. The result
// is clamped to [0, result.MaxRelevance].
func (w Weights) score(baseRelevance float64, priority int, query, name, description string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	n := strings.ToLower(name)
	d := strings.ToLower(description)

	textual := levenshteinRatio(q, n)
	if r := levenshteinRatio(q, d); r > textual {
		textual = r
	}

	combined := (baseRelevance*w.DB + textual*w.Text) / (w.DB + w.Text)

	modifier := 1.0 - float64(priority)*w.PriorityStep
	if modifier < w.PriorityFloor {
		modifier = w.PriorityFloor
	}
	s := combined * modifier

	switch {
	case q != "" && (q == n || q == d):
		s += w.ExactBonus
	case q != "" && (strings.HasPrefix(n, q) || strings.HasPrefix(d, q)):
		s += w.PrefixBonus
	}

	if s > result.MaxRelevance {
		return result.MaxRelevance
	}
	if s < 0 {
		return 0
	}
	return s
}

// levenshteinRatio is the normalized insert/delete similarity of two
// strings: substitution priced as delete+insert, scaled into [0, 1].
func levenshteinRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	lensum := float64(len(a) + len(b))
	dist := float64(smetrics.WagnerFischer(a, b, 1, 1, 2))
	return (lensum - dist) / lensum
}

// merge inserts r into the identifier-keyed map, keeping the entry
// with the higher relevance; ties go to the lower priority level,
// the more literal match.
func merge(merged map[int]result.Result, r result.Result) {
	cur, ok := merged[r.SRID()]
	if !ok {
		merged[r.SRID()] = r
		return
	}
	if r.Relevance() > cur.Relevance() ||
		(r.Relevance() == cur.Relevance() && r.PriorityLevel() < cur.PriorityLevel()) {
		merged[r.SRID()] = r
	}
}

// sortAndTruncate flattens the merge map into a ranked slice, best
// first, with identifier as the deterministic tiebreaker.
func sortAndTruncate(merged map[int]result.Result, limit int) []result.Result {
	out := make([]result.Result, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Relevance() != out[j].Relevance() {
			return out[i].Relevance() > out[j].Relevance()
		}
		return out[i].SRID() < out[j].SRID()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
