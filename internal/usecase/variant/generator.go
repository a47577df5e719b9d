// Package variant turns one noisy CRS query into a prioritized set of
// normalized rewrites: case forms, keyboard-layout corrections,
// transliterations, system-specific normalizations and generic
// romanization fallbacks.
package variant

import (
	"sort"
	"strings"

	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
)

// Cache stores generated variant lists keyed by the original query.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(query string) ([]domvar.Variant, bool)
	Put(query string, variants []domvar.Variant)
}

// Generator produces prioritized query variants. Generation is a pure
// function of the input text; the optional cache only short-circuits
// recomputation.
type Generator struct {
	cache Cache
}

// Option configures a Generator.
type Option func(*Generator)

// WithCache installs a bounded variant cache.
func WithCache(c Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// NewGenerator creates a variant generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate expands query into at most domvar.MaxVariants rewrites,
// ordered by (priority, text). Empty or whitespace input yields nil.
func (g *Generator) Generate(query string) []domvar.Variant {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if g.cache != nil {
		if cached, ok := g.cache.Get(query); ok {
			return cloneVariants(cached)
		}
	}

	// text -> minimum priority observed.
	priorities := make(map[string]int)
	add := func(text string, priority int) {
		if strings.TrimSpace(text) == "" {
			return
		}
		if cur, ok := priorities[text]; !ok || priority < cur {
			priorities[text] = priority
		}
	}

	// Tier 0: the input and its case variations.
	for _, v := range caseVariations(query) {
		add(v, domvar.PriorityOriginal)
	}

	// Tier 1: keyboard-layout corrections of tier 0.
	for _, base := range upToPriority(priorities, domvar.PriorityOriginal) {
		for _, swapped := range swapLayout(base) {
			for _, cv := range caseVariations(swapped) {
				add(cv, domvar.PriorityLayout)
			}
		}
	}

	// Tier 2: direct transliteration plus system-specific rewrites of
	// tiers 0-1. The system family is detected per variant, so a
	// layout-corrected "мск95" gets the MSK treatment even when the
	// raw input did not look like MSK. Handlers run on case-normalized
	// bases: retrieval is case-insensitive, and dispatching every case
	// form would only flood the variant cap with case noise.
	tier2Bases := upToPriority(priorities, domvar.PriorityLayout)
	for _, base := range tier2Bases {
		for _, tr := range directTransliterations(base) {
			for _, cv := range caseVariations(tr) {
				add(cv, domvar.PriorityTranslit)
			}
		}
	}
	for _, base := range lowered(tier2Bases) {
		for _, sp := range g.systemVariants(base) {
			add(sp, domvar.PriorityTranslit)
		}
	}

	// Tier 3: layout corrections of tier 2, catching compound errors
	// (wrong layout and abbreviated).
	for _, base := range atPriority(priorities, domvar.PriorityTranslit) {
		for _, swapped := range swapLayout(base) {
			for _, cv := range caseVariations(swapped) {
				add(cv, domvar.PriorityLayoutTranslit)
			}
		}
	}

	// Tier 4: generic romanization, separators and abbreviation
	// families over tiers 0-1 only; tier 2-3 output is already
	// transliterated.
	for _, base := range upToPriority(priorities, domvar.PriorityLayout) {
		if rom := romanize(base); rom != base {
			for _, cv := range caseVariations(rom) {
				add(cv, domvar.PriorityGeneric)
			}
		}
		for _, sep := range separatorVariants(base) {
			if sep == base {
				continue
			}
			for _, cv := range caseVariations(sep) {
				add(cv, domvar.PriorityGeneric)
			}
		}
		for _, ab := range applyAbbreviations(base, coordinateAbbreviations) {
			for _, cv := range caseVariations(ab) {
				add(cv, domvar.PriorityGeneric)
			}
		}
	}

	out := make([]domvar.Variant, 0, len(priorities))
	for text, priority := range priorities {
		out = append(out, domvar.Variant{Text: text, Priority: priority})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Text < out[j].Text
	})
	if len(out) > domvar.MaxVariants {
		out = out[:domvar.MaxVariants]
	}

	if g.cache != nil {
		g.cache.Put(query, cloneVariants(out))
	}
	return out
}

// upToPriority returns every variant at or below the given tier, sorted
// for deterministic processing order.
func upToPriority(priorities map[string]int, max int) []string {
	out := make([]string, 0, len(priorities))
	for text, p := range priorities {
		if p <= max {
			out = append(out, text)
		}
	}
	sort.Strings(out)
	return out
}

// atPriority returns every variant at exactly the given tier, sorted.
func atPriority(priorities map[string]int, priority int) []string {
	var out []string
	for text, p := range priorities {
		if p == priority {
			out = append(out, text)
		}
	}
	sort.Strings(out)
	return out
}

// lowered case-folds a sorted base list, dropping duplicates.
func lowered(bases []string) []string {
	seen := make(map[string]struct{}, len(bases))
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		lb := strings.ToLower(b)
		if _, ok := seen[lb]; ok {
			continue
		}
		seen[lb] = struct{}{}
		out = append(out, lb)
	}
	sort.Strings(out)
	return out
}

func cloneVariants(in []domvar.Variant) []domvar.Variant {
	out := make([]domvar.Variant, len(in))
	copy(out, in)
	return out
}
