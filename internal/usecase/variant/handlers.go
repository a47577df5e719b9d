package variant

import (
	"regexp"
	"strings"

	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
)

// Simultaneous digit/letter substitution budgets per system family.
const (
	mskReplacements     = 2
	skReplacements      = 2
	gskReplacements     = 1
	uskReplacements     = 1
	genericReplacements = 1
)

// handler rewrites one variant according to its system family. Returned
// strings are final: handlers expand case forms themselves where that
// matters, and keep noisy substitution output in its original case so
// it cannot crowd out canonical rewrites under the variant cap.
type handler func(g *Generator, text string) []string

// handlers is the dispatch table keyed by detected system.
var handlers = map[domvar.System]handler{
	domvar.SystemMSK:     (*Generator).mskVariants,
	domvar.SystemGSK:     (*Generator).gskVariants,
	domvar.SystemSK:      (*Generator).skVariants,
	domvar.SystemUSK:     (*Generator).uskUslVariants,
	domvar.SystemUSL:     (*Generator).uskUslVariants,
	domvar.SystemUTM:     (*Generator).utmSystemVariants,
	domvar.SystemUnknown: (*Generator).genericVariants,
}

// Mistyped or wrong-layout prefixes mapped to canonical family spellings.
var prefixAliases = []struct {
	re    *regexp.Regexp
	canon []string
}{
	{regexp.MustCompile(`(?i)^(mck|vcr|ьыл|мыл)`), []string{"мск", "МСК", "msk", "MSK"}},
	{regexp.MustCompile(`(?i)^(гыл)`), []string{"гск", "ГСК", "gsk", "GSK"}},
	{regexp.MustCompile(`(?i)^(ыл)`), []string{"ск", "СК", "sk", "SK"}},
}

var allDigitsRe = regexp.MustCompile(`^\d+$`)

// canonicalPrefixVariants rewrites a recognized alias prefix into each
// canonical spelling of its family. A bare numeric suffix additionally
// gets explicit zone markers inserted ("ьыл95" → "мскз95", "мск95", ...).
func canonicalPrefixVariants(text string) []string {
	var out []string
	for _, alias := range prefixAliases {
		loc := alias.re.FindStringIndex(text)
		if loc == nil || loc[0] != 0 {
			continue
		}
		rest := text[loc[1]:]
		for _, canon := range alias.canon {
			out = append(out, canon+rest)
			if rest != "" && allDigitsRe.MatchString(rest) {
				for _, marker := range []string{"з", "З", "z", "Z"} {
					out = append(out, canon+marker+rest)
				}
			}
		}
		break
	}
	return out
}

// caseExpand applies case variations to every input string.
func caseExpand(in []string) []string {
	out := make([]string, 0, len(in)*3)
	for _, s := range in {
		out = append(out, caseVariations(s)...)
	}
	return out
}

func (g *Generator) mskVariants(text string) []string {
	out := caseExpand(directTransliterations(text))
	out = append(out, caseExpand(canonicalPrefixVariants(text))...)
	out = append(out, caseExpand(zoneVariants(text))...)
	out = append(out, substituteBounded(text, mskReplacements)...)
	return out
}

func (g *Generator) gskVariants(text string) []string {
	out := caseExpand(directTransliterations(text))
	out = append(out, caseExpand(canonicalPrefixVariants(text))...)
	out = append(out, caseExpand(zoneVariants(text))...)
	out = append(out, substituteBounded(text, gskReplacements)...)
	return out
}

func (g *Generator) skVariants(text string) []string {
	out := caseExpand(directTransliterations(text))
	out = append(out, caseExpand(canonicalPrefixVariants(text))...)
	out = append(out, caseExpand(zoneVariants(text))...)
	out = append(out, substituteBounded(text, skReplacements)...)
	return out
}

func (g *Generator) uskUslVariants(text string) []string {
	out := caseExpand(directTransliterations(text))
	for _, sep := range separatorVariants(text) {
		out = append(out, sep)
		out = append(out, applyAbbreviations(sep, geographicAbbreviations)...)
	}
	out = append(out, substituteBounded(text, uskReplacements)...)
	return out
}

// UTM rewrites are emitted as-is: utmVariants already produces the
// registry's canonical spellings plus lowercase forms, and case noise
// on top of those would push the canonical form past the variant cap.
func (g *Generator) utmSystemVariants(text string) []string {
	return utmVariants(text)
}

func (g *Generator) genericVariants(text string) []string {
	out := caseExpand(directTransliterations(text))
	out = append(out, separatorVariants(text)...)
	out = append(out, substituteBounded(text, genericReplacements)...)
	return out
}

// systemVariants dispatches text to its family handler.
func (g *Generator) systemVariants(text string) []string {
	h := handlers[domvar.DetectSystem(strings.TrimSpace(text))]
	return h(g, text)
}
