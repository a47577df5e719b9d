package variant

import (
	"strings"
	"unicode"
)

// Digit/letter confusion table. At most two alternatives per rune keeps
// the expansion polynomial; 'p' and 'р' are ambiguous zone markers that
// may stand for either "з" or "р".
var substitutions = map[rune][]string{
	'4': {"ч", "ch"},
	'ч': {"4", "ch"},
	'3': {"з", "z"},
	'з': {"3", "z"},
	'z': {"3", "з"},
	'0': {"о", "o"},
	'о': {"0", "o"},
	'o': {"0", "о"},
	'1': {"и", "i"},
	'и': {"1", "i"},
	'i': {"1", "и"},
	'7': {"т", "t"},
	'т': {"7", "t"},
	't': {"7", "т"},
	'p': {"з", "р"},
	'р': {"p", "з"},
	'я': {"z", "з"},
}

// maxSubstitutionVariants hard-caps the accumulator so digit-heavy
// input cannot produce a quadratic pile of strings.
const maxSubstitutionVariants = 256

// substituteBounded expands text by substituting confusable digits and
// letters, with a hard bound on simultaneous replacements. Every path
// through the expansion terminates either at the end of the string, at
// maxReplacements, or when the accumulator cap is reached, so output
// size never explodes on adversarial input.
func substituteBounded(text string, maxReplacements int) []string {
	seen := make(map[string]struct{})
	expand(text, 0, 0, maxReplacements, seen)

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	return out
}

func expand(text string, pos, made, maxReplacements int, acc map[string]struct{}) {
	if len(acc) >= maxSubstitutionVariants {
		return
	}
	runes := []rune(text)
	if pos >= len(runes) || made >= maxReplacements {
		acc[text] = struct{}{}
		return
	}

	r := runes[pos]
	if alts, ok := substitutions[unicode.ToLower(r)]; ok {
		for _, alt := range alts {
			if unicode.IsUpper(r) {
				alt = strings.ToUpper(alt)
			} else {
				alt = strings.ToLower(alt)
			}
			next := string(runes[:pos]) + alt + string(runes[pos+1:])
			expand(next, pos+len([]rune(alt)), made+1, maxReplacements, acc)
		}
	}

	// Always also continue without replacing the current rune.
	expand(text, pos+1, made, maxReplacements, acc)
}
