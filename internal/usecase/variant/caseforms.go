package variant

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// caseVariations returns the text plus its lower, upper, title and
// capitalized forms, deduplicated, original first.
func caseVariations(text string) []string {
	seen := make(map[string]struct{}, 5)
	out := make([]string, 0, 5)
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(text)
	add(strings.ToLower(text))
	add(strings.ToUpper(text))
	if len(text) > 1 {
		add(titleCaser.String(text))
		add(capitalize(text))
	}
	return out
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(text string) string {
	runes := []rune(strings.ToLower(text))
	if len(runes) == 0 {
		return text
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
