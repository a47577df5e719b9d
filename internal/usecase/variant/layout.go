package variant

import (
	"strings"
	"unicode"
)

// Row-position mapping between the QWERTY and ЙЦУКЕН keyboard layouts.
// Only the letter keys matter for CRS queries; punctuation keys that
// produce Cyrillic letters (х ъ ж э б ю) are included so words like
// "щх" round-trip.
var latinToLayout = map[rune]rune{
	'q': 'й', 'w': 'ц', 'e': 'у', 'r': 'к', 't': 'е', 'y': 'н', 'u': 'г',
	'i': 'ш', 'o': 'щ', 'p': 'з', '[': 'х', ']': 'ъ',
	'a': 'ф', 's': 'ы', 'd': 'в', 'f': 'а', 'g': 'п', 'h': 'р', 'j': 'о',
	'k': 'л', 'l': 'д', ';': 'ж', '\'': 'э',
	'z': 'я', 'x': 'ч', 'c': 'с', 'v': 'м', 'b': 'и', 'n': 'т', 'm': 'ь',
	',': 'б', '.': 'ю',
}

var cyrillicToLayout = func() map[rune]rune {
	m := make(map[rune]rune, len(latinToLayout))
	for lat, cyr := range latinToLayout {
		m[cyr] = lat
	}
	return m
}()

// swapLayout remaps text between keyboard layouts in both directions.
// A direction contributes a variant only when every letter of the text
// maps cleanly in that direction; digits and separators pass through.
func swapLayout(text string) []string {
	var out []string
	if v, ok := remap(text, latinToLayout); ok && v != text {
		out = append(out, v)
	}
	if v, ok := remap(text, cyrillicToLayout); ok && v != text {
		out = append(out, v)
	}
	return out
}

// remap translates every letter of text through table, preserving case.
// Returns false when any letter has no mapping, or when nothing mapped
// at all (the text has no letters of the source layout).
func remap(text string, table map[rune]rune) (string, bool) {
	var b strings.Builder
	mapped := false
	for _, r := range text {
		lower := unicode.ToLower(r)
		if to, ok := table[lower]; ok {
			if unicode.IsUpper(r) {
				to = unicode.ToUpper(to)
			}
			b.WriteRune(to)
			mapped = true
			continue
		}
		if unicode.IsLetter(r) {
			return "", false
		}
		b.WriteRune(r)
	}
	if !mapped {
		return "", false
	}
	return b.String(), true
}
