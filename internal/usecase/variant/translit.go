package variant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Phonetic Cyrillic to Latin table. Multi-rune outputs keep the case of
// the source rune on their first letter only.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Latin to Cyrillic clusters, longest first so "sch" wins over "s"+"ch".
var latinClusters = []struct {
	from string
	to   rune
}{
	{"sch", 'щ'},
	{"yo", 'ё'}, {"zh", 'ж'}, {"ts", 'ц'}, {"ch", 'ч'},
	{"sh", 'ш'}, {"yu", 'ю'}, {"ya", 'я'},
	{"a", 'а'}, {"b", 'б'}, {"v", 'в'}, {"g", 'г'}, {"d", 'д'},
	{"e", 'е'}, {"z", 'з'}, {"i", 'и'}, {"y", 'й'}, {"k", 'к'},
	{"l", 'л'}, {"m", 'м'}, {"n", 'н'}, {"o", 'о'}, {"p", 'п'},
	{"r", 'р'}, {"s", 'с'}, {"t", 'т'}, {"u", 'у'}, {"f", 'ф'},
	{"h", 'х'},
}

// toLatin transliterates Cyrillic runes phonetically, leaving everything
// else untouched.
func toLatin(text string) string {
	var b strings.Builder
	for _, r := range text {
		lower := unicode.ToLower(r)
		mapped, ok := cyrillicToLatin[lower]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) && mapped != "" {
			b.WriteString(strings.ToUpper(mapped[:1]) + mapped[1:])
		} else {
			b.WriteString(mapped)
		}
	}
	return b.String()
}

// toCyrillic transliterates Latin text phonetically with greedy
// longest-match cluster handling (zh, sch, ...).
func toCyrillic(text string) string {
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		matched := false
		for _, cl := range latinClusters {
			n := len(cl.from)
			if i+n > len(runes) {
				continue
			}
			seg := string(runes[i : i+n])
			if !strings.EqualFold(seg, cl.from) {
				continue
			}
			to := cl.to
			if unicode.IsUpper(runes[i]) {
				to = unicode.ToUpper(to)
			}
			b.WriteRune(to)
			i += n
			matched = true
			break
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}
	return b.String()
}

// directTransliterations returns phonetic rewrites in whichever
// directions apply to the text.
func directTransliterations(text string) []string {
	var out []string
	if strings.IndexFunc(text, isCyrillic) >= 0 {
		if v := toLatin(text); v != text {
			out = append(out, v)
		}
	}
	if strings.IndexFunc(text, isLatinLetter) >= 0 {
		if v := toCyrillic(text); v != text {
			out = append(out, v)
		}
	}
	return out
}

func isCyrillic(r rune) bool { return unicode.Is(unicode.Cyrillic, r) }

func isLatinLetter(r rune) bool { return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' }

// foldDiacritics strips combining marks: NFD, drop Mn, NFC.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// romanize is the locale-agnostic fallback: phonetic Latin plus
// diacritic folding, always pure ASCII-leaning output.
func romanize(text string) string {
	latin := toLatin(text)
	folded, _, err := transform.String(foldDiacritics, latin)
	if err != nil {
		return latin
	}
	return folded
}
