package variant

import (
	"fmt"
	"regexp"
	"strings"
)

// Zone markers are interchangeable: "z1", "з1", "zone1", "зона1" and the
// wrong-layout "я1" all mean zone 1.
var zoneMarkers = []string{"z", "з", "zone", "зона", "я"}

var (
	zoneRe     = regexp.MustCompile(`(?i)(zone|зона|z|з|я)(\d+(?:\.\d+)?)`)
	digitYaRe  = regexp.MustCompile(`(\d+)[яЯ](\d*)`)
	utmLongRe  = regexp.MustCompile(`(?i)(utm|гем|геь)\s*(zone|зона|ящту|яшту)?\s*(\d+)\s*([nsNS]?)`)
	utmShortRe = regexp.MustCompile(`(?i)(utm|гем|геь)(\d+)([nsNS]?)`)
)

// zoneVariants regenerates every zone marker occurrence with each
// marker of the family, keeping the numeric suffix.
func zoneVariants(text string) []string {
	seen := make(map[string]struct{})

	for _, m := range zoneRe.FindAllStringSubmatchIndex(text, -1) {
		number := text[m[4]:m[5]]
		for _, marker := range zoneMarkers {
			v := text[:m[0]] + marker + number + text[m[1]:]
			seen[v] = struct{}{}
		}
	}

	seen = mergeSet(seen, digitYaVariants(text))

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	return out
}

// digitYaVariants handles the bare "<digits>я<digits>" suffix directly
// after a base system prefix: "ьыл22я1" means МСК 22 зона 1.
func digitYaVariants(text string) map[string]struct{} {
	seen := make(map[string]struct{})

	for _, m := range digitYaRe.FindAllStringSubmatchIndex(text, -1) {
		number := text[m[2]:m[3]]
		suffix := text[m[4]:m[5]]
		head := text[:m[0]]
		tail := text[m[1]:]

		var prefixes []string
		switch {
		case strings.EqualFold(head, "ьыл"), head == "":
			prefixes = []string{"мск", "МСК", "msk", "MSK"}
		default:
			prefixes = []string{head}
		}

		for _, prefix := range prefixes {
			latinMarker, cyrMarker := "z", "з"
			if prefix != strings.ToLower(prefix) {
				latinMarker, cyrMarker = "Z", "З"
			}
			seen[prefix+number+latinMarker+suffix+tail] = struct{}{}
			if strings.IndexFunc(prefix, isCyrillic) >= 0 {
				seen[prefix+number+cyrMarker+suffix+tail] = struct{}{}
			}
		}
	}
	return seen
}

// utmVariants normalizes user-typed UTM zone references into the two
// canonical registry forms, "UTM +zone=<n><hem>" and "UTM zone <n><hem>".
// A missing hemisphere emits both N and S; a given one also emits its
// opposite, since user intent is ambiguous.
func utmVariants(text string) []string {
	seen := make(map[string]struct{})

	collect := func(number, hemisphere string, matchStart, matchEnd int) {
		hemispheres := []string{"N", "S", ""}
		if hemisphere != "" {
			hemispheres = []string{strings.ToUpper(hemisphere), opposite(hemisphere)}
		}
		for _, hem := range hemispheres {
			for _, canon := range []string{
				fmt.Sprintf("UTM +zone=%s%s", number, hem),
				fmt.Sprintf("UTM zone %s%s", number, hem),
			} {
				seen[canon] = struct{}{}
				seen[strings.ToLower(canon)] = struct{}{}
				// Also regenerate the full text around the match.
				if matchStart > 0 || matchEnd < len(text) {
					seen[text[:matchStart]+canon+text[matchEnd:]] = struct{}{}
				}
			}
		}
	}

	for _, m := range utmLongRe.FindAllStringSubmatchIndex(text, -1) {
		collect(text[m[6]:m[7]], submatch(text, m, 4), m[0], m[1])
	}
	for _, m := range utmShortRe.FindAllStringSubmatchIndex(text, -1) {
		collect(text[m[4]:m[5]], submatch(text, m, 3), m[0], m[1])
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	return out
}

func opposite(hemisphere string) string {
	if strings.EqualFold(hemisphere, "n") {
		return "S"
	}
	return "N"
}

func submatch(text string, idx []int, group int) string {
	if idx[2*group] < 0 {
		return ""
	}
	return text[idx[2*group] : idx[2*group+1]]
}

func mergeSet(dst, src map[string]struct{}) map[string]struct{} {
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
