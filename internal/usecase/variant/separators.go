package variant

import "strings"

// separatorVariants treats underscore, hyphen and space as
// interchangeable, also offering the glued form.
func separatorVariants(text string) []string {
	seen := map[string]struct{}{text: {}}
	add := func(s string) { seen[s] = struct{}{} }

	for _, sep := range []string{"_", "-", " "} {
		if !strings.Contains(text, sep) {
			continue
		}
		for _, to := range []string{"_", "-", " ", ""} {
			if to != sep {
				add(strings.ReplaceAll(text, sep, to))
			}
		}
	}

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	return out
}
