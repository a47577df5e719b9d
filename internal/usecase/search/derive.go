package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kartgeo/crsdex/internal/domain/search/candidate"
)

// Standard registry authorities whose rows are named "AUTH:id".
var standardAuthorities = map[string]struct{}{
	"EPSG":   {},
	"ESRI":   {},
	"IGNF":   {},
	"SR-ORG": {},
}

var (
	wktHeadRe   = regexp.MustCompile(`^\s*(PROJCS|GEOGCS|GEOCCS|VERT_CS|COMPD_CS)\s*\[`)
	wktQuotedRe = regexp.MustCompile(`"([^"]*)"`)
)

// deriveNameAndDescription turns a raw registry row into display fields.
// Standard-authority rows are named "AUTH:id" and described by the CRS
// name embedded in their WKT; custom rows keep their stored name and
// free-text description. Missing descriptions fall back to a labeled
// placeholder so the UI never renders an empty line.
func deriveNameAndDescription(c candidate.Candidate) (name, description string) {
	auth := strings.ToUpper(strings.TrimSpace(c.AuthorityName))
	if _, ok := standardAuthorities[auth]; ok && c.HasAuthorityID {
		name = fmt.Sprintf("%s:%d", auth, c.AuthorityID)
		description = wktName(c.RawText)
		if description == "" {
			description = strings.TrimSpace(c.RawText)
		}
		if description == "" {
			description = fmt.Sprintf("%s (Описание отсутствует)", name)
		}
		return name, description
	}

	name = strings.TrimSpace(c.AuthorityName)
	description = strings.TrimSpace(c.RawText)
	if description == "" {
		description = fmt.Sprintf("%s (SRID: %d)", name, c.SRID)
	}
	return name, description
}

// wktName extracts the CRS name from a WKT definition: the first
// double-quoted token after a recognized header. Returns "" for
// anything that does not look like WKT; the caller falls back to the
// raw text.
func wktName(raw string) string {
	if !wktHeadRe.MatchString(raw) {
		return ""
	}
	m := wktQuotedRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
