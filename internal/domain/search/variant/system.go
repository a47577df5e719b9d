package variant

import "regexp"

// System classifies a query by its coordinate system family.
type System int

// Known coordinate system families.
const (
	SystemUnknown System = iota
	SystemMSK
	SystemGSK
	SystemSK
	SystemUSK
	SystemUSL
	SystemUTM
)

// String returns the family abbreviation.
func (s System) String() string {
	switch s {
	case SystemMSK:
		return "MSK"
	case SystemGSK:
		return "GSK"
	case SystemSK:
		return "SK"
	case SystemUSK:
		return "USK"
	case SystemUSL:
		return "USL"
	case SystemUTM:
		return "UTM"
	default:
		return "Unknown"
	}
}

// Prefix patterns include the wrong-keyboard-layout spellings of each
// abbreviation ("ьыл" is MSK typed on the Russian layout, and so on).
var systemPatterns = []struct {
	system System
	re     *regexp.Regexp
}{
	{SystemMSK, regexp.MustCompile(`(?i)^(msk|мск|ьыл|mck|vcr|мыл)`)},
	{SystemGSK, regexp.MustCompile(`(?i)^(gsk|гск|гыл)`)},
	{SystemSK, regexp.MustCompile(`(?i)^(sk\d|ск\d|ыл\d)`)},
	{SystemUSK, regexp.MustCompile(`(?i)^(usk|уск)`)},
	{SystemUSL, regexp.MustCompile(`(?i)^(usl|усл)`)},
	{SystemUTM, regexp.MustCompile(`(?i)^(utm|утм|гем|геь)`)},
}

// DetectSystem classifies text by prefix. First match wins, so MSK is
// checked before SK ("мск" must not fall into the SK bucket).
func DetectSystem(text string) System {
	for _, p := range systemPatterns {
		if p.re.MatchString(text) {
			return p.system
		}
	}
	return SystemUnknown
}
