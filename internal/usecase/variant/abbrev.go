package variant

import "strings"

// Coordinate system abbreviation families. Each key rewrites to every
// listed replacement; wrong-layout spellings (ьыл, гыл, гем...) map back
// to their canonical families.
var coordinateAbbreviations = map[string][]string{
	"msk": {"мск", "МСК"},
	"mck": {"мск", "МСК", "msk", "MSK"},
	"vcr": {"мск", "МСК"},
	"мск": {"msk", "MSK"},

	"gsk":     {"гск", "ГСК"},
	"gsk2011": {"гск2011", "ГСК2011"},
	"гск":     {"gsk", "GSK"},
	"гск2011": {"gsk2011", "GSK2011"},

	"sk":   {"ск", "СК"},
	"sk42": {"ск42", "СК42"},
	"sk95": {"ск95", "СК95"},
	"sk63": {"ск63", "СК63"},
	"ск":   {"sk", "SK"},
	"ск42": {"sk42", "SK42"},
	"ск95": {"sk95", "SK95"},
	"ск63": {"sk63", "SK63"},

	"usk": {"уск", "УСК"},
	"usl": {"усл", "УСЛ"},
	"уск": {"usk", "USK"},
	"усл": {"usl", "USL"},

	"utm": {"утм", "УТМ"},
	"утм": {"utm", "UTM"},

	"zone": {"зона", "з"},
	"зона": {"zone", "z"},

	// Wrong keyboard layout spellings.
	"ьыл":  {"мск", "МСК", "msk", "MSK"},
	"мыл":  {"мск", "МСК", "vcr", "VCR"},
	"гыл":  {"гск", "ГСК", "gsk", "GSK"},
	"ыл":   {"ск", "СК", "sk", "SK"},
	"гем":  {"utm", "UTM", "утм", "УТМ"},
	"геь":  {"utm", "UTM", "утм", "УТМ"},
	"ящту": {"zone", "ZONE", "зона", "ЗОНА"},
	"яшту": {"zone", "ZONE", "зона", "ЗОНА"},
	"ящт":  {"zon", "ZON", "зон", "ЗОН"},
	"ящ":   {"zo", "ZO", "зо", "ЗО"},
}

// Geographic prefix abbreviations used by USK/USL registry names
// ("г_Москва", "r-n" and friends).
var geographicAbbreviations = map[string][]string{
	"g_":      {"г_", "город_", "г.", "city_"},
	"г_":      {"g_", "город_", "city_"},
	"p_":      {"п_", "поселок_", "п.", "town_"},
	"п_":      {"p_", "поселок_", "town_"},
	"s_":      {"с_", "село_", "с.", "village_"},
	"с_":      {"s_", "село_", "village_"},
	"d_":      {"д_", "деревня_", "д.", "hamlet_"},
	"д_":      {"d_", "деревня_", "hamlet_"},
	"r-n":     {"р-н", "район", "region"},
	"р-н":     {"r-n", "район", "region"},
	"oblast":  {"область", "обл", "region"},
	"область": {"oblast", "region"},
	"krai":    {"край", "territory"},
	"край":    {"krai", "territory"},
}

// applyAbbreviations rewrites every occurrence of a table key found in
// the lower-cased text, one key per variant.
func applyAbbreviations(text string, table map[string][]string) []string {
	var out []string
	lower := strings.ToLower(text)
	for abbrev, replacements := range table {
		if !strings.Contains(lower, abbrev) {
			continue
		}
		for _, to := range replacements {
			if v := strings.ReplaceAll(lower, abbrev, strings.ToLower(to)); v != text {
				out = append(out, v)
			}
			if v := strings.ReplaceAll(lower, abbrev, to); v != text {
				out = append(out, v)
			}
		}
	}
	return out
}
