package variant

import (
	"sort"
	"testing"
)

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestZoneVariants_MarkerFamily(t *testing.T) {
	out := zoneVariants("мск з5")
	for _, want := range []string{"мск z5", "мск zone5", "мск зона5"} {
		if !contains(out, want) {
			sort.Strings(out)
			t.Errorf("missing %q in %v", want, out)
		}
	}
}

func TestZoneVariants_DigitYaSuffix(t *testing.T) {
	out := zoneVariants("ьыл22я1")
	if !contains(out, "мск22з1") {
		sort.Strings(out)
		t.Errorf("missing мск22з1 in %v", out)
	}
	if !contains(out, "msk22z1") {
		sort.Strings(out)
		t.Errorf("missing msk22z1 in %v", out)
	}
}

func TestUTMVariants_ShortForm(t *testing.T) {
	out := utmVariants("utm37n")
	for _, want := range []string{"UTM +zone=37N", "UTM zone 37N", "UTM +zone=37S"} {
		if !contains(out, want) {
			sort.Strings(out)
			t.Errorf("missing %q in %v", want, out)
		}
	}
}

func TestUTMVariants_MissingHemisphere(t *testing.T) {
	out := utmVariants("utm zone 42")
	for _, want := range []string{"UTM +zone=42N", "UTM +zone=42S", "UTM +zone=42"} {
		if !contains(out, want) {
			sort.Strings(out)
			t.Errorf("missing %q in %v", want, out)
		}
	}
}

func TestUTMVariants_WrongLayoutPrefix(t *testing.T) {
	out := utmVariants("геь37")
	if !contains(out, "UTM +zone=37N") {
		sort.Strings(out)
		t.Errorf("missing canonical form in %v", out)
	}
}

func TestUTMVariants_NoMatch(t *testing.T) {
	if out := utmVariants("мск95"); len(out) != 0 {
		t.Errorf("expected no variants, got %v", out)
	}
}
