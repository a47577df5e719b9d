package variant

import (
	"strings"
	"testing"
)

func TestSubstituteBounded_SingleReplacement(t *testing.T) {
	out := substituteBounded("мск4", 1)
	found := false
	for _, v := range out {
		if v == "мскч" {
			found = true
		}
	}
	if !found {
		t.Errorf("digit lookalike missing from %v", out)
	}
}

func TestSubstituteBounded_RespectsBudget(t *testing.T) {
	// With budget 1 no output may differ from the input in more than
	// one position (alternatives are same-width or wider, never both
	// substituted).
	input := "4326"
	for _, v := range substituteBounded(input, 1) {
		if v == input {
			continue
		}
		diff := 0
		if len(v) == len(input) {
			for i := range input {
				if v[i] != input[i] {
					diff++
				}
			}
			if diff > 2 { // a multi-byte rune shows up as 2 byte diffs
				t.Errorf("%q differs from %q in too many positions", v, input)
			}
		}
	}
}

func TestSubstituteBounded_LongInputStaysBounded(t *testing.T) {
	input := strings.Repeat("4301", 16)
	out := substituteBounded(input, 2)
	if len(out) > maxSubstitutionVariants {
		t.Fatalf("got %d variants, cap is %d", len(out), maxSubstitutionVariants)
	}
}

func TestSubstituteBounded_NoSubstitutableRunes(t *testing.T) {
	out := substituteBounded("qwm", 2)
	if len(out) != 1 || out[0] != "qwm" {
		t.Errorf("expected only the input back, got %v", out)
	}
}
