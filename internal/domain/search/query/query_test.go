package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/kartgeo/crsdex/internal/domain"
)

func TestNew_LimitNormalization(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -5, DefaultLimit},
		{"in range kept", 7, 7},
		{"above max clamped", 500, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New("мск", Filters{}, tt.limit)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if q.Limit() != tt.want {
				t.Errorf("limit = %d, want %d", q.Limit(), tt.want)
			}
		})
	}
}

func TestNew_TooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", MaxQueryLength+1), Filters{}, 10)
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestIsEmpty(t *testing.T) {
	for text, want := range map[string]bool{
		"":      true,
		"  \t ": true,
		"мск":   false,
	} {
		q, err := New(text, Filters{}, 10)
		if err != nil {
			t.Fatalf("New(%q): %v", text, err)
		}
		if q.IsEmpty() != want {
			t.Errorf("IsEmpty(%q) = %v, want %v", text, q.IsEmpty(), want)
		}
	}
}

func TestCacheKey_DistinguishesFiltersAndLimit(t *testing.T) {
	base, _ := New("мск", Filters{}, 20)
	srid, _ := New("мск", Filters{SRIDSearch: true}, 20)
	limited, _ := New("мск", Filters{}, 5)

	if base.CacheKey() == srid.CacheKey() {
		t.Error("srid filter must change the cache key")
	}
	if base.CacheKey() == limited.CacheKey() {
		t.Error("limit must change the cache key")
	}
}
