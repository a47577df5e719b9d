package query

import (
	"fmt"
	"strings"

	"github.com/kartgeo/crsdex/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Filters narrows how a query is interpreted.
type Filters struct {
	// SRIDSearch requests a direct numeric-identifier lookup when the
	// query parses as an integer.
	SRIDSearch bool
}

// CacheKey returns a stable string form for response-cache keys.
func (f Filters) CacheKey() string {
	if f.SRIDSearch {
		return "srid"
	}
	return "text"
}

// Query is a validated search request.
type Query struct {
	text    string
	filters Filters
	limit   int
}

// New validates and normalizes search parameters.
// An empty or whitespace-only query is allowed and yields no results
// downstream; it is not an error.
func New(text string, filters Filters, limit int) (Query, error) {
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: longer than %d chars", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{text: text, filters: filters, limit: limit}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// Filters returns the query filters.
func (q *Query) Filters() Filters { return q.filters }

// Limit returns the maximum results to return.
func (q *Query) Limit() int { return q.limit }

// IsEmpty reports whether the query holds no searchable text.
func (q *Query) IsEmpty() bool { return strings.TrimSpace(q.text) == "" }

// CacheKey returns the response-cache key for this query.
func (q *Query) CacheKey() string {
	return fmt.Sprintf("search:%s:%s:%d", q.text, q.filters.CacheKey(), q.limit)
}
