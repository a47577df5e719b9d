package search

import (
	"context"

	"github.com/kartgeo/crsdex/internal/domain/search/candidate"
	"github.com/kartgeo/crsdex/internal/domain/search/field"
	"github.com/kartgeo/crsdex/internal/domain/search/result"
	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
)

// Retriever is the registry lookup contract. Fetch performs
// case-insensitive matching of one variant against the given fields;
// it may return an error on connectivity failure, which the engine
// absorbs per variant rather than surfacing to the caller.
type Retriever interface {
	Fetch(
		ctx context.Context, variant string, fields []field.Field, limit int,
	) ([]candidate.Candidate, error)

	// LookupSRID resolves one identifier directly, bypassing text
	// matching. Returns domain.ErrNotFound when no registry row exists.
	LookupSRID(ctx context.Context, srid int) (candidate.Candidate, error)
}

// Generator expands one query into prioritized variants.
type Generator interface {
	Generate(query string) []domvar.Variant
}

// ResultCache stores finished result sets with an implementation-owned
// TTL. A miss is (nil, false); storage failures are the cache's problem
// and never surface here.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]result.Result, bool)
	Set(ctx context.Context, key string, results []result.Result)
}
