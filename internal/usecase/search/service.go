package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kartgeo/crsdex/internal/domain"
	"github.com/kartgeo/crsdex/internal/domain/search/candidate"
	"github.com/kartgeo/crsdex/internal/domain/search/field"
	"github.com/kartgeo/crsdex/internal/domain/search/query"
	"github.com/kartgeo/crsdex/internal/domain/search/result"
	domvar "github.com/kartgeo/crsdex/internal/domain/search/variant"
	"github.com/kartgeo/crsdex/internal/metrics"
)

// defaultTierWorkers bounds parallel retrieval within one priority tier.
const defaultTierWorkers = 4

// Service drives the search pipeline: variant expansion, per-tier
// retrieval, scoring, merging and ranking, with a direct-SRID fast
// path and a coalesced response cache in front.
type Service struct {
	retriever Retriever
	generator Generator
	cache     ResultCache
	weights   Weights
	log       *zap.Logger

	tierWorkers int
	pool        *ants.Pool
	group       singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithCache installs a response cache.
func WithCache(c ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithWeights overrides the scoring constants.
func WithWeights(w Weights) Option {
	return func(s *Service) { s.weights = w }
}

// WithLogger sets the service logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithTierWorkers sets the retrieval parallelism within one tier.
func WithTierWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.tierWorkers = n
		}
	}
}

// New creates a search service. A retriever is mandatory; everything
// else has working defaults (no cache, default weights, nop logger).
func New(retriever Retriever, generator Generator, opts ...Option) (*Service, error) {
	if retriever == nil {
		return nil, domain.ErrNoRetriever
	}
	if generator == nil {
		return nil, errors.New("search: generator is required")
	}

	s := &Service{
		retriever:   retriever,
		generator:   generator,
		weights:     DefaultWeights(),
		log:         zap.NewNop(),
		tierWorkers: defaultTierWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}

	pool, err := ants.NewPool(s.tierWorkers)
	if err != nil {
		return nil, fmt.Errorf("search: tier worker pool: %w", err)
	}
	s.pool = pool
	return s, nil
}

// Close releases the tier worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// Search returns a ranked, deduplicated result set for one query.
// An empty query yields an empty set. Retrieval failures for single
// variants are absorbed; Search only errors on context cancellation
// before anything was merged.
func (s *Service) Search(ctx context.Context, q query.Query) ([]result.Result, error) {
	if q.IsEmpty() {
		return nil, nil
	}

	key := q.CacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			metrics.ResponseCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.ResponseCacheTotal.WithLabelValues("miss").Inc()
	}

	// Coalesce identical concurrent queries into one computation.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		results := s.doSearch(ctx, q)
		if s.cache != nil && ctx.Err() == nil {
			s.cache.Set(ctx, key, results)
		}
		return results, ctx.Err()
	})
	results, _ := v.([]result.Result)
	if err != nil && len(results) == 0 {
		return nil, err
	}
	// Cancellation mid-search degrades to the partial set.
	return results, nil
}

func (s *Service) doSearch(ctx context.Context, q query.Query) []result.Result {
	start := time.Now()

	if q.Filters().SRIDSearch {
		if srid, err := strconv.Atoi(q.Text()); err == nil {
			results := s.lookupDirect(ctx, srid, q.Text())
			observeSearch("direct", start, results)
			return results
		}
		// Flagged but non-numeric input falls through to text search.
	}

	variants := s.generator.Generate(q.Text())
	metrics.VariantsGenerated.Observe(float64(len(variants)))
	if len(variants) == 0 {
		return []result.Result{}
	}

	merged := make(map[int]result.Result, q.Limit())
	var mu sync.Mutex

	for _, tier := range tiers(variants) {
		var wg sync.WaitGroup
		for _, v := range tier {
			v := v
			wg.Add(1)
			task := func() {
				defer wg.Done()
				s.retrieveAndMerge(ctx, q, v, merged, &mu)
			}
			if err := s.pool.Submit(task); err != nil {
				task()
			}
		}
		wg.Wait()

		// A cancelled call returns whatever is merged so far; a
		// degraded answer beats none.
		if ctx.Err() != nil {
			break
		}
		// Early stop is only valid on a tier boundary: every variant
		// of one tier deserves an equal chance to contribute.
		if len(merged) >= q.Limit() {
			break
		}
	}

	results := sortAndTruncate(merged, q.Limit())
	observeSearch("variant", start, results)
	return results
}

func observeSearch(path string, start time.Time, results []result.Result) {
	outcome := "hit"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(path, outcome).Inc()
	metrics.SearchDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

// lookupDirect is the SRID fast path: one retriever call, no variant
// expansion, relevance pinned to the maximum.
func (s *Service) lookupDirect(ctx context.Context, srid int, raw string) []result.Result {
	c, err := s.retriever.LookupSRID(ctx, srid)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("srid lookup failed", zap.Int("srid", srid), zap.Error(err))
		}
		return []result.Result{}
	}
	return []result.Result{s.toResult(c, result.MaxRelevance, domvar.PriorityOriginal, raw)}
}

func (s *Service) retrieveAndMerge(
	ctx context.Context, q query.Query, v domvar.Variant,
	merged map[int]result.Result, mu *sync.Mutex,
) {
	if ctx.Err() != nil {
		return
	}

	fields := searchFields(v.Text, q.Text())
	candidates, err := s.retriever.Fetch(ctx, v.Text, fields, q.Limit())
	if err != nil {
		// One broken variant never aborts the search.
		metrics.RetrievalErrorsTotal.Inc()
		s.log.Warn("variant retrieval failed",
			zap.String("variant", v.Text),
			zap.Int("priority", v.Priority),
			zap.Error(err))
		return
	}

	for _, c := range candidates {
		name, description := deriveNameAndDescription(c)
		relevance := s.weights.score(c.BaseRelevance, v.Priority, q.Text(), name, description)
		r := result.New(c.SRID, name, description, relevance, v.Priority, v.Text)

		mu.Lock()
		merge(merged, r)
		mu.Unlock()
	}
}

// GetDetails resolves one SRID to its display record. Returns
// domain.ErrNotFound when the registry has no such identifier.
func (s *Service) GetDetails(ctx context.Context, srid int) (result.Result, error) {
	key := fmt.Sprintf("crs:%d", srid)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok && len(cached) == 1 {
			return cached[0], nil
		}
	}

	c, err := s.retriever.LookupSRID(ctx, srid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return result.Result{}, domain.ErrNotFound
		}
		return result.Result{}, fmt.Errorf("lookup srid %d: %w", srid, err)
	}

	r := s.toResult(c, result.MaxRelevance, domvar.PriorityOriginal, "")
	if s.cache != nil {
		s.cache.Set(ctx, key, []result.Result{r})
	}
	return r, nil
}

func (s *Service) toResult(c candidate.Candidate, relevance float64, priority int, variant string) result.Result {
	name, description := deriveNameAndDescription(c)
	return result.New(c.SRID, name, description, relevance, priority, variant)
}

// searchFields picks the registry columns to match for one variant,
// based on the variant's own detected system family, not the raw
// query's. Queries with separators or other non-alphanumeric content
// always search everything.
func searchFields(variantText, rawQuery string) []field.Field {
	if containsNonAlnum(rawQuery) {
		return field.All()
	}
	switch domvar.DetectSystem(variantText) {
	case domvar.SystemMSK, domvar.SystemGSK, domvar.SystemSK:
		return []field.Field{field.Name, field.ID}
	default:
		return field.All()
	}
}

func containsNonAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= 'а' && r <= 'я' || r >= 'А' && r <= 'Я' || r == 'ё' || r == 'Ё':
		default:
			return true
		}
	}
	return false
}

// tiers splits a priority-ordered variant list into runs of equal
// priority, preserving order.
func tiers(variants []domvar.Variant) [][]domvar.Variant {
	var out [][]domvar.Variant
	start := 0
	for i := 1; i <= len(variants); i++ {
		if i == len(variants) || variants[i].Priority != variants[start].Priority {
			out = append(out, variants[start:i])
			start = i
		}
	}
	return out
}
