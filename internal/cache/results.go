package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kartgeo/crsdex/internal/domain/search/result"
)

const resultKeyPrefix = "crsdex:search:"

// DefaultResultTTL is how long a cached result set stays valid.
const DefaultResultTTL = 5 * time.Minute

// ResultStore adapts a byte Store into the typed response cache the
// search engine consumes. Storage failures degrade to cache misses;
// they are logged, never surfaced.
type ResultStore struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// NewResultStore creates the typed adapter. A non-positive ttl falls
// back to DefaultResultTTL.
func NewResultStore(store Store, ttl time.Duration, log *zap.Logger) *ResultStore {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ResultStore{store: store, ttl: ttl, log: log}
}

// resultRecord is the wire form of a ranked result; the domain type
// keeps its fields unexported.
type resultRecord struct {
	SRID           int     `json:"srid"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Relevance      float64 `json:"relevance"`
	PriorityLevel  int     `json:"priority_level"`
	FoundByVariant string  `json:"found_by_variant,omitempty"`
}

// Get returns a cached result set, reporting a miss on any failure.
func (rs *ResultStore) Get(ctx context.Context, key string) ([]result.Result, bool) {
	data, err := rs.store.Get(ctx, resultKeyPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			rs.log.Warn("result cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var records []resultRecord
	if err := json.Unmarshal(data, &records); err != nil {
		rs.log.Warn("result cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	results := make([]result.Result, len(records))
	for i, rec := range records {
		results[i] = result.New(
			rec.SRID, rec.Name, rec.Description,
			rec.Relevance, rec.PriorityLevel, rec.FoundByVariant,
		)
	}
	return results, true
}

// Set stores a result set under key for the configured TTL.
func (rs *ResultStore) Set(ctx context.Context, key string, results []result.Result) {
	records := make([]resultRecord, len(results))
	for i := range results {
		r := &results[i]
		records[i] = resultRecord{
			SRID:           r.SRID(),
			Name:           r.Name(),
			Description:    r.Description(),
			Relevance:      r.Relevance(),
			PriorityLevel:  r.PriorityLevel(),
			FoundByVariant: r.FoundByVariant(),
		}
	}

	data, err := json.Marshal(records)
	if err != nil {
		rs.log.Warn("result cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := rs.store.SetWithTTL(ctx, resultKeyPrefix+key, data, rs.ttl); err != nil {
		rs.log.Warn("result cache write failed", zap.String("key", key), zap.Error(err))
	}
}
