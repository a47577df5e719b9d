// Package registry implements CRS candidate retrieval against two
// Postgres-backed sources: a custom registry of locally defined systems
// and the PostGIS spatial_ref_sys table for standard ones.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Postgres driver.
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/kartgeo/crsdex/internal/domain"
	"github.com/kartgeo/crsdex/internal/domain/search/candidate"
	"github.com/kartgeo/crsdex/internal/domain/search/field"
)

// Ranges restricts each source to its deployment-specific SRID window.
type Ranges struct {
	CustomMin   int
	CustomMax   int
	StandardMin int
	StandardMax int
}

// DefaultRanges covers the production custom registry and the UTM band
// of spatial_ref_sys.
func DefaultRanges() Ranges {
	return Ranges{
		CustomMin:   100000,
		CustomMax:   101500,
		StandardMin: 32601,
		StandardMax: 32660,
	}
}

// Repo retrieves candidates over database/sql.
type Repo struct {
	db      *sql.DB
	ranges  Ranges
	trigram bool
	log     *zap.Logger
}

// Option configures a Repo.
type Option func(*Repo)

// WithRanges overrides the per-source SRID windows.
func WithRanges(r Ranges) Option {
	return func(repo *Repo) { repo.ranges = r }
}

// WithTrigram enables pg_trgm similarity() as the base relevance.
// Requires the pg_trgm extension; without it every candidate carries
// base relevance 0 and ranking relies on textual similarity alone.
func WithTrigram(enabled bool) Option {
	return func(repo *Repo) { repo.trigram = enabled }
}

// WithLogger sets the repository logger.
func WithLogger(log *zap.Logger) Option {
	return func(repo *Repo) { repo.log = log }
}

// New creates a registry repository on an open database handle.
func New(db *sql.DB, opts ...Option) *Repo {
	r := &Repo{
		db:     db,
		ranges: DefaultRanges(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open connects to Postgres, applies pool limits and verifies the
// connection.
func Open(dsn string, maxOpen, maxIdle int, connMaxLifetime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Fetch matches one variant case-insensitively against the requested
// fields of both sources and returns raw candidates, best base
// relevance first.
func (r *Repo) Fetch(
	ctx context.Context, variant string, fields []field.Field, limit int,
) ([]candidate.Candidate, error) {
	if limit <= 0 || len(fields) == 0 {
		return nil, nil
	}

	q, args := buildFetchQuery(r.ranges, r.trigram, variant, fields, limit)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	defer rows.Close()

	var out []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	return out, nil
}

// LookupSRID resolves one identifier, custom registry first so local
// overrides shadow standard rows on range overlap.
func (r *Repo) LookupSRID(ctx context.Context, srid int) (candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, lookupCustomQuery, srid)
	c, err := scanCandidate(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return candidate.Candidate{}, fmt.Errorf("lookup custom srid %d: %w", srid, err)
	}

	row = r.db.QueryRowContext(ctx, lookupStandardQuery, srid)
	c, err = scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return candidate.Candidate{}, domain.ErrNotFound
	}
	if err != nil {
		return candidate.Candidate{}, fmt.Errorf("lookup standard srid %d: %w", srid, err)
	}
	return c, nil
}

// Ping verifies database connectivity for health checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanCandidate reads one row of the unified column set
// (srid, authority_name, authority_id, raw_text, base_relevance).
func scanCandidate(s scanner) (candidate.Candidate, error) {
	var (
		c      candidate.Candidate
		authID sql.NullInt64
	)
	if err := s.Scan(&c.SRID, &c.AuthorityName, &authID, &c.RawText, &c.BaseRelevance); err != nil {
		return candidate.Candidate{}, err
	}
	if authID.Valid {
		c.AuthorityID = int(authID.Int64)
		c.HasAuthorityID = true
	}
	return c, nil
}
