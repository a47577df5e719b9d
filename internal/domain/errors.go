package domain

import "errors"

var (
	// ErrNotFound signals a missing CRS record.
	ErrNotFound = errors.New("not found")
	// ErrNoRetriever signals a search engine constructed without a registry retriever.
	ErrNoRetriever = errors.New("search engine requires a registry retriever")
	// ErrInvalidQuery signals an unusable search request (bad limit, oversized query).
	ErrInvalidQuery = errors.New("invalid query")
)
