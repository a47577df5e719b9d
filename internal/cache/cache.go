// Package cache provides the response cache for search results: a
// byte-level TTL store with memory and Redis backends, plus a typed
// adapter for ranked result sets.
package cache

import "errors"

// ErrKeyNotFound signals a cache miss.
var ErrKeyNotFound = errors.New("cache: key not found")
