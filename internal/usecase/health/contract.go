package health

import "context"

// DBPinger checks registry database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks response-cache backend availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
