package health

import "context"

// StorePinger checks cache store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// Checker checks an upstream provider (search engine, completion provider).
type Checker interface {
	HealthCheck(ctx context.Context) error
}
