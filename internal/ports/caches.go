package ports

import (
	"context"
	"time"
	"trip-log-service/internal/domain"
)

// Cache of routed journeys keyed by an opaque, normalized route key.
type RouteCache interface {
	// Return the cached summary and whether it was present.
	Get(ctx context.Context, key string) (domain.RouteSummary, bool, error)
	Put(ctx context.Context, key string, summary domain.RouteSummary, ttl time.Duration) error
}

// Cache of address -> coordinates lookups.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
