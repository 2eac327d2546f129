package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Contract for routing a three-point journey (current -> pickup -> dropoff).
type RouteProvider interface {
	// Return total distance, estimated duration and resolved points.
	GetRoute(ctx context.Context, current, pickup, dropoff string) (domain.RouteSummary, error)
}
