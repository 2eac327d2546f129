package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Contract for resolving a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that resolves many addresses at once.
type BatchGeocoder interface {
	Geocoder
	// Return coordinates keyed by the address as given.
	GeocodeMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}
