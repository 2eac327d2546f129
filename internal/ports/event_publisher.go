package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Contract for announcing planned trips to downstream consumers.
type TripEventPublisher interface {
	PublishTripPlanned(ctx context.Context, trip *domain.Trip) error
}
