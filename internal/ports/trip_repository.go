package ports

import (
	"context"
	"trip-log-service/internal/domain"
)

// Port: a boundary for storing planned trips and their daily logs.
// Lookups of unknown ids return an error matching domain.ErrNotFound.
type TripRepository interface {
	// Persist the trip with its route points, logs, segments and violations.
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	// Retrieve a trip with route points and logs.
	GetTrip(ctx context.Context, id string) (*domain.Trip, error)
	// List trips, newest first, without logs.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// List a trip's logs ordered by date.
	ListLogs(ctx context.Context, tripID string) ([]domain.DailyLog, error)
	GetLog(ctx context.Context, tripID string, logID int64) (*domain.DailyLog, error)
}
