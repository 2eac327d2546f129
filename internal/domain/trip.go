package domain

import "time"

// TripContext is the read-only input to log generation.
type TripContext struct {
	CurrentCycleUsedHours       float64
	TotalDistanceMiles          float64
	TotalEstimatedDurationHours float64
}

// Trip is a planned journey together with everything derived from it.
type Trip struct {
	ID               string
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
	CreatedAt        time.Time

	TotalDistanceMiles     float64
	EstimatedDurationHours float64

	RoutePoints []RoutePoint
	Geometry    [][]float64
	FuelStops   []FuelStop
	RestStops   []RestStop
	Logs        []DailyLog
}

// Context returns the engine input view of the trip.
func (t *Trip) Context() TripContext {
	return TripContext{
		CurrentCycleUsedHours:       t.CurrentCycleUsed,
		TotalDistanceMiles:          t.TotalDistanceMiles,
		TotalEstimatedDurationHours: t.EstimatedDurationHours,
	}
}
