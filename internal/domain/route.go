package domain

// Role of a point along a three-point journey.
type RoutePointType string

const (
	PointStart   RoutePointType = "start"
	PointPickup  RoutePointType = "pickup"
	PointFuel    RoutePointType = "fuel"
	PointRest    RoutePointType = "rest"
	PointDropoff RoutePointType = "dropoff"
)

// A resolved address on the route.
type RoutePoint struct {
	Type     RoutePointType
	Address  string
	Coords   Coordinates
	Sequence int
}

// Represents the result of routing current -> pickup -> dropoff.
// Distance and duration are the only values the HOS engine consumes;
// points and geometry are carried for map rendering.
type RouteSummary struct {
	TotalDistanceMiles     float64
	EstimatedDurationHours float64
	Points                 []RoutePoint
	Geometry               [][]float64
}

// Planned refuelling point, placed by mileage.
type FuelStop struct {
	MileageMark           float64
	Label                 string
	EstimatedHoursElapsed float64
	DurationMinutes       int
}

// Planned rest point, placed by elapsed duration.
type RestStop struct {
	HoursElapsedMark  float64
	Label             string
	RestDurationHours float64
}
