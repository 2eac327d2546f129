package routing

import (
	"context"
	"fmt"
	"math"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

const (
	earthRadiusMiles = 3959.0
	fallbackSpeedMPH = 60.0
	// Padding on straight-line travel time for city driving.
	fallbackDurationFactor = 1.2
)

// StraightLineRouteProvider estimates a route from great-circle distances
// between the geocoded points. It needs no external routing service.
type StraightLineRouteProvider struct {
	Geocoder ports.Geocoder
}

func NewStraightLineRouteProvider(g ports.Geocoder) *StraightLineRouteProvider {
	if g == nil {
		g = StaticGeocoder{}
	}
	return &StraightLineRouteProvider{Geocoder: g}
}

func (s *StraightLineRouteProvider) GetRoute(ctx context.Context, current, pickup, dropoff string) (domain.RouteSummary, error) {
	points, err := resolvePoints(ctx, s.Geocoder, current, pickup, dropoff)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("straight line route: %w", err)
	}

	var miles float64
	geometry := make([][]float64, 0, len(points))
	for i, p := range points {
		geometry = append(geometry, p.Coords.CoordsToList())
		if i > 0 {
			miles += HaversineMiles(points[i-1].Coords, p.Coords)
		}
	}

	return domain.RouteSummary{
		TotalDistanceMiles:     miles,
		EstimatedDurationHours: miles / fallbackSpeedMPH * fallbackDurationFactor,
		Points:                 points,
		Geometry:               geometry,
	}, nil
}

// HaversineMiles is the great-circle distance between a and b.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
