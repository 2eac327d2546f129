package hos

import (
	"fmt"
	"math"

	"trip-log-service/internal/domain"
)

// PlanFuelStops places a fuel stop every 1000 miles strictly before the
// trip's total distance.
func PlanFuelStops(totalDistanceMiles float64) []domain.FuelStop {
	return FederalPropertyCarrying.FuelStops(totalDistanceMiles)
}

// PlanRestStops places a 10-hour rest stop every 8 hours of elapsed
// duration strictly before the trip's total duration.
func PlanRestStops(totalDurationHours float64) []domain.RestStop {
	return FederalPropertyCarrying.RestStops(totalDurationHours)
}

func (r Ruleset) FuelStops(totalDistanceMiles float64) []domain.FuelStop {
	stops := []domain.FuelStop{}
	if r.FuelIntervalMiles <= 0 || math.IsNaN(totalDistanceMiles) || math.IsInf(totalDistanceMiles, 0) {
		return stops
	}
	for mark := r.FuelIntervalMiles; mark < totalDistanceMiles; mark += r.FuelIntervalMiles {
		stops = append(stops, domain.FuelStop{
			MileageMark:           mark,
			Label:                 fmt.Sprintf("Fuel Stop %d", len(stops)+1),
			EstimatedHoursElapsed: mark / r.AverageSpeedMPH,
			DurationMinutes:       r.FuelStopMinutes,
		})
	}
	return stops
}

func (r Ruleset) RestStops(totalDurationHours float64) []domain.RestStop {
	stops := []domain.RestStop{}
	if r.RestIntervalHours <= 0 || math.IsNaN(totalDurationHours) || math.IsInf(totalDurationHours, 0) {
		return stops
	}
	for mark := r.RestIntervalHours; mark < totalDurationHours; mark += r.RestIntervalHours {
		stops = append(stops, domain.RestStop{
			HoursElapsedMark:  mark,
			Label:             fmt.Sprintf("Rest Stop %d", len(stops)+1),
			RestDurationHours: r.RestStopHours,
		})
	}
	return stops
}
