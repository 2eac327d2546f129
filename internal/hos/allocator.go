package hos

import (
	"math"

	"trip-log-service/internal/domain"
)

var allocationTable = map[DayRole]domain.DailyAllocation{
	SingleDay: {DrivingHours: 10.5, OnDutyHours: 2.5, OffDutyHours: 10.0, SleeperBerthHours: 1.5},
	FirstDay:  {DrivingHours: 11.0, OnDutyHours: 2.0, OffDutyHours: 10.0, SleeperBerthHours: 1.0},
	MiddleDay: {DrivingHours: 9.0, OnDutyHours: 2.5, OffDutyHours: 10.0, SleeperBerthHours: 2.5},
	LastDay:   {DrivingHours: 8.0, OnDutyHours: 3.0, OffDutyHours: 10.0, SleeperBerthHours: 3.0},
}

// TotalDays is the number of calendar days a trip of the given duration spans.
// Always at least one.
func TotalDays(totalEstimatedDurationHours float64) int {
	return max(1, int(math.Ceil(totalEstimatedDurationHours/24)))
}

// Allocate returns the duty-hour breakdown for dayIndex of a totalDays trip.
// A shortfall below a full day is added to off-duty time. The single-day row
// already exceeds 24 hours; it is returned as is and the synthesizer clips
// the day at the next 06:00.
func Allocate(dayIndex, totalDays int) domain.DailyAllocation {
	return allocateRole(RoleOf(dayIndex, totalDays), FederalPropertyCarrying.HoursPerLogDay)
}

func allocateRole(role DayRole, dayHours float64) domain.DailyAllocation {
	a := allocationTable[role]
	if total := a.Total(); total < dayHours {
		a.OffDutyHours += dayHours - total
	}
	return a
}
