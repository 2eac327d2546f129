package hos

import (
	"fmt"
	"time"

	"trip-log-service/internal/domain"
)

// DayStart anchors a log date at the ruleset's start hour, dropping any
// clock component of date. Log times are naive clock times, so the result is
// expressed in UTC where every day is 24 hours long.
func (r Ruleset) DayStart(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, r.DayStartHour, 0, 0, 0, time.UTC)
}

// Synthesize lays out a day's allocation as contiguous duty segments from
// 06:00 on logDate to 06:00 the next day.
func Synthesize(logDate time.Time, a domain.DailyAllocation, dayIndex, totalDays int) []domain.DutySegment {
	return FederalPropertyCarrying.synthesize(logDate, a, RoleOf(dayIndex, totalDays))
}

func (r Ruleset) synthesize(logDate time.Time, a domain.DailyAllocation, role DayRole) []domain.DutySegment {
	start := r.DayStart(logDate)
	b := &segmentBuilder{
		cursor: start,
		end:    r.DayStart(logDate.AddDate(0, 0, 1)),
	}

	b.add(hoursToDuration(r.PickupHours), domain.StatusOnDuty, "Terminal", pickupRemarks(role, r.PickupHours))

	if a.DrivingHours > r.BreakAfterDrivingHours {
		first := r.BreakAfterDrivingHours
		rest := a.DrivingHours - first
		b.add(hoursToDuration(first), domain.StatusDriving, "En route",
			fmt.Sprintf("Driving for %.1f hours", first))
		b.add(r.BreakDuration, domain.StatusOffDuty, "Rest Area",
			fmt.Sprintf("MANDATORY %.0f-minute break after %.0f hours driving", r.BreakDuration.Minutes(), first))
		if rest > 0 {
			b.add(hoursToDuration(rest), domain.StatusDriving, "En route",
				fmt.Sprintf("Driving for %.1f hours (after break)", rest))
		}
	} else {
		b.add(hoursToDuration(a.DrivingHours), domain.StatusDriving, "En route",
			fmt.Sprintf("Driving for %.1f hours", a.DrivingHours))
	}

	if onDuty := a.OnDutyHours - r.PickupHours; onDuty > 0 {
		b.add(hoursToDuration(onDuty), domain.StatusOnDuty, "Various Locations",
			fmt.Sprintf("On duty - fuel stops, deliveries, paperwork (%.1f hours)", onDuty))
	}

	if a.SleeperBerthHours > 0 {
		b.add(hoursToDuration(a.SleeperBerthHours), domain.StatusSleeperBerth, "Rest Area",
			fmt.Sprintf("Sleeper berth - rest period (%.1f hours)", a.SleeperBerthHours))
	}

	if a.OffDutyHours > 0 {
		b.add(hoursToDuration(a.OffDutyHours), domain.StatusOffDuty, "Terminal/Rest Area",
			fmt.Sprintf("Off duty - rest period (%.1f hours)", a.OffDutyHours))
	}

	if remaining := b.end.Sub(b.cursor); remaining > 0 {
		b.add(remaining, domain.StatusOffDuty, "Terminal",
			fmt.Sprintf("Off duty - end of day (remaining %.1f hours)", remaining.Hours()))
	}

	return b.segments
}

func pickupRemarks(role DayRole, hours float64) string {
	switch role {
	case SingleDay, FirstDay:
		return fmt.Sprintf("On duty - pickup and pre-trip inspection (%.0f hour)", hours)
	case LastDay:
		return "On duty - continue trip to dropoff"
	default:
		return "On duty - continue trip"
	}
}

// segmentBuilder appends back-to-back segments and never passes end.
// A block that would cross end is cut short; blocks after it are dropped.
type segmentBuilder struct {
	cursor   time.Time
	end      time.Time
	segments []domain.DutySegment
}

func (b *segmentBuilder) add(d time.Duration, status domain.DutyStatus, location, remarks string) {
	if d <= 0 || !b.cursor.Before(b.end) {
		return
	}
	stop := b.cursor.Add(d)
	if stop.After(b.end) {
		stop = b.end
	}
	b.segments = append(b.segments, domain.DutySegment{
		StartTime: b.cursor,
		EndTime:   stop,
		Status:    status,
		Location:  location,
		Remarks:   remarks,
	})
	b.cursor = stop
}
