package hos

import (
	"fmt"
	"strings"
	"time"
)

// CycleRule selects which rolling cycle raises a CYCLE_LIMIT violation.
type CycleRule int

const (
	Cycle70Hour8Day CycleRule = iota
	Cycle60Hour7Day
)

// Ruleset holds every regulatory threshold and planning constant the engine
// uses. Swapping the value swaps the jurisdiction.
type Ruleset struct {
	Name string

	MaxDrivingHours        float64
	MaxOnDutyWindowHours   float64
	MinRestHours           float64
	BreakAfterDrivingHours float64
	BreakDuration          time.Duration

	CycleLimitHours      float64
	CycleDays            int
	ShortCycleLimitHours float64
	ShortCycleDays       int
	PrimaryCycle         CycleRule
	RestartHours         float64

	SleeperBerthMinHours   float64
	SplitOffDutyHours      float64
	SplitShortOffDutyHours float64
	SurplusOffDutyShare    float64

	DayStartHour int
	PickupHours  float64

	FuelIntervalMiles  float64
	FuelStopMinutes    int
	AverageSpeedMPH    float64
	RestIntervalHours  float64
	RestStopHours      float64
	HoursPerLogDay     float64
	MaxCycleInputHours float64
	// Longest trip, in log days, the engine will plan.
	MaxTripDays int
}

// FederalPropertyCarrying is the US property-carrying ruleset on the 70-hour/8-day cycle.
var FederalPropertyCarrying = Ruleset{
	Name: "us-70-8",

	MaxDrivingHours:        11,
	MaxOnDutyWindowHours:   14,
	MinRestHours:           10,
	BreakAfterDrivingHours: 8,
	BreakDuration:          30 * time.Minute,

	CycleLimitHours:      70,
	CycleDays:            8,
	ShortCycleLimitHours: 60,
	ShortCycleDays:       7,
	PrimaryCycle:         Cycle70Hour8Day,
	RestartHours:         34,

	SleeperBerthMinHours:   7,
	SplitOffDutyHours:      3,
	SplitShortOffDutyHours: 2,
	SurplusOffDutyShare:    0.6,

	DayStartHour: 6,
	PickupHours:  1,

	FuelIntervalMiles:  1000,
	FuelStopMinutes:    30,
	AverageSpeedMPH:    60,
	RestIntervalHours:  8,
	RestStopHours:      10,
	HoursPerLogDay:     24,
	MaxCycleInputHours: 70,
	MaxTripDays:        30,
}

// FederalPropertyCarrying60 is the same ruleset for carriers that do not
// operate every day of the week.
var FederalPropertyCarrying60 = func() Ruleset {
	r := FederalPropertyCarrying
	r.Name = "us-60-7"
	r.PrimaryCycle = Cycle60Hour7Day
	return r
}()

// RulesetByName resolves a configured ruleset name.
func RulesetByName(name string) (Ruleset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FederalPropertyCarrying.Name:
		return FederalPropertyCarrying, nil
	case FederalPropertyCarrying60.Name:
		return FederalPropertyCarrying60, nil
	default:
		return Ruleset{}, fmt.Errorf("unknown hos ruleset %q", name)
	}
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
