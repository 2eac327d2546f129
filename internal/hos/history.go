package hos

import "time"

// DutyHistory reports on-duty hours recorded for a past calendar day.
// Callers holding real records supply their own implementation.
type DutyHistory interface {
	OnDutyHours(date time.Time) float64
}

// OffDutyHistory reports whether a qualifying restart (consecutive off-duty
// period of at least minHours) ended before the given log date.
type OffDutyHistory interface {
	HasRestart(logDate time.Time, minHours float64) bool
}

// DefaultHistoricalAssumption stands in for missing records by assuming a
// flat number of on-duty hours on every prior day.
type DefaultHistoricalAssumption struct {
	HoursPerDay float64
}

// DefaultHistory is the flat 8 hours/day assumption.
var DefaultHistory = DefaultHistoricalAssumption{HoursPerDay: 8.0}

func (d DefaultHistoricalAssumption) OnDutyHours(time.Time) float64 { return d.HoursPerDay }

// NoRestartHistory never reports a restart. Without off-duty records the
// 34-hour restart cannot be detected; this is a known gap, not a rule.
type NoRestartHistory struct{}

func (NoRestartHistory) HasRestart(time.Time, float64) bool { return false }

// DutyHistoryFunc adapts a function to DutyHistory.
type DutyHistoryFunc func(date time.Time) float64

func (f DutyHistoryFunc) OnDutyHours(date time.Time) float64 { return f(date) }

// OffDutyHistoryFunc adapts a function to OffDutyHistory.
type OffDutyHistoryFunc func(logDate time.Time, minHours float64) bool

func (f OffDutyHistoryFunc) HasRestart(logDate time.Time, minHours float64) bool {
	return f(logDate, minHours)
}
