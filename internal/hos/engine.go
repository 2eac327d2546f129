package hos

import (
	"fmt"
	"math"
	"time"

	"trip-log-service/internal/domain"
)

// LogHeader is printed at the top of every daily log.
type LogHeader struct {
	DriverName    string
	CarrierName   string
	VehicleNumber string
}

var DefaultLogHeader = LogHeader{
	DriverName:    "Driver",
	CarrierName:   "Carrier",
	VehicleNumber: "Truck-001",
}

// Engine assembles trip logs. It holds no mutable state and is safe for
// concurrent use by independent trips.
type Engine struct {
	rules     Ruleset
	evaluator *Evaluator
	header    LogHeader
}

type Option func(*engineOptions)

type engineOptions struct {
	history DutyHistory
	offDuty OffDutyHistory
	header  LogHeader
}

// WithDutyHistory replaces the flat 8 hours/day assumption for prior days.
func WithDutyHistory(h DutyHistory) Option {
	return func(o *engineOptions) { o.history = h }
}

// WithOffDutyHistory lets a caller with off-duty records report restarts.
func WithOffDutyHistory(h OffDutyHistory) Option {
	return func(o *engineOptions) { o.offDuty = h }
}

func WithLogHeader(h LogHeader) Option {
	return func(o *engineOptions) {
		if h.DriverName != "" {
			o.header.DriverName = h.DriverName
		}
		if h.CarrierName != "" {
			o.header.CarrierName = h.CarrierName
		}
		if h.VehicleNumber != "" {
			o.header.VehicleNumber = h.VehicleNumber
		}
	}
}

func NewEngine(rules Ruleset, opts ...Option) *Engine {
	o := engineOptions{header: DefaultLogHeader}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		rules:     rules,
		evaluator: NewEvaluator(rules, o.history, o.offDuty),
		header:    o.header,
	}
}

func (e *Engine) Rules() Ruleset { return e.rules }

// GenerateTripLogs uses the federal 70-hour ruleset and default history.
func GenerateTripLogs(currentCycleUsedHours, totalEstimatedDurationHours float64, today time.Time) ([]domain.DailyLog, error) {
	return NewEngine(FederalPropertyCarrying).GenerateTripLogs(currentCycleUsedHours, totalEstimatedDurationHours, today)
}

// GenerateLogs is GenerateTripLogs over a TripContext.
func (e *Engine) GenerateLogs(trip domain.TripContext, today time.Time) ([]domain.DailyLog, error) {
	if math.IsNaN(trip.TotalDistanceMiles) || trip.TotalDistanceMiles < 0 {
		return nil, domain.ValidationError{Field: "total_distance_miles", Msg: "must be >= 0"}
	}
	return e.GenerateTripLogs(trip.CurrentCycleUsedHours, trip.TotalEstimatedDurationHours, today)
}

// GenerateTripLogs returns one log per calendar day, the first dated today.
// Log dates keep today's calendar date and are expressed in UTC.
// Input is rejected with domain.ErrInvalidInput before any day is built.
func (e *Engine) GenerateTripLogs(currentCycleUsedHours, totalEstimatedDurationHours float64, today time.Time) ([]domain.DailyLog, error) {
	if err := e.validate(currentCycleUsedHours, totalEstimatedDurationHours); err != nil {
		return nil, err
	}

	y, m, d := today.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	totalDays := TotalDays(totalEstimatedDurationHours)
	logs := make([]domain.DailyLog, 0, totalDays)
	cycleUsed := currentCycleUsedHours
	for day := range totalDays {
		log := e.dailyLog(first.AddDate(0, 0, day), day, totalDays, cycleUsed)
		cycleUsed = log.CycleHoursUsed
		logs = append(logs, log)
	}
	return logs, nil
}

func (e *Engine) validate(cycleUsed, duration float64) error {
	if math.IsNaN(cycleUsed) || cycleUsed < 0 || cycleUsed > e.rules.MaxCycleInputHours {
		return domain.ValidationError{
			Field: "current_cycle_used",
			Msg:   fmt.Sprintf("must be between 0 and %.0f hours", e.rules.MaxCycleInputHours),
		}
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return domain.ValidationError{
			Field: "total_estimated_duration",
			Msg:   "must be a positive number of hours",
		}
	}
	if maxHours := float64(e.rules.MaxTripDays) * e.rules.HoursPerLogDay; duration > maxHours {
		return domain.ValidationError{
			Field: "total_estimated_duration",
			Msg:   fmt.Sprintf("must not exceed %d days (%.0f hours)", e.rules.MaxTripDays, maxHours),
		}
	}
	return nil
}

func (e *Engine) dailyLog(logDate time.Time, day, totalDays int, priorCycleUsed float64) domain.DailyLog {
	role := RoleOf(day, totalDays)
	a := allocateRole(role, e.rules.HoursPerLogDay)

	restart := e.evaluator.CheckRestart(logDate, priorCycleUsed, a.OnDutyHours)
	cycle := e.evaluator.RollingCycle(logDate, a.OnDutyHours)
	sleeper := e.evaluator.SleeperBerth(a, role)
	compliance := e.evaluator.Violations(a, cycle, sleeper)

	used := restart.CycleHoursUsed
	return domain.DailyLog{
		LogDate:          logDate,
		DayIndex:         day,
		DriverName:       e.header.DriverName,
		CarrierName:      e.header.CarrierName,
		VehicleNumber:    e.header.VehicleNumber,
		Allocation:       a,
		RollingCycle:     cycle,
		SleeperBerth:     sleeper,
		Restart:          restart,
		Compliance:       compliance,
		Segments:         e.rules.synthesize(logDate, a, role),
		CycleHoursUsed:   used,
		TotalOnDuty7Days: min(e.rules.CycleLimitHours, used),
		TotalOnDuty5Days: min(e.rules.ShortCycleLimitHours, used),
		TotalOnDuty6Days: min(e.rules.ShortCycleLimitHours, used),
	}
}
