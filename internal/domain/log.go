package domain

import "time"

// Hours assigned to each duty category for one calendar day.
type DailyAllocation struct {
	DrivingHours      float64
	OnDutyHours       float64
	OffDutyHours      float64
	SleeperBerthHours float64
}

func (a DailyAllocation) Total() float64 {
	return a.DrivingHours + a.OnDutyHours + a.OffDutyHours + a.SleeperBerthHours
}

// RestHours is the time not spent driving or on duty.
func (a DailyAllocation) RestHours() float64 {
	return a.OffDutyHours + a.SleeperBerthHours
}

// Rolling 70/8 and 60/7 window totals for one log date.
type RollingCycleResult struct {
	Rolling8DayHours   float64
	Rolling7DayHours   float64
	HoursAvailable70hr float64
	HoursAvailable60hr float64
	WouldExceed70hr    bool
	WouldExceed60hr    bool
}

type SplitType string

const (
	SplitNone       SplitType = "NONE"
	SplitSevenThree SplitType = "7+3"
	SplitSevenTwo   SplitType = "7+2"
)

// Outcome of applying the sleeper-berth provisions to a day's rest time.
type SleeperBerthResult struct {
	OffDutyHours      float64
	SleeperBerthHours float64
	SplitApplied      bool
	SplitType         SplitType
	Compliant         bool
	Narrative         string
}

// Outcome of the 34-hour restart check.
type RestartResult struct {
	RestartApplies bool
	CycleReset     bool
	CycleHoursUsed float64
	Reason         string
}

type ViolationType string

const (
	ViolationDrivingLimit       ViolationType = "DRIVING_LIMIT"
	ViolationOnDutyWindow       ViolationType = "ON_DUTY_WINDOW"
	ViolationBreakRequirement   ViolationType = "BREAK_REQUIREMENT"
	ViolationRestRequirement    ViolationType = "REST_REQUIREMENT"
	ViolationCycleLimit         ViolationType = "CYCLE_LIMIT"
	ViolationSleeperBerth       ViolationType = "SLEEPER_BERTH"
	ViolationConsecutiveDriving ViolationType = "CONSECUTIVE_DRIVING"
)

type Severity string

const (
	SeverityNone     Severity = "NONE"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

type Violation struct {
	Type        ViolationType
	Severity    Severity
	Description string
	Rule        string
}

type ComplianceStatus string

const (
	Compliant       ComplianceStatus = "COMPLIANT"
	MinorViolations ComplianceStatus = "MINOR_VIOLATIONS"
	MajorViolations ComplianceStatus = "MAJOR_VIOLATIONS"
)

// ComplianceVerdict summarizes the violations found for one day.
// ViolationCount excludes WARNING entries.
type ComplianceVerdict struct {
	Status                  ComplianceStatus
	ViolationCount          int
	OverallSeverity         Severity
	IsCompliant             bool
	RequiresImmediateAction bool
	Violations              []Violation
}

// DailyLog is the complete record of one calendar day of a trip.
// It is built once and not mutated afterwards.
type DailyLog struct {
	ID            int64
	LogDate       time.Time
	DayIndex      int
	DriverName    string
	CarrierName   string
	VehicleNumber string

	Allocation   DailyAllocation
	RollingCycle RollingCycleResult
	SleeperBerth SleeperBerthResult
	Restart      RestartResult
	Compliance   ComplianceVerdict
	Segments     []DutySegment

	CycleHoursUsed   float64
	TotalOnDuty7Days float64
	TotalOnDuty5Days float64
	TotalOnDuty6Days float64
}

func (l DailyLog) Violations() []Violation { return l.Compliance.Violations }
