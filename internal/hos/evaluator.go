package hos

import (
	"fmt"
	"time"

	"trip-log-service/internal/domain"
)

// Evaluator applies the compliance checks for one day.
type Evaluator struct {
	Rules   Ruleset
	History DutyHistory
	OffDuty OffDutyHistory
}

// NewEvaluator falls back to the default history assumptions when either
// provider is nil.
func NewEvaluator(rules Ruleset, history DutyHistory, offDuty OffDutyHistory) *Evaluator {
	if history == nil {
		history = DefaultHistory
	}
	if offDuty == nil {
		offDuty = NoRestartHistory{}
	}
	return &Evaluator{Rules: rules, History: history, OffDuty: offDuty}
}

// CheckRestart decides the cycle usage after logDate. A detected restart
// drops everything before today; otherwise today's on-duty hours are added
// to the prior usage.
func (e *Evaluator) CheckRestart(logDate time.Time, priorCycleUsed, onDutyHours float64) domain.RestartResult {
	if e.OffDuty.HasRestart(logDate, e.Rules.RestartHours) {
		return domain.RestartResult{
			RestartApplies: true,
			CycleReset:     true,
			CycleHoursUsed: onDutyHours,
			Reason:         fmt.Sprintf("%.0f-hour consecutive off-duty period completed", e.Rules.RestartHours),
		}
	}
	return domain.RestartResult{
		CycleHoursUsed: priorCycleUsed + onDutyHours,
		Reason:         fmt.Sprintf("No %.0f-hour consecutive off-duty period found", e.Rules.RestartHours),
	}
}

// RollingCycle sums the cycle window ending on logDate. Today contributes its
// own on-duty hours, earlier days come from History. The short window drops
// the oldest days of the long one.
func (e *Evaluator) RollingCycle(logDate time.Time, onDutyHours float64) domain.RollingCycleResult {
	days := e.Rules.CycleDays
	window := make([]float64, days)
	for i := range days {
		if i == days-1 {
			window[i] = onDutyHours
			continue
		}
		window[i] = e.History.OnDutyHours(logDate.AddDate(0, 0, i-(days-1)))
	}

	long := sum(window)
	short := sum(window[max(0, days-e.Rules.ShortCycleDays):])

	return domain.RollingCycleResult{
		Rolling8DayHours:   long,
		Rolling7DayHours:   short,
		HoursAvailable70hr: max(0, e.Rules.CycleLimitHours-long),
		HoursAvailable60hr: max(0, e.Rules.ShortCycleLimitHours-short),
		WouldExceed70hr:    long > e.Rules.CycleLimitHours,
		WouldExceed60hr:    short > e.Rules.ShortCycleLimitHours,
	}
}

// SleeperBerth resolves how the day's rest is taken. Trip bookends take one
// consecutive off-duty block; middle days use the 7+3 split.
func (e *Evaluator) SleeperBerth(a domain.DailyAllocation, role DayRole) domain.SleeperBerthResult {
	total := a.RestHours()
	if total < e.Rules.MinRestHours {
		return domain.SleeperBerthResult{
			OffDutyHours:      a.OffDutyHours,
			SleeperBerthHours: a.SleeperBerthHours,
			SplitType:         domain.SplitNone,
			Narrative:         "VIOLATION - Insufficient rest hours",
		}
	}

	if role.Bookend() {
		off := max(e.Rules.MinRestHours, a.OffDutyHours)
		return domain.SleeperBerthResult{
			OffDutyHours:      off,
			SleeperBerthHours: max(0, total-off),
			SplitType:         domain.SplitNone,
			Compliant:         true,
			Narrative:         fmt.Sprintf("COMPLIANT - %.0f consecutive hours off-duty", e.Rules.MinRestHours),
		}
	}

	return e.splitRest(total)
}

// splitRest divides total rest hours into a sleeper-berth and an off-duty
// period. The 7+2 branch only runs when total is below the minimum rest.
func (e *Evaluator) splitRest(total float64) domain.SleeperBerthResult {
	r := e.Rules
	if total >= r.MinRestHours {
		sleeper := r.SleeperBerthMinHours
		off := r.SplitOffDutyHours
		if surplus := total - (sleeper + off); surplus > 0 {
			off += surplus * r.SurplusOffDutyShare
			sleeper += surplus * (1 - r.SurplusOffDutyShare)
		}
		return domain.SleeperBerthResult{
			OffDutyHours:      off,
			SleeperBerthHours: sleeper,
			SplitApplied:      true,
			SplitType:         domain.SplitSevenThree,
			Compliant:         true,
			Narrative:         "COMPLIANT - Sleeper berth split (7+3)",
		}
	}

	return domain.SleeperBerthResult{
		OffDutyHours:      max(r.SplitShortOffDutyHours, total-r.SleeperBerthMinHours),
		SleeperBerthHours: r.SleeperBerthMinHours,
		SplitApplied:      true,
		SplitType:         domain.SplitSevenTwo,
		Compliant:         true,
		Narrative:         "COMPLIANT - Sleeper berth split (7+2)",
	}
}

// Violations re-checks the raw allocation against the fixed thresholds.
//
// Driving past the break threshold yields both a break WARNING and a
// CRITICAL consecutive-driving entry, even though Synthesize always inserts
// the break. Both are kept so the log matches the rule table.
func (e *Evaluator) Violations(
	a domain.DailyAllocation,
	cycle domain.RollingCycleResult,
	sleeper domain.SleeperBerthResult,
) domain.ComplianceVerdict {
	r := e.Rules
	var vs []domain.Violation
	add := func(t domain.ViolationType, sev domain.Severity, rule, format string, args ...any) {
		vs = append(vs, domain.Violation{
			Type:        t,
			Severity:    sev,
			Description: fmt.Sprintf(format, args...),
			Rule:        rule,
		})
	}

	if a.DrivingHours > r.MaxDrivingHours {
		add(domain.ViolationDrivingLimit, domain.SeverityCritical,
			fmt.Sprintf("%.0f-Hour Driving Limit", r.MaxDrivingHours),
			"Exceeded %.0f-hour driving limit: %.1f hours", r.MaxDrivingHours, a.DrivingHours)
	}

	if a.OnDutyHours > r.MaxOnDutyWindowHours {
		add(domain.ViolationOnDutyWindow, domain.SeverityCritical,
			fmt.Sprintf("%.0f-Hour On-Duty Window", r.MaxOnDutyWindowHours),
			"Exceeded %.0f-hour on-duty window: %.1f hours", r.MaxOnDutyWindowHours, a.OnDutyHours)
	}

	if a.DrivingHours > r.BreakAfterDrivingHours {
		add(domain.ViolationBreakRequirement, domain.SeverityWarning,
			fmt.Sprintf("%.0f-Minute Break After %.0f Hours", r.BreakDuration.Minutes(), r.BreakAfterDrivingHours),
			"%.0f-minute break required after %.1f hours driving", r.BreakDuration.Minutes(), a.DrivingHours)
	}

	if rest := a.RestHours(); rest < r.MinRestHours {
		add(domain.ViolationRestRequirement, domain.SeverityCritical,
			fmt.Sprintf("%.0f-Hour Rest Requirement", r.MinRestHours),
			"Insufficient rest hours: %.1f hours (minimum %.0f required)", rest, r.MinRestHours)
	}

	switch r.PrimaryCycle {
	case Cycle60Hour7Day:
		if cycle.WouldExceed60hr {
			add(domain.ViolationCycleLimit, domain.SeverityCritical,
				fmt.Sprintf("%.0f-Hour/%d-Day Cycle", r.ShortCycleLimitHours, r.ShortCycleDays),
				"Would exceed %.0f-hour/%d-day cycle: %.1f hours", r.ShortCycleLimitHours, r.ShortCycleDays, cycle.Rolling7DayHours)
		}
	default:
		if cycle.WouldExceed70hr {
			add(domain.ViolationCycleLimit, domain.SeverityCritical,
				fmt.Sprintf("%.0f-Hour/%d-Day Cycle", r.CycleLimitHours, r.CycleDays),
				"Would exceed %.0f-hour/%d-day cycle: %.1f hours", r.CycleLimitHours, r.CycleDays, cycle.Rolling8DayHours)
		}
	}

	if !sleeper.Compliant {
		add(domain.ViolationSleeperBerth, domain.SeverityCritical,
			"Sleeper Berth Provisions", "%s", sleeper.Narrative)
	}

	if a.DrivingHours > r.BreakAfterDrivingHours {
		add(domain.ViolationConsecutiveDriving, domain.SeverityCritical,
			fmt.Sprintf("%.0f-Minute Break After %.0f Hours Driving", r.BreakDuration.Minutes(), r.BreakAfterDrivingHours),
			"Drove %.1f consecutive hours without required %.0f-minute break", a.DrivingHours, r.BreakDuration.Minutes())
	}

	return verdict(vs)
}

func verdict(vs []domain.Violation) domain.ComplianceVerdict {
	count := 0
	for _, v := range vs {
		if v.Severity != domain.SeverityWarning {
			count++
		}
	}

	out := domain.ComplianceVerdict{
		ViolationCount:          count,
		IsCompliant:             count == 0,
		RequiresImmediateAction: count > 2,
		Violations:              vs,
	}
	switch {
	case count == 0:
		out.Status = domain.Compliant
		out.OverallSeverity = domain.SeverityNone
	case count <= 2:
		out.Status = domain.MinorViolations
		out.OverallSeverity = domain.SeverityWarning
	default:
		out.Status = domain.MajorViolations
		out.OverallSeverity = domain.SeverityCritical
	}
	if out.Violations == nil {
		out.Violations = []domain.Violation{}
	}
	return out
}

func sum(xs []float64) float64 {
	var t float64
	for _, x := range xs {
		t += x
	}
	return t
}
