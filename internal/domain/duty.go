package domain

import "time"

// DutyStatus is one of the four regulated duty states.
type DutyStatus string

const (
	StatusOffDuty      DutyStatus = "off_duty"
	StatusSleeperBerth DutyStatus = "sleeper_berth"
	StatusDriving      DutyStatus = "driving"
	StatusOnDuty       DutyStatus = "on_duty"
)

// Title returns the status the way it is printed on a paper log.
func (s DutyStatus) Title() string {
	switch s {
	case StatusOffDuty:
		return "Off Duty"
	case StatusSleeperBerth:
		return "Sleeper Berth"
	case StatusDriving:
		return "Driving"
	case StatusOnDuty:
		return "On Duty"
	default:
		return string(s)
	}
}

// DutySegment is one contiguous interval of a single duty status.
// Times are naive local clock times anchored to the log date.
type DutySegment struct {
	StartTime time.Time
	EndTime   time.Time
	Status    DutyStatus
	Location  string
	Remarks   string
}

func (s DutySegment) Duration() time.Duration { return s.EndTime.Sub(s.StartTime) }
