package hos

// DayRole is a day's position within the trip. It is the only input the
// allocator and the synthesizer branch on.
type DayRole int

const (
	SingleDay DayRole = iota
	FirstDay
	MiddleDay
	LastDay
)

// RoleOf classifies dayIndex within a trip of totalDays days.
func RoleOf(dayIndex, totalDays int) DayRole {
	switch {
	case totalDays <= 1:
		return SingleDay
	case dayIndex <= 0:
		return FirstDay
	case dayIndex >= totalDays-1:
		return LastDay
	default:
		return MiddleDay
	}
}

// Bookend reports whether the day starts or ends the trip.
func (r DayRole) Bookend() bool { return r != MiddleDay }

func (r DayRole) String() string {
	switch r {
	case SingleDay:
		return "single"
	case FirstDay:
		return "first"
	case MiddleDay:
		return "middle"
	case LastDay:
		return "last"
	default:
		return "unknown"
	}
}
