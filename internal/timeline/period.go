package timeline

import "fmt"

// Period identifies one of the three fixed 8-hour shift windows of an
// operating day. The wire values (1, 2, 3) match what the end-of-shift
// form submits.
type Period int

const (
	PeriodFirst Period = iota + 1
	PeriodSecond
	PeriodThird
)

// ParsePeriod validates a raw period value from a shift record.
func ParsePeriod(n int) (Period, bool) {
	switch Period(n) {
	case PeriodFirst, PeriodSecond, PeriodThird:
		return Period(n), true
	}
	return 0, false
}

func (p Period) String() string {
	switch p {
	case PeriodFirst:
		return "FIRST"
	case PeriodSecond:
		return "SECOND"
	case PeriodThird:
		return "THIRD"
	}
	return fmt.Sprintf("Period(%d)", int(p))
}
