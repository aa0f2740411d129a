package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clockTime is a local wall-clock time of day ("HH:MM").
type clockTime struct {
	hour   int
	minute int
}

func parseClock(s string) (clockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return clockTime{}, fmt.Errorf("invalid clock time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return clockTime{}, fmt.Errorf("invalid hour in clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return clockTime{}, fmt.Errorf("invalid minute in clock time %q", s)
	}
	return clockTime{hour: h, minute: m}, nil
}

// on anchors the clock time to the calendar day of date in loc.
func (c clockTime) on(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), c.hour, c.minute, 0, 0, loc)
}

// WindowTable holds the three nominal shift windows of an operating day,
// anchored to a local time zone. The operating day starts at DayStart
// (07:00 in production) rather than at midnight.
type WindowTable struct {
	loc      *time.Location
	dayStart clockTime
	windows  map[Period][2]clockTime
}

// WindowSpec is one nominal shift window as configured ("HH:MM" bounds).
type WindowSpec struct {
	Period int
	Start  string
	End    string
}

// NewWindowTable builds a WindowTable from configured window specs. All
// three periods must be present exactly once.
func NewWindowTable(loc *time.Location, dayStart string, specs []WindowSpec) (WindowTable, error) {
	if loc == nil {
		return WindowTable{}, fmt.Errorf("window table requires a time zone")
	}
	ds, err := parseClock(dayStart)
	if err != nil {
		return WindowTable{}, fmt.Errorf("day start: %w", err)
	}

	windows := make(map[Period][2]clockTime, 3)
	for _, spec := range specs {
		p, ok := ParsePeriod(spec.Period)
		if !ok {
			return WindowTable{}, fmt.Errorf("unknown shift period %d", spec.Period)
		}
		if _, dup := windows[p]; dup {
			return WindowTable{}, fmt.Errorf("duplicate window for period %s", p)
		}
		start, err := parseClock(spec.Start)
		if err != nil {
			return WindowTable{}, fmt.Errorf("period %s start: %w", p, err)
		}
		end, err := parseClock(spec.End)
		if err != nil {
			return WindowTable{}, fmt.Errorf("period %s end: %w", p, err)
		}
		windows[p] = [2]clockTime{start, end}
	}
	for _, p := range []Period{PeriodFirst, PeriodSecond, PeriodThird} {
		if _, ok := windows[p]; !ok {
			return WindowTable{}, fmt.Errorf("missing window for period %s", p)
		}
	}

	return WindowTable{loc: loc, dayStart: ds, windows: windows}, nil
}

// Location returns the table's time zone.
func (t WindowTable) Location() *time.Location {
	return t.loc
}

// OperatingDay returns the 24-hour reconciliation window containing the
// given calendar date: [dayStart, dayStart next day).
func (t WindowTable) OperatingDay(date time.Time) Interval {
	start := t.dayStart.on(date, t.loc)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// Resolve returns the nominal window for a period on the given operating
// date. A window whose end does not come after its start wraps past
// midnight and ends on the next calendar day (the third period in
// production, 23:00-07:00).
func (t WindowTable) Resolve(p Period, date time.Time) Interval {
	w := t.windows[p]
	start := w[0].on(date, t.loc)
	end := w[1].on(date, t.loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return Interval{Start: start, End: end}
}
