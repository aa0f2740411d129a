package timeline

import (
	"fmt"
	"time"
)

// ShiftEntry is one driver's end-of-shift report for a vehicle on one
// operating day, as recorded by the attendance subsystem.
type ShiftEntry struct {
	Driver     string
	Phone      string
	Period     int // raw form value, validated during reconciliation
	Start      time.Time
	End        time.Time
	CounterEnd *float64 // hour-meter reading at end of shift, nil if not reported
	Comment    string
}

// normalizedShift is a shift entry clipped to its nominal window, ready
// for net-duration computation.
type normalizedShift struct {
	entry    ShiftEntry
	period   Period
	interval Interval
}

// normalizeShift resolves a raw shift entry against the window table for
// the given operating date. The returned warning is non-nil when the
// record had to be dropped; a dropped record contributes nothing to the
// timeline but never aborts the day's reconciliation.
func normalizeShift(entry ShiftEntry, date time.Time, table WindowTable) (normalizedShift, *Warning) {
	period, ok := ParsePeriod(entry.Period)
	if !ok {
		return normalizedShift{}, &Warning{
			Code:   WarnInvalidPeriod,
			Detail: fmt.Sprintf("shift of %s references unknown period %d", entry.Driver, entry.Period),
		}
	}

	raw := Interval{Start: entry.Start, End: entry.End}
	// A recorded end earlier than the start on the same calendar day is
	// an overnight shift (third period), not a malformed record: the end
	// belongs to the next day.
	if raw.End.Before(raw.Start) && period == PeriodThird {
		raw.End = raw.End.AddDate(0, 0, 1)
	}
	if !raw.Valid() {
		return normalizedShift{}, &Warning{
			Code:   WarnMalformedInterval,
			Detail: fmt.Sprintf("shift of %s (%s) ends before it starts", entry.Driver, period),
		}
	}

	// Clipping to the nominal window guards against data-entry errors
	// that place the record outside its shift.
	window := table.Resolve(period, date)
	clipped, ok := raw.Clip(window)
	if !ok || clipped.Duration() == 0 {
		return normalizedShift{}, &Warning{
			Code:   WarnOutsideShiftWindow,
			Detail: fmt.Sprintf("shift of %s lies entirely outside the %s window", entry.Driver, period),
		}
	}

	return normalizedShift{entry: entry, period: period, interval: clipped}, nil
}
