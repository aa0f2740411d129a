package timeline

import (
	"fmt"
	"time"
)

// netDuration computes the productive duration of one normalized shift.
//
// The hour-meter delta against the previous chronological reading is the
// preferred measure: it reflects actual equipment usage rather than
// clock time. Without a baseline, or when the counter went backwards
// (reset or entry error), the wall-clock length of the normalized
// interval is used instead. Determined-stoppage overlap is subtracted
// either way, and the result never goes below zero.
func netDuration(shift normalizedShift, prevCounter *float64, stops []determinedStop) (time.Duration, *Warning) {
	var raw time.Duration
	var warning *Warning

	switch {
	case shift.entry.CounterEnd == nil || prevCounter == nil:
		// Missing baseline is expected for a vehicle's first record,
		// not a data-quality problem.
		raw = shift.interval.Duration()
	case *shift.entry.CounterEnd < *prevCounter:
		raw = shift.interval.Duration()
		warning = &Warning{
			Code: WarnNegativeCounterDelta,
			Detail: fmt.Sprintf("counter for %s shift went from %.2f to %.2f, using wall clock",
				shift.period, *prevCounter, *shift.entry.CounterEnd),
		}
	default:
		hours := *shift.entry.CounterEnd - *prevCounter
		raw = time.Duration(hours * float64(time.Hour))
	}

	for _, stop := range stops {
		raw -= shift.interval.Intersect(stop.interval)
	}
	if raw < 0 {
		raw = 0
	}
	return raw, warning
}
