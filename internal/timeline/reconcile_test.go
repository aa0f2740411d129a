package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func tptr(t time.Time) *time.Time { return &t }

func testInput(t *testing.T, shifts []ShiftEntry, stoppages []StoppageEntry) Input {
	t.Helper()
	return Input{
		VehicleID: 7,
		Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Shifts:    shifts,
		Stoppages: stoppages,
		Windows:   newTestTable(t),
	}
}

// assertFullCoverage checks the core invariant: the union of segment
// spans covers the operating day exactly, with no gap and nothing
// outside it.
func assertFullCoverage(t *testing.T, result *Result) {
	t.Helper()
	require.NotEmpty(t, result.Segments)

	cursor := result.Day.Start
	for i, seg := range result.Segments {
		assert.False(t, seg.Start.Before(result.Day.Start), "segment %d starts before the day", i)
		assert.False(t, seg.End.After(result.Day.End), "segment %d ends after the day", i)
		assert.False(t, seg.Start.After(cursor), "gap before segment %d", i)
		if seg.End.After(cursor) {
			cursor = seg.End
		}
	}
	assert.True(t, cursor.Equal(result.Day.End), "coverage stops at %v instead of day end", cursor)
}

func TestReconcileStructuralErrors(t *testing.T) {
	valid := testInput(t, nil, nil)

	missingVehicle := valid
	missingVehicle.VehicleID = 0
	_, err := Reconcile(missingVehicle)
	assert.Error(t, err)

	missingDate := valid
	missingDate.Date = time.Time{}
	_, err = Reconcile(missingDate)
	assert.Error(t, err)

	missingWindows := valid
	missingWindows.Windows = WindowTable{}
	_, err = Reconcile(missingWindows)
	assert.Error(t, err)
}

func TestReconcileEmptyDay(t *testing.T) {
	result, err := Reconcile(testInput(t, nil, nil))
	require.NoError(t, err)

	require.Len(t, result.Segments, 1)
	assert.Equal(t, KindUndeterminedStop, result.Segments[0].Kind)
	assert.Equal(t, result.Day.Start, result.Segments[0].Start)
	assert.Equal(t, result.Day.End, result.Segments[0].End)

	for _, hours := range result.WorkedHours {
		assert.Zero(t, hours)
	}
	assert.Empty(t, result.Warnings)
	assertFullCoverage(t, result)
}

func TestReconcileCounterPreference(t *testing.T) {
	// Wall clock says 8h, the hour-meter says 6h. The meter wins.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0), CounterEnd: fptr(106)},
	}, nil)
	input.CounterBaseline = fptr(100)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, result.WorkedHours[PeriodFirst], 1e-9)
	assert.Empty(t, result.Warnings)
	assertFullCoverage(t, result)
}

func TestReconcileWallClockFallback(t *testing.T) {
	// No baseline: fall back to the normalized interval's length.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0), CounterEnd: fptr(106)},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodFirst], 1e-9)
	assert.Empty(t, result.Warnings, "missing baseline is expected, not a warning")
}

func TestReconcileNegativeCounterDelta(t *testing.T) {
	// Counter went backwards (reset): fall back to wall clock and warn.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0), CounterEnd: fptr(90)},
	}, nil)
	input.CounterBaseline = fptr(100)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodFirst], 1e-9)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnNegativeCounterDelta, result.Warnings[0].Code)
}

func TestReconcileCounterChaining(t *testing.T) {
	// Consecutive shifts chain off each other's readings, starting from
	// the pre-day baseline.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0), CounterEnd: fptr(106)},
		{Driver: "B. Driver", Phone: "0600000002", Period: 2, Start: at(15, 0), End: at(23, 0), CounterEnd: fptr(110)},
	}, nil)
	input.CounterBaseline = fptr(100)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, result.WorkedHours[PeriodFirst], 1e-9)
	assert.InDelta(t, 4.0, result.WorkedHours[PeriodSecond], 1e-9)
	assertFullCoverage(t, result)
}

func TestReconcileStoppageSubtraction(t *testing.T) {
	// 8h wall-clock shift minus a fully contained 1h stoppage = 7h net.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0)},
	}, []StoppageEntry{
		{Source: SourceTicket, Cause: "engine overheat", Start: at(10, 0), End: tptr(at(11, 0))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, result.WorkedHours[PeriodFirst], 1e-9)
	assertFullCoverage(t, result)
}

func TestReconcileNetNeverNegative(t *testing.T) {
	// A stoppage longer than the whole shift floors net time at zero.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0)},
	}, []StoppageEntry{
		{Source: SourceTicket, Cause: "gearbox", Start: at(6, 0), End: tptr(at(18, 0))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.Zero(t, result.WorkedHours[PeriodFirst])
	for _, hours := range result.WorkedHours {
		assert.GreaterOrEqual(t, hours, 0.0)
	}
}

func TestReconcileOvernightThirdShift(t *testing.T) {
	// A 23:00-07:00 shift spans into the next calendar date but counts
	// toward the originating operating day.
	start := at(23, 0)
	end := time.Date(2025, time.March, 11, 7, 0, 0, 0, time.UTC)
	input := testInput(t, []ShiftEntry{
		{Driver: "C. Night", Phone: "0600000003", Period: 3, Start: start, End: end},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodThird], 1e-9)
	assert.Empty(t, result.Warnings)
	assertFullCoverage(t, result)

	// The same shift recorded with naive same-day clock times (end
	// before start) is resolved identically.
	input = testInput(t, []ShiftEntry{
		{Driver: "C. Night", Phone: "0600000003", Period: 3, Start: at(23, 0), End: at(7, 0)},
	}, nil)
	result, err = Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodThird], 1e-9)
}

func TestReconcileMalformedShiftResilience(t *testing.T) {
	// One backwards record is dropped with a warning; the rest of the
	// day still reconciles with full coverage.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(15, 0), End: at(10, 0)},
		{Driver: "B. Driver", Phone: "0600000002", Period: 2, Start: at(15, 0), End: at(23, 0)},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnMalformedInterval, result.Warnings[0].Code)
	assert.Zero(t, result.WorkedHours[PeriodFirst])
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodSecond], 1e-9)
	assertFullCoverage(t, result)
}

func TestReconcileInvalidPeriod(t *testing.T) {
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 5, Start: at(7, 0), End: at(15, 0)},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnInvalidPeriod, result.Warnings[0].Code)
	assertFullCoverage(t, result)
}

func TestReconcileShiftOutsideWindow(t *testing.T) {
	// A first-period record entirely inside the second period's window
	// is a data-entry error: dropped, warned, day still covered.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(16, 0), End: at(18, 0)},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnOutsideShiftWindow, result.Warnings[0].Code)
	assert.Zero(t, result.WorkedHours[PeriodFirst])
	assertFullCoverage(t, result)
}

func TestReconcileShiftClippedToWindow(t *testing.T) {
	// Data entry spilling outside the nominal window is trimmed to it.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(6, 30), End: at(16, 0)},
	}, nil)

	result, err := Reconcile(input)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, result.WorkedHours[PeriodFirst], 1e-9)

	var work *Segment
	for i := range result.Segments {
		if result.Segments[i].Kind == KindWork {
			work = &result.Segments[i]
			break
		}
	}
	require.NotNil(t, work)
	assert.Equal(t, at(7, 0), work.Start)
	assert.Equal(t, at(15, 0), work.End)
}

func TestReconcileWorkBeforeStoppageOnTie(t *testing.T) {
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0)},
	}, []StoppageEntry{
		{Source: SourceForm, Cause: "refuelling", Start: at(7, 0), End: tptr(at(7, 45))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.Segments), 2)
	assert.Equal(t, KindWork, result.Segments[0].Kind)
	assert.Equal(t, KindDeterminedStop, result.Segments[1].Kind)
}

func TestReconcileOverlapsAreNotMerged(t *testing.T) {
	// A work interval and a stoppage inside it both survive intact: the
	// overlap was already discounted from net hours, and both records
	// explain their span of time.
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0)},
	}, []StoppageEntry{
		{Source: SourceTicket, Cause: "flat tyre", Start: at(10, 0), End: tptr(at(12, 0))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.Len(t, result.Segments, 3)

	assert.Equal(t, KindWork, result.Segments[0].Kind)
	assert.Equal(t, Interval{at(7, 0), at(15, 0)}, Interval{result.Segments[0].Start, result.Segments[0].End})

	assert.Equal(t, KindDeterminedStop, result.Segments[1].Kind)
	assert.Equal(t, Interval{at(10, 0), at(12, 0)}, Interval{result.Segments[1].Start, result.Segments[1].End})

	assert.Equal(t, KindUndeterminedStop, result.Segments[2].Kind)
	assert.Equal(t, at(15, 0), result.Segments[2].Start)
	assert.Equal(t, result.Day.End, result.Segments[2].End)
	assertFullCoverage(t, result)
}

func TestReconcileTicketAndFormBothSurface(t *testing.T) {
	// A ticket and a manual form for the same physical stoppage are kept
	// as two independent determined segments, by design.
	input := testInput(t, nil, []StoppageEntry{
		{Source: SourceTicket, Cause: "hydraulic leak", Start: at(9, 0), End: tptr(at(11, 0))},
		{Source: SourceForm, Cause: "hydraulic leak", Start: at(9, 0), End: tptr(at(10, 30))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)

	determined := 0
	for _, seg := range result.Segments {
		if seg.Kind == KindDeterminedStop {
			determined++
		}
	}
	assert.Equal(t, 2, determined)
	assertFullCoverage(t, result)
}

func TestReconcileOpenTicketRunsToDayEnd(t *testing.T) {
	input := testInput(t, nil, []StoppageEntry{
		{Source: SourceTicket, Cause: "engine down", Start: at(10, 0)},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)

	require.Len(t, result.Segments, 2)
	assert.Equal(t, KindUndeterminedStop, result.Segments[0].Kind)
	assert.Equal(t, KindDeterminedStop, result.Segments[1].Kind)
	assert.Equal(t, at(10, 0), result.Segments[1].Start)
	assert.Equal(t, result.Day.End, result.Segments[1].End)
	assertFullCoverage(t, result)
}

func TestReconcileOpenFormGetsDefaultDuration(t *testing.T) {
	input := testInput(t, nil, []StoppageEntry{
		{Source: SourceForm, Cause: "waiting for parts", Start: at(10, 0)},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)

	var stop *Segment
	for i := range result.Segments {
		if result.Segments[i].Kind == KindDeterminedStop {
			stop = &result.Segments[i]
			break
		}
	}
	require.NotNil(t, stop)
	assert.Equal(t, at(10, 0), stop.Start)
	assert.Equal(t, at(10, 30), stop.End)
	assertFullCoverage(t, result)
}

func TestReconcileMalformedStoppageDropped(t *testing.T) {
	input := testInput(t, nil, []StoppageEntry{
		{Source: SourceForm, Cause: "bad record", Start: at(11, 0), End: tptr(at(9, 0))},
	})

	result, err := Reconcile(input)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnMalformedInterval, result.Warnings[0].Code)
	assertFullCoverage(t, result)
}

func TestReconcileIdempotence(t *testing.T) {
	input := testInput(t, []ShiftEntry{
		{Driver: "A. Driver", Phone: "0600000001", Period: 1, Start: at(7, 0), End: at(15, 0), CounterEnd: fptr(106)},
		{Driver: "C. Night", Phone: "0600000003", Period: 3, Start: at(23, 0), End: at(7, 0), CounterEnd: fptr(112)},
	}, []StoppageEntry{
		{Source: SourceTicket, Cause: "engine overheat", Start: at(10, 0), End: tptr(at(11, 0))},
		{Source: SourceForm, Cause: "refuelling", Start: at(16, 0)},
	})
	input.CounterBaseline = fptr(100)

	first, err := Reconcile(input)
	require.NoError(t, err)
	second, err := Reconcile(input)
	require.NoError(t, err)

	assert.Equal(t, first.Segments, second.Segments)
	assert.Equal(t, first.WorkedHours, second.WorkedHours)
	assert.Equal(t, first.Warnings, second.Warnings)
}
