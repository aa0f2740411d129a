package timeline

import (
	"fmt"
	"sort"
	"time"
)

// SegmentKind classifies one slice of a vehicle's reconciled day.
type SegmentKind string

const (
	KindWork             SegmentKind = "WORK"
	KindDeterminedStop   SegmentKind = "DETERMINED_STOP"
	KindUndeterminedStop SegmentKind = "UNDETERMINED_STOP"
)

// Segment is one entry of the reconciled activity timeline. Work and
// determined-stop segments may overlap each other; undetermined-stop
// segments fill whatever the recorded facts leave uncovered.
type Segment struct {
	Kind     SegmentKind    `json:"kind"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Period   Period         `json:"period,omitempty"`
	Driver   string         `json:"driver,omitempty"`
	Cause    string         `json:"cause,omitempty"`
	Source   StoppageSource `json:"source,omitempty"`
	NetHours float64        `json:"net_hours,omitempty"`
}

// Input is an immutable snapshot of everything known about one vehicle
// on one operating day.
type Input struct {
	VehicleID int64
	Date      time.Time // any instant on the operating date
	Shifts    []ShiftEntry
	Stoppages []StoppageEntry
	Windows   WindowTable

	// CounterBaseline is the last hour-meter reading recorded strictly
	// before this operating day, nil if the vehicle has none.
	CounterBaseline *float64

	// FormStoppageDefault overrides the assumed duration of an unclosed
	// manual stoppage; zero means DefaultFormStoppageDuration.
	FormStoppageDefault time.Duration
}

// Result is the reconciled timeline for one vehicle-day: an ordered
// segment list whose union covers the operating day exactly, the net
// worked hours aggregated per shift period, and every data-quality
// warning raised along the way.
type Result struct {
	VehicleID   int64              `json:"vehicle_id"`
	Day         Interval           `json:"day"`
	Segments    []Segment          `json:"segments"`
	WorkedHours map[Period]float64 `json:"worked_hours"`
	Warnings    []Warning          `json:"warnings"`
}

// Reconcile merges a vehicle-day's shift and stoppage records into a
// gapless timeline and computes net worked hours per period.
//
// It is a pure function of its input: no I/O, no clock reads, no shared
// state. Per-record anomalies are downgraded to warnings so one bad
// record never prevents the rest of the day from reconciling; only a
// structurally invalid request fails outright.
func Reconcile(in Input) (*Result, error) {
	if in.VehicleID == 0 {
		return nil, fmt.Errorf("reconcile: vehicle id is required")
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("reconcile: date is required")
	}
	if in.Windows.loc == nil {
		return nil, fmt.Errorf("reconcile: shift window table is required")
	}

	day := in.Windows.OperatingDay(in.Date)
	result := &Result{
		VehicleID:   in.VehicleID,
		Day:         day,
		WorkedHours: map[Period]float64{PeriodFirst: 0, PeriodSecond: 0, PeriodThird: 0},
		Warnings:    []Warning{},
	}

	// Normalize shifts, dropping the broken ones with a warning.
	var shifts []normalizedShift
	for _, entry := range in.Shifts {
		ns, warn := normalizeShift(entry, in.Date, in.Windows)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
			continue
		}
		shifts = append(shifts, ns)
	}

	stops, stopWarnings := collectStoppages(in.Stoppages, day, in.FormStoppageDefault)
	result.Warnings = append(result.Warnings, stopWarnings...)

	// Net duration per shift, chaining hour-meter readings in
	// chronological order from the pre-day baseline.
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].interval.Start.Before(shifts[j].interval.Start)
	})
	prevCounter := in.CounterBaseline
	candidates := make([]Segment, 0, len(shifts)+len(stops))
	for _, shift := range shifts {
		net, warn := netDuration(shift, prevCounter, stops)
		if warn != nil {
			result.Warnings = append(result.Warnings, *warn)
		}
		if shift.entry.CounterEnd != nil {
			prevCounter = shift.entry.CounterEnd
		}
		result.WorkedHours[shift.period] += net.Hours()
		candidates = append(candidates, Segment{
			Kind:     KindWork,
			Start:    shift.interval.Start,
			End:      shift.interval.End,
			Period:   shift.period,
			Driver:   shift.entry.Driver,
			NetHours: net.Hours(),
		})
	}
	for _, stop := range stops {
		candidates = append(candidates, Segment{
			Kind:   KindDeterminedStop,
			Start:  stop.interval.Start,
			End:    stop.interval.End,
			Cause:  stop.entry.Cause,
			Source: stop.entry.Source,
		})
	}

	// Time order, work before stoppage on equal starts: a work record
	// explains that moment more specifically than a generic stoppage.
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].Start.Equal(candidates[j].Start) {
			return candidates[i].Start.Before(candidates[j].Start)
		}
		return candidates[i].Kind == KindWork && candidates[j].Kind != KindWork
	})

	// Sweep: keep every recorded segment as-is, fill only the gaps the
	// union leaves within the operating day.
	result.Segments = make([]Segment, 0, len(candidates)+1)
	cursor := day.Start
	for _, seg := range candidates {
		if seg.Start.After(cursor) {
			result.Segments = append(result.Segments, Segment{
				Kind:  KindUndeterminedStop,
				Start: cursor,
				End:   seg.Start,
			})
			cursor = seg.Start
		}
		result.Segments = append(result.Segments, seg)
		if seg.End.After(cursor) {
			cursor = seg.End
		}
	}
	if cursor.Before(day.End) {
		result.Segments = append(result.Segments, Segment{
			Kind:  KindUndeterminedStop,
			Start: cursor,
			End:   day.End,
		})
	}

	return result, nil
}
