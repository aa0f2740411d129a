package timeline

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval is well-formed (Start <= End).
func (iv Interval) Valid() bool {
	return !iv.Start.After(iv.End)
}

// Duration returns the wall-clock length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether iv and o share at least one instant.
// Touching intervals ([a,b) and [b,c)) do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && o.Start.Before(iv.End)
}

// Intersect returns the length of the overlap between iv and o,
// zero when they are disjoint.
func (iv Interval) Intersect(o Interval) time.Duration {
	if !iv.Overlaps(o) {
		return 0
	}
	start := iv.Start
	if o.Start.After(start) {
		start = o.Start
	}
	end := iv.End
	if o.End.Before(end) {
		end = o.End
	}
	return end.Sub(start)
}

// Clip returns the intersection of iv with window. The second return
// value is false when the two are disjoint.
func (iv Interval) Clip(window Interval) (Interval, bool) {
	if !iv.Overlaps(window) {
		return Interval{}, false
	}
	out := iv
	if window.Start.After(out.Start) {
		out.Start = window.Start
	}
	if window.End.Before(out.End) {
		out.End = window.End
	}
	return out, true
}
