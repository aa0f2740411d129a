package timeline

// WarningCode classifies a recoverable data-quality problem found while
// reconciling a vehicle-day. Records carrying one of these are excluded
// (or fall back to a weaker measure) without aborting the computation.
type WarningCode string

const (
	WarnMalformedInterval    WarningCode = "MALFORMED_INTERVAL"
	WarnInvalidPeriod        WarningCode = "INVALID_PERIOD"
	WarnOutsideShiftWindow   WarningCode = "OUTSIDE_SHIFT_WINDOW"
	WarnNegativeCounterDelta WarningCode = "NEGATIVE_COUNTER_DELTA"
)

// Warning describes one data-quality issue attached to a reconciliation
// result. Warnings are always returned to the caller, never logged away.
type Warning struct {
	Code   WarningCode `json:"code"`
	Detail string      `json:"detail"`
}
