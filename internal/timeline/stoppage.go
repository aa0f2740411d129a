package timeline

import (
	"fmt"
	"time"
)

// StoppageSource tells which subsystem recorded a determined stoppage.
type StoppageSource string

const (
	SourceTicket StoppageSource = "TICKET"
	SourceForm   StoppageSource = "FORM"
)

// DefaultFormStoppageDuration is assumed for a manual stoppage form that
// was never closed: unresolved manual stoppages are treated as short.
const DefaultFormStoppageDuration = 30 * time.Minute

// StoppageEntry is one determined cause of vehicle unavailability, from
// either an incident ticket or a manual stoppage form.
type StoppageEntry struct {
	Source   StoppageSource
	Cause    string
	Severity string
	Start    time.Time
	End      *time.Time // nil while the ticket or form is still open
}

// determinedStop is a stoppage entry resolved to a closed interval
// within the operating day.
type determinedStop struct {
	entry    StoppageEntry
	interval Interval
}

// collectStoppages resolves raw stoppage entries against the operating
// day. Open ticket stoppages run to the day boundary; open form
// stoppages get the default duration. Entries from both sources are kept
// independently even when they overlap: each is a known cause in its own
// right, and net-duration computation already discounts the overlap.
func collectStoppages(entries []StoppageEntry, day Interval, formDefault time.Duration) ([]determinedStop, []Warning) {
	if formDefault <= 0 {
		formDefault = DefaultFormStoppageDuration
	}

	var stops []determinedStop
	var warnings []Warning
	for _, entry := range entries {
		var end time.Time
		switch {
		case entry.End != nil:
			end = *entry.End
		case entry.Source == SourceForm:
			end = entry.Start.Add(formDefault)
		default:
			end = day.End
		}

		iv := Interval{Start: entry.Start, End: end}
		if !iv.Valid() {
			warnings = append(warnings, Warning{
				Code:   WarnMalformedInterval,
				Detail: fmt.Sprintf("%s stoppage %q ends before it starts", entry.Source, entry.Cause),
			})
			continue
		}

		clipped, ok := iv.Clip(day)
		if !ok || clipped.Duration() == 0 {
			continue // outside the operating day, nothing to explain
		}
		stops = append(stops, determinedStop{entry: entry, interval: clipped})
	}
	return stops, warnings
}
