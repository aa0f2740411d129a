package store

import "fleet-availability-backend/internal/model"

// DayFeed is the immutable snapshot of everything recorded for one
// vehicle that touches one operating day. It is the read-only input of
// the reconciliation engine.
type DayFeed struct {
	Shifts        []model.ShiftReport
	Tickets       []model.Ticket
	FormStoppages []model.Stoppage

	// CounterBaseline is the last hour-meter reading recorded strictly
	// before the operating day, nil when the vehicle has none.
	CounterBaseline *float64
}

// FleetSituation aggregates the current state of the fleet for the
// dashboard.
type FleetSituation struct {
	TotalVehicles  int64            `json:"total_vehicles"`
	InService      int64            `json:"in_service"`
	Stopped        int64            `json:"stopped"` // vehicles with at least one open ticket
	OpenTickets    int64            `json:"open_tickets"`
	OpenBySeverity map[string]int64 `json:"open_by_severity"`
}
