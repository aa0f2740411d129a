package model

import "time"

// Stoppage is a manually reported vehicle-unavailability interval (the
// stoppage form of the shift supervisor). Ticket-derived stoppages are
// not stored here: they are read straight off the tickets table during
// reconciliation.
type Stoppage struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	VehicleID   int64      `gorm:"index;not null" json:"vehicle_id"`
	Cause       string     `gorm:"size:100;not null" json:"cause"`
	Description string     `json:"description"`
	Severity    string     `gorm:"size:50" json:"severity"`
	StartedAt   time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt     *time.Time `gorm:"index" json:"ended_at"` // nil while unresolved
	RecordedAt  time.Time  `gorm:"not null" json:"recorded_at"`

	// Associations
	Vehicle Vehicle `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
