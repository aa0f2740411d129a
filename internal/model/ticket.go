package model

import "time"

// Ticket is an incident report opened against a vehicle. Its creation
// and closure times bound the ticket-derived stoppage interval; ClosedAt
// stays nil while the vehicle is still immobilized.
type Ticket struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Reference   string     `gorm:"uniqueIndex;size:100;not null" json:"reference"`
	VehicleID   int64      `gorm:"index;not null" json:"vehicle_id"`
	Description string     `gorm:"not null" json:"description"`
	Severity    string     `gorm:"size:50" json:"severity"`
	Status      string     `gorm:"size:50;not null" json:"status"`
	CreatedAt   time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"-"`
	ClosedAt    *time.Time `gorm:"index" json:"closed_at"`

	// Associations
	Vehicle Vehicle `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Ticket statuses. Only open/closed matter to reconciliation; the full
// lifecycle lives in the ticketing front end.
const (
	TicketStatusOpen   = "OPEN"
	TicketStatusClosed = "CLOSED"
)
