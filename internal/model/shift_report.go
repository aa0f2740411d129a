package model

import "time"

// ShiftReport is one driver's end-of-shift attendance report for a
// vehicle on one operating day. Reports are historical records: written
// once, never updated, never deleted. The unique index makes duplicate
// submissions of the same form idempotent no-ops.
type ShiftReport struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	VehicleID  int64     `gorm:"not null;uniqueIndex:idx_shift_report_dedup" json:"vehicle_id"`
	ReportDate time.Time `gorm:"not null;uniqueIndex:idx_shift_report_dedup;index" json:"report_date"`
	Period     int       `gorm:"not null;uniqueIndex:idx_shift_report_dedup" json:"period"`
	Phone      string    `gorm:"size:15;not null;uniqueIndex:idx_shift_report_dedup" json:"phone"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	StartedAt  time.Time `gorm:"not null" json:"started_at"`
	EndedAt    time.Time `gorm:"not null;index" json:"ended_at"`
	CounterEnd *float64  `json:"counter_end"` // hour-meter reading at end of shift
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `gorm:"not null" json:"-"`

	// Associations
	Vehicle Vehicle `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
