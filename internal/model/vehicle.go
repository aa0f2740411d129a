package model

import "time"

// Vehicle represents one heavy vehicle of the fleet.
type Vehicle struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Registration   string    `gorm:"uniqueIndex;size:50;not null" json:"registration"`
	FleetKind      string    `gorm:"size:20;index" json:"fleet_kind"` // derived from the registration prefix
	FleetNumber    int       `json:"fleet_number"`
	VehicleType    string    `gorm:"size:50;not null" json:"vehicle_type"`
	Brand          string    `gorm:"size:50" json:"brand"`
	Model          string    `gorm:"size:50" json:"model"`
	CommissionedAt *time.Time `json:"commissioned_at"`
	MaxTonnage     *float64  `json:"max_tonnage"`
	InService      bool      `gorm:"not null;default:true" json:"in_service"`
	CreatedAt      time.Time `gorm:"not null" json:"-"`
	UpdatedAt      time.Time `gorm:"not null" json:"-"`
}
