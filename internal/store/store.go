package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fleet-availability-backend/internal/model"
	"fleet-availability-backend/internal/parse"
	"fleet-availability-backend/internal/timeline"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	UpsertVehicle(ctx context.Context, vehicle *model.Vehicle) error
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)

	CreateTicket(ctx context.Context, ticket *model.Ticket) error
	ListTickets(ctx context.Context, vehicleID int64, status string) ([]model.Ticket, error)
	CloseTicket(ctx context.Context, id int64, closedAt time.Time) (*model.Ticket, error)
	UpdateTicketHours(ctx context.Context, id int64, createdAt, closedAt *time.Time) (*model.Ticket, error)

	CreateShiftReport(ctx context.Context, report *model.ShiftReport) (bool, error)

	CreateStoppage(ctx context.Context, stoppage *model.Stoppage) error
	ListStoppages(ctx context.Context, vehicleID int64, from, to time.Time) ([]model.Stoppage, error)

	DayFeed(ctx context.Context, vehicleID int64, day timeline.Interval) (*DayFeed, error)
	FleetSituation(ctx context.Context) (*FleetSituation, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// UpsertVehicle creates the vehicle or updates its descriptive fields,
// keyed by registration. Mirrors the fleet-roster import, which replays
// the full roster on every run.
func (s *gormStore) UpsertVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	reg, err := parse.ParseRegistration(vehicle.Registration)
	if err != nil {
		return fmt.Errorf("invalid registration %q: %w", vehicle.Registration, err)
	}
	vehicle.Registration = reg.Canonical()
	vehicle.FleetKind = reg.Kind
	vehicle.FleetNumber = reg.Number

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "registration"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"fleet_kind", "fleet_number", "vehicle_type", "brand", "model",
			"commissioned_at", "max_tonnage", "in_service", "updated_at",
		}),
	}).Create(vehicle).Error
}

func (s *gormStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := s.db.WithContext(ctx).
		Order("fleet_kind, fleet_number, registration").
		Find(&vehicles).Error
	return vehicles, err
}

func (s *gormStore) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (s *gormStore) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	if ticket.Status == "" {
		ticket.Status = model.TicketStatusOpen
	}
	return s.db.WithContext(ctx).Create(ticket).Error
}

func (s *gormStore) ListTickets(ctx context.Context, vehicleID int64, status string) ([]model.Ticket, error) {
	q := s.db.WithContext(ctx).Model(&model.Ticket{}).Order("created_at DESC")
	if vehicleID != 0 {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tickets []model.Ticket
	err := q.Find(&tickets).Error
	return tickets, err
}

// CloseTicket back-fills the closure time of an open ticket. This is the
// only mutation a ticket sees after creation as far as reconciliation is
// concerned.
func (s *gormStore) CloseTicket(ctx context.Context, id int64, closedAt time.Time) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if ticket.ClosedAt != nil {
			return fmt.Errorf("ticket %d is already closed", id)
		}
		if closedAt.Before(ticket.CreatedAt) {
			return fmt.Errorf("ticket %d cannot close before it was created", id)
		}
		ticket.ClosedAt = &closedAt
		ticket.Status = model.TicketStatusClosed
		return tx.Save(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicketHours corrects the recorded creation/closure times of a
// ticket after the fact (supervisor fix-up of data-entry errors).
func (s *gormStore) UpdateTicketHours(ctx context.Context, id int64, createdAt, closedAt *time.Time) (*model.Ticket, error) {
	var ticket model.Ticket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ticket, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if createdAt != nil {
			ticket.CreatedAt = *createdAt
		}
		if closedAt != nil {
			ticket.ClosedAt = closedAt
			ticket.Status = model.TicketStatusClosed
		}
		if ticket.ClosedAt != nil && ticket.ClosedAt.Before(ticket.CreatedAt) {
			return fmt.Errorf("ticket %d would close before it was created", id)
		}
		return tx.Save(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateShiftReport persists one end-of-shift report. Duplicate
// submissions of the same (vehicle, date, period, phone) tuple are
// idempotent no-ops; the returned bool tells whether a row was written.
func (s *gormStore) CreateShiftReport(ctx context.Context, report *model.ShiftReport) (bool, error) {
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "vehicle_id"}, {Name: "report_date"}, {Name: "period"}, {Name: "phone"},
		},
		DoNothing: true,
	}).Create(report)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (s *gormStore) CreateStoppage(ctx context.Context, stoppage *model.Stoppage) error {
	if stoppage.RecordedAt.IsZero() {
		stoppage.RecordedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(stoppage).Error
}

// ListStoppages returns manual stoppages overlapping [from, to), newest
// first. Unresolved stoppages (nil end) count as overlapping.
func (s *gormStore) ListStoppages(ctx context.Context, vehicleID int64, from, to time.Time) ([]model.Stoppage, error) {
	q := s.db.WithContext(ctx).Model(&model.Stoppage{}).
		Where("started_at < ? AND (ended_at IS NULL OR ended_at > ?)", to, from).
		Order("started_at DESC")
	if vehicleID != 0 {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	var stoppages []model.Stoppage
	err := q.Find(&stoppages).Error
	return stoppages, err
}

// DayFeed loads the reconciliation inputs for one vehicle and operating
// day: shift reports dated on the day, tickets and form stoppages whose
// interval touches the day, and the hour-meter baseline from the last
// report that ended before the day started.
func (s *gormStore) DayFeed(ctx context.Context, vehicleID int64, day timeline.Interval) (*DayFeed, error) {
	feed := &DayFeed{}
	db := s.db.WithContext(ctx)

	if err := db.
		Where("vehicle_id = ? AND started_at < ? AND ended_at > ?", vehicleID, day.End, day.Start).
		Order("started_at").
		Find(&feed.Shifts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch shift reports: %w", err)
	}

	if err := db.
		Where("vehicle_id = ? AND created_at < ? AND (closed_at IS NULL OR closed_at > ?)",
			vehicleID, day.End, day.Start).
		Order("created_at").
		Find(&feed.Tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	if err := db.
		Where("vehicle_id = ? AND started_at < ? AND (ended_at IS NULL OR ended_at > ?)",
			vehicleID, day.End, day.Start).
		Order("started_at").
		Find(&feed.FormStoppages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch stoppages: %w", err)
	}

	var baseline model.ShiftReport
	err := db.
		Where("vehicle_id = ? AND ended_at <= ? AND counter_end IS NOT NULL", vehicleID, day.Start).
		Order("ended_at DESC").
		First(&baseline).Error
	switch {
	case err == nil:
		feed.CounterBaseline = baseline.CounterEnd
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First day of a vehicle's life has no baseline.
	default:
		return nil, fmt.Errorf("failed to fetch counter baseline: %w", err)
	}

	return feed, nil
}

func (s *gormStore) FleetSituation(ctx context.Context) (*FleetSituation, error) {
	db := s.db.WithContext(ctx)
	situation := &FleetSituation{OpenBySeverity: make(map[string]int64)}

	if err := db.Model(&model.Vehicle{}).Count(&situation.TotalVehicles).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Vehicle{}).Where("in_service").Count(&situation.InService).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Ticket{}).
		Where("closed_at IS NULL").
		Distinct("vehicle_id").
		Count(&situation.Stopped).Error; err != nil {
		return nil, err
	}

	type sevRow struct {
		Severity string
		Total    int64
	}
	var rows []sevRow
	if err := db.Model(&model.Ticket{}).
		Select("severity, COUNT(*) as total").
		Where("closed_at IS NULL").
		Group("severity").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		situation.OpenTickets += r.Total
		situation.OpenBySeverity[r.Severity] = r.Total
	}

	return situation, nil
}
