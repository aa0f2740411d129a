package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fleet-availability-backend/config"
	"fleet-availability-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Vehicle{},
		&model.Ticket{},
		&model.ShiftReport{},
		&model.Stoppage{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.EnableRangeIndexes {
		log.Println("Range indexes are enabled, applying interval-range DDL...")
		if err := applyRangeIndexDDL(db); err != nil {
			log.Printf("Warning: failed to apply some range-index DDL: %v. Continuing without them.", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// applyRangeIndexDDL creates GIST range indexes used by the day-window
// queries of the reconciliation feeds. Postgres only; tests on sqlite
// never enable them.
func applyRangeIndexDDL(db *gorm.DB) error {
	ddls := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist;",

		// Stoppage and ticket intervals are half-open, with an open upper
		// bound while the record is unresolved.
		"CREATE INDEX IF NOT EXISTS idx_stoppages_period ON stoppages " +
			"USING GIST (vehicle_id, tstzrange(started_at, COALESCE(ended_at, 'infinity'), '[)'));",
		"CREATE INDEX IF NOT EXISTS idx_tickets_period ON tickets " +
			"USING GIST (vehicle_id, tstzrange(created_at, COALESCE(closed_at, 'infinity'), '[)'));",

		"CREATE INDEX IF NOT EXISTS idx_shift_reports_vehicle_ended ON shift_reports (vehicle_id, ended_at DESC);",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
