package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id TEXT PRIMARY KEY,
		current_location TEXT NOT NULL,
		pickup_location TEXT NOT NULL,
		dropoff_location TEXT NOT NULL,
		current_cycle_used DOUBLE PRECISION NOT NULL,
		total_distance_miles DOUBLE PRECISION NOT NULL,
		estimated_duration_hours DOUBLE PRECISION NOT NULL,
		geometry JSONB NOT NULL DEFAULT '[]',
		fuel_stops JSONB NOT NULL DEFAULT '[]',
		rest_stops JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE TABLE IF NOT EXISTS route_points (
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		sequence INTEGER NOT NULL,
		point_type TEXT NOT NULL,
		address TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (trip_id, sequence)
	);`,
	`CREATE TABLE IF NOT EXISTS eld_logs (
		id BIGSERIAL PRIMARY KEY,
		trip_id TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		day_index INTEGER NOT NULL,
		log_date DATE NOT NULL,
		driver_name TEXT NOT NULL,
		carrier_name TEXT NOT NULL,
		vehicle_number TEXT NOT NULL,
		driving_hours DOUBLE PRECISION NOT NULL,
		on_duty_hours DOUBLE PRECISION NOT NULL,
		off_duty_hours DOUBLE PRECISION NOT NULL,
		sleeper_berth_hours DOUBLE PRECISION NOT NULL,
		cycle_hours_used DOUBLE PRECISION NOT NULL,
		total_on_duty_7_days DOUBLE PRECISION NOT NULL,
		total_on_duty_5_days DOUBLE PRECISION NOT NULL,
		total_on_duty_6_days DOUBLE PRECISION NOT NULL,
		rolling_cycle JSONB NOT NULL,
		sleeper_berth JSONB NOT NULL,
		restart JSONB NOT NULL,
		compliance_status TEXT NOT NULL,
		violation_count INTEGER NOT NULL,
		overall_severity TEXT NOT NULL,
		requires_immediate_action BOOLEAN NOT NULL,
		UNIQUE (trip_id, day_index)
	);`,
	`CREATE TABLE IF NOT EXISTS duty_statuses (
		log_id BIGINT NOT NULL REFERENCES eld_logs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		status TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		location TEXT NOT NULL,
		remarks TEXT NOT NULL,
		PRIMARY KEY (log_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS log_violations (
		log_id BIGINT NOT NULL REFERENCES eld_logs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		violation_type TEXT NOT NULL,
		severity TEXT NOT NULL,
		description TEXT NOT NULL,
		rule TEXT NOT NULL,
		PRIMARY KEY (log_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_eld_logs_trip_date ON eld_logs(trip_id, log_date);`,
}

// Create the Postgres schema. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
