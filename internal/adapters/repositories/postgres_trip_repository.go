package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the TripRepository port.
type PostgresTripRepository struct{ DB *sql.DB }

func NewPostgresTripRepository(db *sql.DB) *PostgresTripRepository {
	return &PostgresTripRepository{DB: db}
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SaveTrip writes the trip and all derived rows in one transaction. It
// assigns the trip id when empty and the generated log ids in place.
func (r *PostgresTripRepository) SaveTrip(ctx context.Context, t *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.SaveTrip")(&err)

	if r.DB == nil {
		return errors.New("trip repository: DB is nil")
	}
	if t == nil {
		return errors.New("save trip: trip is nil")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	geometry, err := jsonArray(t.Geometry)
	if err != nil {
		return fmt.Errorf("save trip: encode geometry: %w", err)
	}
	fuel, err := jsonArray(t.FuelStops)
	if err != nil {
		return fmt.Errorf("save trip: encode fuel stops: %w", err)
	}
	rest, err := jsonArray(t.RestStops)
	if err != nil {
		return fmt.Errorf("save trip: encode rest stops: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO trips (
		id, current_location, pickup_location, dropoff_location,
		current_cycle_used, total_distance_miles, estimated_duration_hours,
		geometry, fuel_stops, rest_stops, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`,
		t.ID, t.CurrentLocation, t.PickupLocation, t.DropoffLocation,
		t.CurrentCycleUsed, t.TotalDistanceMiles, t.EstimatedDurationHours,
		geometry, fuel, rest, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trip id=%s: insert trip: %w", t.ID, err)
	}

	for _, p := range t.RoutePoints {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO route_points (trip_id, sequence, point_type, address, lon, lat)
		VALUES ($1, $2, $3, $4, $5, $6);
		`, t.ID, p.Sequence, string(p.Type), p.Address, p.Coords.Lon, p.Coords.Lat)
		if err != nil {
			return fmt.Errorf("save trip id=%s: insert route point %d: %w", t.ID, p.Sequence, err)
		}
	}

	ids := make([]int64, len(t.Logs))
	for i := range t.Logs {
		id, err := insertLog(ctx, tx, t.ID, &t.Logs[i])
		if err != nil {
			return fmt.Errorf("save trip id=%s: day %d: %w", t.ID, t.Logs[i].DayIndex, err)
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip id=%s: commit: %w", t.ID, err)
	}

	for i, id := range ids {
		t.Logs[i].ID = id
	}
	return nil
}

func insertLog(ctx context.Context, tx *sql.Tx, tripID string, l *domain.DailyLog) (int64, error) {
	rolling, err := json.Marshal(l.RollingCycle)
	if err != nil {
		return 0, fmt.Errorf("encode rolling cycle: %w", err)
	}
	sleeper, err := json.Marshal(l.SleeperBerth)
	if err != nil {
		return 0, fmt.Errorf("encode sleeper berth: %w", err)
	}
	restart, err := json.Marshal(l.Restart)
	if err != nil {
		return 0, fmt.Errorf("encode restart: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
	INSERT INTO eld_logs (
		trip_id, day_index, log_date, driver_name, carrier_name, vehicle_number,
		driving_hours, on_duty_hours, off_duty_hours, sleeper_berth_hours,
		cycle_hours_used, total_on_duty_7_days, total_on_duty_5_days, total_on_duty_6_days,
		rolling_cycle, sleeper_berth, restart,
		compliance_status, violation_count, overall_severity, requires_immediate_action
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	RETURNING id;
	`,
		tripID, l.DayIndex, l.LogDate, l.DriverName, l.CarrierName, l.VehicleNumber,
		l.Allocation.DrivingHours, l.Allocation.OnDutyHours, l.Allocation.OffDutyHours, l.Allocation.SleeperBerthHours,
		l.CycleHoursUsed, l.TotalOnDuty7Days, l.TotalOnDuty5Days, l.TotalOnDuty6Days,
		rolling, sleeper, restart,
		string(l.Compliance.Status), l.Compliance.ViolationCount, string(l.Compliance.OverallSeverity),
		l.Compliance.RequiresImmediateAction,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert log: %w", err)
	}

	for i, s := range l.Segments {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO duty_statuses (log_id, position, status, start_time, end_time, location, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, id, i, string(s.Status), s.StartTime, s.EndTime, s.Location, s.Remarks)
		if err != nil {
			return 0, fmt.Errorf("insert duty status #%d: %w", i, err)
		}
	}

	for i, v := range l.Compliance.Violations {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO log_violations (log_id, position, violation_type, severity, description, rule)
		VALUES ($1, $2, $3, $4, $5, $6);
		`, id, i, string(v.Type), string(v.Severity), v.Description, v.Rule)
		if err != nil {
			return 0, fmt.Errorf("insert violation #%d: %w", i, err)
		}
	}
	return id, nil
}

const tripColumns = `
	id, current_location, pickup_location, dropoff_location,
	current_cycle_used, total_distance_miles, estimated_duration_hours,
	geometry, fuel_stops, rest_stops, created_at`

func scanTrip(sc interface{ Scan(dest ...any) error }) (*domain.Trip, error) {
	var t domain.Trip
	var geometry, fuel, rest []byte
	err := sc.Scan(
		&t.ID, &t.CurrentLocation, &t.PickupLocation, &t.DropoffLocation,
		&t.CurrentCycleUsed, &t.TotalDistanceMiles, &t.EstimatedDurationHours,
		&geometry, &fuel, &rest, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(geometry, &t.Geometry); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	if err := json.Unmarshal(fuel, &t.FuelStops); err != nil {
		return nil, fmt.Errorf("decode fuel stops: %w", err)
	}
	if err := json.Unmarshal(rest, &t.RestStops); err != nil {
		return nil, fmt.Errorf("decode rest stops: %w", err)
	}
	return &t, nil
}

// GetTrip loads a trip with its route points and logs.
func (r *PostgresTripRepository) GetTrip(ctx context.Context, id string) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.GetTrip")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `SELECT`+tripColumns+` FROM trips WHERE id = $1;`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip id=%s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT sequence, point_type, address, lon, lat
	FROM route_points
	WHERE trip_id = $1
	ORDER BY sequence;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: query route points: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.RoutePoint
		var pt string
		if err := rows.Scan(&p.Sequence, &pt, &p.Address, &p.Coords.Lon, &p.Coords.Lat); err != nil {
			return nil, fmt.Errorf("get trip id=%s: scan route point: %w", id, err)
		}
		p.Type = domain.RoutePointType(pt)
		t.RoutePoints = append(t.RoutePoints, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get trip id=%s: route point iteration: %w", id, err)
	}

	t.Logs, err = r.loadLogs(ctx, "l.trip_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get trip id=%s: %w", id, err)
	}
	return t, nil
}

// ListTrips returns trip headers, newest first.
func (r *PostgresTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.ListTrips")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT`+tripColumns+` FROM trips ORDER BY created_at DESC, id;`)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, 32)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}
	return trips, nil
}

// ListLogs returns a trip's logs by date. Unknown trips are ErrNotFound.
func (r *PostgresTripRepository) ListLogs(ctx context.Context, tripID string) (_ []domain.DailyLog, err error) {
	defer obs.Time(ctx, "trips.ListLogs")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1);`, tripID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("list logs trip=%s: %w", tripID, err)
	}
	if !exists {
		return nil, fmt.Errorf("list logs trip=%s: %w", tripID, domain.ErrNotFound)
	}

	logs, err := r.loadLogs(ctx, "l.trip_id = $1", tripID)
	if err != nil {
		return nil, fmt.Errorf("list logs trip=%s: %w", tripID, err)
	}
	return logs, nil
}

// GetLog returns one log of a trip. A log belonging to another trip is
// reported as not found.
func (r *PostgresTripRepository) GetLog(ctx context.Context, tripID string, logID int64) (_ *domain.DailyLog, err error) {
	defer obs.Time(ctx, "trips.GetLog")(&err)

	if r.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	logs, err := r.loadLogs(ctx, "l.trip_id = $1 AND l.id = $2", tripID, logID)
	if err != nil {
		return nil, fmt.Errorf("get log trip=%s id=%d: %w", tripID, logID, err)
	}
	if len(logs) == 0 {
		return nil, fmt.Errorf("get log trip=%s id=%d: %w", tripID, logID, domain.ErrNotFound)
	}
	return &logs[0], nil
}

// loadLogs reads the logs matching where (over eld_logs aliased l) together
// with their duty statuses and violations, ordered by day.
func (r *PostgresTripRepository) loadLogs(ctx context.Context, where string, args ...any) ([]domain.DailyLog, error) {
	logs, err := scanLogs(ctx, r.DB, where, args...)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return logs, nil
	}

	byID := make(map[int64]*domain.DailyLog, len(logs))
	for i := range logs {
		byID[logs[i].ID] = &logs[i]
	}

	if err := attachSegments(ctx, r.DB, byID, where, args...); err != nil {
		return nil, err
	}
	if err := attachViolations(ctx, r.DB, byID, where, args...); err != nil {
		return nil, err
	}
	return logs, nil
}

func scanLogs(ctx context.Context, q queryer, where string, args ...any) ([]domain.DailyLog, error) {
	rows, err := q.QueryContext(ctx, `
	SELECT
		l.id, l.day_index, l.log_date, l.driver_name, l.carrier_name, l.vehicle_number,
		l.driving_hours, l.on_duty_hours, l.off_duty_hours, l.sleeper_berth_hours,
		l.cycle_hours_used, l.total_on_duty_7_days, l.total_on_duty_5_days, l.total_on_duty_6_days,
		l.rolling_cycle, l.sleeper_berth, l.restart,
		l.compliance_status, l.violation_count, l.overall_severity, l.requires_immediate_action
	FROM eld_logs l
	WHERE `+where+`
	ORDER BY l.log_date, l.day_index;
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query eld_logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		var l domain.DailyLog
		var rolling, sleeper, restart []byte
		var status, severity string
		err := rows.Scan(
			&l.ID, &l.DayIndex, &l.LogDate, &l.DriverName, &l.CarrierName, &l.VehicleNumber,
			&l.Allocation.DrivingHours, &l.Allocation.OnDutyHours, &l.Allocation.OffDutyHours, &l.Allocation.SleeperBerthHours,
			&l.CycleHoursUsed, &l.TotalOnDuty7Days, &l.TotalOnDuty5Days, &l.TotalOnDuty6Days,
			&rolling, &sleeper, &restart,
			&status, &l.Compliance.ViolationCount, &severity, &l.Compliance.RequiresImmediateAction,
		)
		if err != nil {
			return nil, fmt.Errorf("scan eld_logs: %w", err)
		}
		if err := json.Unmarshal(rolling, &l.RollingCycle); err != nil {
			return nil, fmt.Errorf("decode rolling cycle log=%d: %w", l.ID, err)
		}
		if err := json.Unmarshal(sleeper, &l.SleeperBerth); err != nil {
			return nil, fmt.Errorf("decode sleeper berth log=%d: %w", l.ID, err)
		}
		if err := json.Unmarshal(restart, &l.Restart); err != nil {
			return nil, fmt.Errorf("decode restart log=%d: %w", l.ID, err)
		}
		l.Compliance.Status = domain.ComplianceStatus(status)
		l.Compliance.OverallSeverity = domain.Severity(severity)
		l.Compliance.IsCompliant = l.Compliance.Status == domain.Compliant
		l.Compliance.Violations = []domain.Violation{}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eld_logs iteration: %w", err)
	}
	return logs, nil
}

func attachSegments(ctx context.Context, q queryer, byID map[int64]*domain.DailyLog, where string, args ...any) error {
	rows, err := q.QueryContext(ctx, `
	SELECT d.log_id, d.status, d.start_time, d.end_time, d.location, d.remarks
	FROM duty_statuses d
	JOIN eld_logs l ON l.id = d.log_id
	WHERE `+where+`
	ORDER BY d.log_id, d.position;
	`, args...)
	if err != nil {
		return fmt.Errorf("query duty_statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var logID int64
		var s domain.DutySegment
		var status string
		if err := rows.Scan(&logID, &status, &s.StartTime, &s.EndTime, &s.Location, &s.Remarks); err != nil {
			return fmt.Errorf("scan duty_statuses: %w", err)
		}
		s.Status = domain.DutyStatus(status)
		if l, ok := byID[logID]; ok {
			l.Segments = append(l.Segments, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("duty_statuses iteration: %w", err)
	}
	return nil
}

func attachViolations(ctx context.Context, q queryer, byID map[int64]*domain.DailyLog, where string, args ...any) error {
	rows, err := q.QueryContext(ctx, `
	SELECT v.log_id, v.violation_type, v.severity, v.description, v.rule
	FROM log_violations v
	JOIN eld_logs l ON l.id = v.log_id
	WHERE `+where+`
	ORDER BY v.log_id, v.position;
	`, args...)
	if err != nil {
		return fmt.Errorf("query log_violations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var logID int64
		var v domain.Violation
		var vt, sev string
		if err := rows.Scan(&logID, &vt, &sev, &v.Description, &v.Rule); err != nil {
			return fmt.Errorf("scan log_violations: %w", err)
		}
		v.Type = domain.ViolationType(vt)
		v.Severity = domain.Severity(sev)
		if l, ok := byID[logID]; ok {
			l.Compliance.Violations = append(l.Compliance.Violations, v)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("log_violations iteration: %w", err)
	}
	return nil
}

// jsonArray encodes v, writing nil slices as an empty array.
func jsonArray[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}
