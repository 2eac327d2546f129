package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"trip-log-service/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var logCols = []string{
	"id", "day_index", "log_date", "driver_name", "carrier_name", "vehicle_number",
	"driving_hours", "on_duty_hours", "off_duty_hours", "sleeper_berth_hours",
	"cycle_hours_used", "total_on_duty_7_days", "total_on_duty_5_days", "total_on_duty_6_days",
	"rolling_cycle", "sleeper_berth", "restart",
	"compliance_status", "violation_count", "overall_severity", "requires_immediate_action",
}

func newMock(t *testing.T) (*PostgresTripRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresTripRepository(db), mock
}

func sampleTrip() *domain.Trip {
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	return &domain.Trip{
		CurrentLocation:        "Chicago, IL",
		PickupLocation:         "Denver, CO",
		DropoffLocation:        "Dallas, TX",
		CurrentCycleUsed:       10,
		TotalDistanceMiles:     300,
		EstimatedDurationHours: 5,
		RoutePoints: []domain.RoutePoint{
			{Type: domain.PointStart, Address: "Chicago, IL", Sequence: 0},
		},
		Logs: []domain.DailyLog{{
			LogDate:    day,
			DayIndex:   0,
			Allocation: domain.DailyAllocation{DrivingHours: 4, OnDutyHours: 1, OffDutyHours: 19},
			Segments: []domain.DutySegment{
				{StartTime: day.Add(6 * time.Hour), EndTime: day.Add(7 * time.Hour), Status: domain.StatusOnDuty},
			},
			Compliance: domain.ComplianceVerdict{
				Status: domain.Compliant,
				Violations: []domain.Violation{
					{Type: domain.ViolationBreakRequirement, Severity: domain.SeverityWarning},
				},
			},
		}},
	}
}

func TestSaveTripAssignsIDs(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trips`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO route_points`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO eld_logs`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectExec(`INSERT INTO duty_statuses`).
		WithArgs(int64(41), 0, "on_duty", sqlmock.AnyArg(), sqlmock.AnyArg(), "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO log_violations`).
		WithArgs(int64(41), 0, "BREAK_REQUIREMENT", "WARNING", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	trip := sampleTrip()
	if err := repo.SaveTrip(context.Background(), trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID == "" || trip.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at assigned, got %q %v", trip.ID, trip.CreatedAt)
	}
	if trip.Logs[0].ID != 41 {
		t.Fatalf("log id = %d, want 41", trip.Logs[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveTripRollsBackOnFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO trips`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO route_points`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO eld_logs`).WillReturnError(errors.New("constraint violated"))
	mock.ExpectRollback()

	trip := sampleTrip()
	trip.ID = "fixed-id"
	if err := repo.SaveTrip(context.Background(), trip); err == nil {
		t.Fatalf("expected error")
	}
	if trip.Logs[0].ID != 0 {
		t.Fatalf("log id assigned despite rollback")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetTripNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM trips WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetTrip(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListLogsUnknownTrip(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.ListLogs(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetLogLoadsChildren(t *testing.T) {
	repo, mock := newMock(t)
	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM eld_logs l`).
		WithArgs("trip-1", int64(41)).
		WillReturnRows(sqlmock.NewRows(logCols).AddRow(
			int64(41), 0, day, "Driver", "Carrier", "Truck-001",
			4.0, 1.0, 19.0, 0.0,
			15.0, 15.0, 13.0, 14.0,
			[]byte(`{"Rolling8DayHours":61}`), []byte(`{"Compliant":true}`), []byte(`{}`),
			"MINOR_VIOLATIONS", 1, "WARNING", false,
		))
	mock.ExpectQuery(`FROM duty_statuses d`).
		WithArgs("trip-1", int64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"log_id", "status", "start_time", "end_time", "location", "remarks"}).
			AddRow(int64(41), "on_duty", day.Add(6*time.Hour), day.Add(7*time.Hour), "Terminal", "Pre-trip").
			AddRow(int64(41), "driving", day.Add(7*time.Hour), day.Add(11*time.Hour), "En Route", ""))
	mock.ExpectQuery(`FROM log_violations v`).
		WithArgs("trip-1", int64(41)).
		WillReturnRows(sqlmock.NewRows([]string{"log_id", "violation_type", "severity", "description", "rule"}).
			AddRow(int64(41), "CYCLE_LIMIT", "CRITICAL", "over", "70/8"))

	l, err := repo.GetLog(context.Background(), "trip-1", 41)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID != 41 || l.VehicleNumber != "Truck-001" || l.RollingCycle.Rolling8DayHours != 61 {
		t.Fatalf("unexpected log: %+v", l)
	}
	if !l.SleeperBerth.Compliant || l.Compliance.IsCompliant {
		t.Fatalf("unexpected flags: sleeper=%v compliant=%v", l.SleeperBerth.Compliant, l.Compliance.IsCompliant)
	}
	if len(l.Segments) != 2 || l.Segments[1].Status != domain.StatusDriving {
		t.Fatalf("unexpected segments: %+v", l.Segments)
	}
	if len(l.Violations()) != 1 || l.Violations()[0].Type != domain.ViolationCycleLimit {
		t.Fatalf("unexpected violations: %+v", l.Violations())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetLogOtherTrip(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM eld_logs l`).
		WithArgs("trip-2", int64(41)).
		WillReturnRows(sqlmock.NewRows(logCols))

	_, err := repo.GetLog(context.Background(), "trip-2", 41)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	for range schema {
		mock.ExpectExec(`CREATE`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	if err := InitSchema(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
