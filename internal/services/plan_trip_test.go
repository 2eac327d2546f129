package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"trip-log-service/internal/adapters/repositories"
	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/hos"
)

type recordingPublisher struct {
	trips []string
	err   error
}

func (r *recordingPublisher) PublishTripPlanned(_ context.Context, t *domain.Trip) error {
	r.trips = append(r.trips, t.ID)
	return r.err
}

var clock = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newPlanner(t *testing.T, routes ...routing.MockRoute) (*Planner, *routing.MockRouteProvider, *repositories.MemoryTripRepository, *recordingPublisher) {
	t.Helper()
	provider := routing.NewMockRouteProvider(routes)
	repo := repositories.NewMemoryTripRepository()
	pub := &recordingPublisher{}
	p := &Planner{
		Engine: hos.NewEngine(hos.FederalPropertyCarrying),
		Routes: provider,
		Trips:  repo,
		Events: pub,
		Now:    func() time.Time { return clock },
	}
	return p, provider, repo, pub
}

func TestPlanTrip(t *testing.T) {
	p, _, repo, pub := newPlanner(t, routing.MockRoute{
		Current: "Chicago, IL", Pickup: "Denver, CO", Dropoff: "Dallas, TX",
		Miles: 1200, Hours: 30,
	})

	trip, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation:  " Chicago, IL ",
		PickupLocation:   "Denver, CO",
		DropoffLocation:  "Dallas, TX",
		CurrentCycleUsed: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.ID == "" {
		t.Fatalf("expected trip id")
	}
	if trip.CurrentLocation != "Chicago, IL" {
		t.Fatalf("current location = %q, want trimmed", trip.CurrentLocation)
	}
	if len(trip.Logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(trip.Logs))
	}
	if want := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC); !trip.Logs[0].LogDate.Equal(want) {
		t.Fatalf("first log date = %v, want %v", trip.Logs[0].LogDate, want)
	}
	if len(trip.FuelStops) != 1 || trip.FuelStops[0].MileageMark != 1000 {
		t.Fatalf("fuel stops = %+v", trip.FuelStops)
	}
	if len(trip.RestStops) != 3 {
		t.Fatalf("rest stops = %d, want 3", len(trip.RestStops))
	}
	if len(trip.RoutePoints) != 3 {
		t.Fatalf("route points = %d, want 3", len(trip.RoutePoints))
	}

	stored, err := repo.GetTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("stored trip: %v", err)
	}
	if len(stored.Logs) != 2 || stored.Logs[0].ID == 0 {
		t.Fatalf("stored logs = %+v", stored.Logs)
	}

	if len(pub.trips) != 1 || pub.trips[0] != trip.ID {
		t.Fatalf("published = %v, want [%s]", pub.trips, trip.ID)
	}
}

func TestPlanTripRejectsInvalidInput(t *testing.T) {
	p, provider, _, _ := newPlanner(t)

	cases := []PlanTripRequest{
		{CurrentLocation: "A", PickupLocation: " ", DropoffLocation: "C"},
		{CurrentLocation: "", PickupLocation: "B", DropoffLocation: "C"},
		{CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C", CurrentCycleUsed: 70.5},
		{CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C", CurrentCycleUsed: -1},
	}
	for i, req := range cases {
		_, err := p.PlanTrip(context.Background(), req)
		if !domain.IsInvalidInput(err) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
	if provider.Calls() != 0 {
		t.Fatalf("route provider called %d times for invalid input", provider.Calls())
	}
}

func TestPlanTripZeroDurationRoute(t *testing.T) {
	p, _, repo, _ := newPlanner(t, routing.MockRoute{Current: "A", Pickup: "A", Dropoff: "A"})

	_, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A", PickupLocation: "A", DropoffLocation: "A",
	})
	if !domain.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "locations" {
		t.Fatalf("expected locations error, got %v", err)
	}
	trips, _ := repo.ListTrips(context.Background())
	if len(trips) != 0 {
		t.Fatalf("trip stored despite error")
	}

	if _, err := p.CalculateRoute(context.Background(), RouteRequest{
		CurrentLocation: "A", PickupLocation: "A", DropoffLocation: "A",
	}); !errors.As(err, &verr) || verr.Field != "locations" {
		t.Fatalf("calculate route: expected locations error, got %v", err)
	}
}

func TestPlanTripUnknownCitiesWithoutRoutingService(t *testing.T) {
	p, _, _, _ := newPlanner(t)
	p.Routes = routing.NewStraightLineRouteProvider(nil)

	_, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "Nowhere Flats", PickupLocation: "Lost Springs", DropoffLocation: "Emptyville",
	})
	var verr domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "locations" {
		t.Fatalf("expected locations error, got %v", err)
	}
}

func TestPlanTripDatesLogsInCreationZone(t *testing.T) {
	p, _, _, _ := newPlanner(t, routing.MockRoute{Current: "A", Pickup: "B", Dropoff: "C", Miles: 300, Hours: 6})
	// 23:30 in Denver is already the next day in UTC.
	denver := time.FixedZone("MST", -7*60*60)
	p.Now = func() time.Time { return time.Date(2026, 10, 17, 23, 30, 0, 0, denver) }

	trip, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := trip.CreatedAt.Format(time.DateOnly)
	logged := trip.Logs[0].LogDate.Format(time.DateOnly)
	if created != "2026-10-18" || logged != created {
		t.Fatalf("created_at day %s, first log day %s", created, logged)
	}
}

func TestPlanTripRouteFailure(t *testing.T) {
	p, provider, repo, pub := newPlanner(t)
	provider.Err = errors.New("routing unavailable")

	_, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C",
	})
	if err == nil || domain.IsInvalidInput(err) {
		t.Fatalf("expected routing error, got %v", err)
	}
	trips, _ := repo.ListTrips(context.Background())
	if len(trips) != 0 || len(pub.trips) != 0 {
		t.Fatalf("side effects after failure: trips=%d events=%d", len(trips), len(pub.trips))
	}
}

func TestPlanTripPublishFailureIsNotFatal(t *testing.T) {
	p, _, repo, pub := newPlanner(t, routing.MockRoute{Current: "A", Pickup: "B", Dropoff: "C", Miles: 100, Hours: 2})
	pub.err = errors.New("broker down")

	trip, err := p.PlanTrip(context.Background(), PlanTripRequest{
		CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.GetTrip(context.Background(), trip.ID); err != nil {
		t.Fatalf("trip not stored: %v", err)
	}
}

func TestCalculateRoute(t *testing.T) {
	p, _, repo, pub := newPlanner(t, routing.MockRoute{Current: "A", Pickup: "B", Dropoff: "C", Miles: 2500, Hours: 45})

	plan, err := p.CalculateRoute(context.Background(), RouteRequest{
		CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Route.TotalDistanceMiles != 2500 || plan.TotalDays != 2 {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if len(plan.FuelStops) != 2 || len(plan.RestStops) != 5 {
		t.Fatalf("fuel = %d rest = %d, want 2 and 5", len(plan.FuelStops), len(plan.RestStops))
	}

	trips, _ := repo.ListTrips(context.Background())
	if len(trips) != 0 || len(pub.trips) != 0 {
		t.Fatalf("calculate route has side effects")
	}

	if _, err := p.CalculateRoute(context.Background(), RouteRequest{CurrentLocation: "A"}); !domain.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
