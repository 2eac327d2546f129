package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/hos"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

type PlanTripRequest struct {
	CurrentLocation  string
	PickupLocation   string
	DropoffLocation  string
	CurrentCycleUsed float64
}

type RouteRequest struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
}

// RoutePlan is a routed journey with its planned stops, not persisted.
type RoutePlan struct {
	Route     domain.RouteSummary
	FuelStops []domain.FuelStop
	RestStops []domain.RestStop
	TotalDays int
}

// Planner turns a trip request into a routed, logged and stored trip.
// Events and Now are optional.
type Planner struct {
	Engine *hos.Engine
	Routes ports.RouteProvider
	Trips  ports.TripRepository
	Events ports.TripEventPublisher
	Now    func() time.Time
}

// PlanTrip validates the request, routes it, plans stops, generates the daily
// logs starting today and persists the trip. The trip.planned event is
// published after the save and its failure does not fail the request.
func (p *Planner) PlanTrip(ctx context.Context, req PlanTripRequest) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	req.CurrentLocation = strings.TrimSpace(req.CurrentLocation)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.DropoffLocation = strings.TrimSpace(req.DropoffLocation)

	if err := validateAddresses(req.CurrentLocation, req.PickupLocation, req.DropoffLocation); err != nil {
		return nil, err
	}
	maxCycle := p.Engine.Rules().MaxCycleInputHours
	if math.IsNaN(req.CurrentCycleUsed) || req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > maxCycle {
		return nil, domain.ValidationError{
			Field: "current_cycle_used",
			Msg:   fmt.Sprintf("must be between 0 and %.0f hours", maxCycle),
		}
	}

	plan, err := p.route(ctx, req.CurrentLocation, req.PickupLocation, req.DropoffLocation)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	now := p.now().UTC()
	trip := &domain.Trip{
		CurrentLocation:        req.CurrentLocation,
		PickupLocation:         req.PickupLocation,
		DropoffLocation:        req.DropoffLocation,
		CurrentCycleUsed:       req.CurrentCycleUsed,
		CreatedAt:              now,
		TotalDistanceMiles:     plan.Route.TotalDistanceMiles,
		EstimatedDurationHours: plan.Route.EstimatedDurationHours,
		RoutePoints:            plan.Route.Points,
		Geometry:               plan.Route.Geometry,
		FuelStops:              plan.FuelStops,
		RestStops:              plan.RestStops,
	}

	trip.Logs, err = p.Engine.GenerateLogs(trip.Context(), now)
	if err != nil {
		return nil, fmt.Errorf("plan trip: generate logs: %w", err)
	}

	if err := p.Trips.SaveTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("plan trip: save: %w", err)
	}

	if p.Events != nil {
		if err := p.Events.PublishTripPlanned(ctx, trip); err != nil {
			log.Printf("req_id=%s op=events.trip_planned trip_id=%s err=%v", obs.RequestID(ctx), trip.ID, err)
		}
	}
	return trip, nil
}

// CalculateRoute routes the journey and plans its stops without storing it.
func (p *Planner) CalculateRoute(ctx context.Context, req RouteRequest) (_ *RoutePlan, err error) {
	defer obs.Time(ctx, "services.CalculateRoute")(&err)

	cur := strings.TrimSpace(req.CurrentLocation)
	pick := strings.TrimSpace(req.PickupLocation)
	drop := strings.TrimSpace(req.DropoffLocation)
	if err := validateAddresses(cur, pick, drop); err != nil {
		return nil, err
	}

	plan, err := p.route(ctx, cur, pick, drop)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}
	return plan, nil
}

func (p *Planner) route(ctx context.Context, current, pickup, dropoff string) (*RoutePlan, error) {
	if p.Routes == nil {
		return nil, errors.New("route provider is nil")
	}

	r, err := p.Routes.GetRoute(ctx, current, pickup, dropoff)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	// Unresolvable addresses all land on the same fallback point.
	if r.TotalDistanceMiles <= 0 || r.EstimatedDurationHours <= 0 {
		return nil, domain.ValidationError{
			Field: "locations",
			Msg:   "could not be resolved to distinct places",
		}
	}

	rules := p.Engine.Rules()
	return &RoutePlan{
		Route:     r,
		FuelStops: rules.FuelStops(r.TotalDistanceMiles),
		RestStops: rules.RestStops(r.EstimatedDurationHours),
		TotalDays: hos.TotalDays(r.EstimatedDurationHours),
	}, nil
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func validateAddresses(current, pickup, dropoff string) error {
	fields := []struct{ name, value string }{
		{"current_location", current},
		{"pickup_location", pickup},
		{"dropoff_location", dropoff},
	}
	for _, f := range fields {
		if f.value == "" {
			return domain.ValidationError{Field: f.name, Msg: "is required"}
		}
	}
	return nil
}
