package routing

import (
	"context"
	"fmt"
	"sync"

	"trip-log-service/internal/domain"
)

type MockRoute struct {
	Current, Pickup, Dropoff string
	Miles                    float64
	Hours                    float64
}

// MockRouteProvider serves fixed routes keyed by the three addresses and
// counts calls.
type MockRouteProvider struct {
	m     map[string]domain.RouteSummary
	mu    sync.Mutex
	calls int
	Err   error
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[string]domain.RouteSummary, len(routes))
	for _, r := range routes {
		m[r.Current+"|"+r.Pickup+"|"+r.Dropoff] = domain.RouteSummary{
			TotalDistanceMiles:     r.Miles,
			EstimatedDurationHours: r.Hours,
			Points: []domain.RoutePoint{
				{Type: domain.PointStart, Address: r.Current, Sequence: 0},
				{Type: domain.PointPickup, Address: r.Pickup, Sequence: 1},
				{Type: domain.PointDropoff, Address: r.Dropoff, Sequence: 2},
			},
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, current, pickup, dropoff string) (domain.RouteSummary, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Err != nil {
		return domain.RouteSummary{}, p.Err
	}
	r, ok := p.m[current+"|"+pickup+"|"+dropoff]
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf("missing route %q -> %q -> %q", current, pickup, dropoff)
	}
	return r, nil
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
