package routing

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"trip-log-service/internal/domain"
)

func TestStaticGeocoder(t *testing.T) {
	cases := []struct {
		address string
		want    domain.Coordinates
	}{
		{"Chicago, IL", cityCoordinates["chicago"]},
		{"  DENVER ", cityCoordinates["denver"]},
		{"123 Main St, Portland, OR 97201", cityCoordinates["portland"]},
		{"somewhere nobody has heard of", DefaultCoordinates},
	}
	for _, tc := range cases {
		got, err := StaticGeocoder{}.Geocode(context.Background(), tc.address)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.address, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %+v, want %+v", tc.address, got, tc.want)
		}
	}
}

func TestHaversineMiles(t *testing.T) {
	ny := cityCoordinates["new york"]
	la := cityCoordinates["los angeles"]
	d := HaversineMiles(ny, la)
	if d < 2430 || d > 2460 {
		t.Fatalf("NY-LA = %v miles, want about 2445", d)
	}
	if HaversineMiles(ny, ny) != 0 {
		t.Fatalf("expected zero distance to self")
	}
}

func TestStraightLineRouteProvider(t *testing.T) {
	p := NewStraightLineRouteProvider(nil)
	r, err := p.GetRoute(context.Background(), "New York, NY", "Philadelphia, PA", "Boston, MA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := HaversineMiles(cityCoordinates["new york"], cityCoordinates["philadelphia"]) +
		HaversineMiles(cityCoordinates["philadelphia"], cityCoordinates["boston"])
	if math.Abs(r.TotalDistanceMiles-want) > 1e-9 {
		t.Fatalf("miles = %v, want %v", r.TotalDistanceMiles, want)
	}
	if math.Abs(r.EstimatedDurationHours-want/60*1.2) > 1e-9 {
		t.Fatalf("hours = %v, want %v", r.EstimatedDurationHours, want/60*1.2)
	}
	if len(r.Points) != 3 || len(r.Geometry) != 3 {
		t.Fatalf("points = %d geometry = %d, want 3 each", len(r.Points), len(r.Geometry))
	}
}

func TestFallbackRouteProvider(t *testing.T) {
	primary := NewMockRouteProvider(nil)
	primary.Err = errors.New("upstream down")
	fallback := NewMockRouteProvider([]MockRoute{{Current: "A", Pickup: "B", Dropoff: "C", Miles: 10, Hours: 1}})

	p := &FallbackRouteProvider{Primary: primary, Fallback: fallback}
	r, err := p.GetRoute(context.Background(), "A", "B", "C")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalDistanceMiles != 10 || primary.Calls() != 1 || fallback.Calls() != 1 {
		t.Fatalf("miles = %v primary = %d fallback = %d", r.TotalDistanceMiles, primary.Calls(), fallback.Calls())
	}

	primary.Err = context.Canceled
	if _, err := p.GetRoute(context.Background(), "A", "B", "C"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to pass through, got %v", err)
	}
	if fallback.Calls() != 1 {
		t.Fatalf("fallback called on cancellation")
	}
}

type memRouteCache struct {
	data map[string]domain.RouteSummary
	ttl  time.Duration
	err  error
}

func (c *memRouteCache) Get(_ context.Context, key string) (domain.RouteSummary, bool, error) {
	if c.err != nil {
		return domain.RouteSummary{}, false, c.err
	}
	r, ok := c.data[key]
	return r, ok, nil
}

func (c *memRouteCache) Put(_ context.Context, key string, s domain.RouteSummary, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.data[key] = s
	c.ttl = ttl
	return nil
}

func TestCachedRouteProvider(t *testing.T) {
	inner := NewMockRouteProvider([]MockRoute{{Current: "A", Pickup: "B", Dropoff: "C", Miles: 42, Hours: 1}})
	cache := &memRouteCache{data: map[string]domain.RouteSummary{}}
	p := &CachedRouteProvider{Provider: inner, Cache: cache, TTL: time.Hour}

	for i := 0; i < 3; i++ {
		r, err := p.GetRoute(context.Background(), "A", "B", "C")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.TotalDistanceMiles != 42 {
			t.Fatalf("miles = %v, want 42", r.TotalDistanceMiles)
		}
	}
	if inner.Calls() != 1 {
		t.Fatalf("provider calls = %d, want 1", inner.Calls())
	}
	if cache.ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", cache.ttl)
	}
	if _, ok := cache.data[RouteKey(" a ", "B", "c")]; !ok {
		t.Fatalf("expected normalized key in cache")
	}

	cache.err = errors.New("cache offline")
	if _, err := p.GetRoute(context.Background(), "A", "B", "C"); err != nil {
		t.Fatalf("cache failure should not fail lookup: %v", err)
	}
	if inner.Calls() != 2 {
		t.Fatalf("provider calls = %d, want 2", inner.Calls())
	}
}
