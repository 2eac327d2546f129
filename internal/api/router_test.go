package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trip-log-service/internal/adapters/repositories"
	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/hos"
	"trip-log-service/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := repositories.NewMemoryTripRepository()
	planner := &services.Planner{
		Engine: hos.NewEngine(hos.FederalPropertyCarrying, hos.WithLogHeader(hos.LogHeader{DriverName: "Jane Doe"})),
		Routes: routing.NewMockRouteProvider([]routing.MockRoute{
			{Current: "Chicago, IL", Pickup: "Denver, CO", Dropoff: "Dallas, TX", Miles: 1800, Hours: 30},
		}),
		Trips: repo,
		Now:   func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) },
	}
	srv := httptest.NewServer(NewRouter(planner, repo))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

const tripBody = `{"current_location":"Chicago, IL","pickup_location":"Denver, CO","dropoff_location":"Dallas, TX","current_cycle_used":12}`

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func TestTripLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/trips", tripBody)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created dto.TripResponse
	decode(t, resp, &created)

	if created.ID == "" || created.TotalDistance != 1800 {
		t.Fatalf("unexpected trip: %+v", created)
	}
	if len(created.Logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(created.Logs))
	}
	first := created.Logs[0]
	if first.LogDate != "2026-10-17" || first.DriverName != "Jane Doe" || first.VehicleNumber != "Truck-001" {
		t.Fatalf("unexpected first log header: %+v", first)
	}
	if len(first.DutyStatuses) == 0 || first.DutyStatuses[0].StartTime != "2026-10-17T06:00:00" {
		t.Fatalf("unexpected duty statuses: %+v", first.DutyStatuses)
	}
	if len(created.FuelStops) != 1 {
		t.Fatalf("fuel stops = %d, want 1", len(created.FuelStops))
	}

	resp = do(t, http.MethodGet, srv.URL+"/trips/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/trips/"+created.ID+"/logs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logs status = %d, want 200", resp.StatusCode)
	}
	var logs dto.LogListResponse
	decode(t, resp, &logs)
	if len(logs.Logs) != 2 || logs.Logs[1].LogDate != "2026-10-18" {
		t.Fatalf("unexpected logs: %+v", logs.Logs)
	}

	resp = do(t, http.MethodGet, fmt.Sprintf("%s/trips/%s/logs/%d/pdf", srv.URL, created.ID, logs.Logs[0].ID), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pdf status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "eld_log_2026-10-17_Jane_Doe.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}

	resp = do(t, http.MethodGet, srv.URL+"/trips", "")
	var list dto.ListTripResponse
	decode(t, resp, &list)
	if len(list.Trips) != 1 || list.Trips[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestTripErrors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing pickup", http.MethodPost, "/trips", `{"current_location":"A","dropoff_location":"C"}`, http.StatusBadRequest},
		{"cycle over limit", http.MethodPost, "/trips", `{"current_location":"A","pickup_location":"B","dropoff_location":"C","current_cycle_used":71}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/trips", `{"origin":"A"}`, http.StatusBadRequest},
		{"two objects", http.MethodPost, "/trips", tripBody + tripBody, http.StatusBadRequest},
		{"unknown trip", http.MethodGet, "/trips/nope", "", http.StatusNotFound},
		{"unknown trip logs", http.MethodGet, "/trips/nope/logs", "", http.StatusNotFound},
		{"bad log id", http.MethodGet, "/trips/nope/logs/abc/pdf", "", http.StatusBadRequest},
		{"unknown log", http.MethodGet, "/trips/nope/logs/9/pdf", "", http.StatusNotFound},
		{"route failure", http.MethodPost, "/trips", `{"current_location":"X","pickup_location":"Y","dropoff_location":"Z"}`, http.StatusInternalServerError},
		{"method not allowed", http.MethodDelete, "/trips", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		resp := do(t, tc.method, srv.URL+tc.path, tc.body)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, resp.StatusCode, tc.want)
		}
	}
}

func TestCalculateRoute(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/route",
		`{"current_location":"Chicago, IL","pickup_location":"Denver, CO","dropoff_location":"Dallas, TX"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var route dto.RouteResponse
	decode(t, resp, &route)
	if route.TotalDays != 2 || len(route.RestStops) != 3 || len(route.RoutePoints) != 3 {
		t.Fatalf("unexpected route: %+v", route)
	}

	resp = do(t, http.MethodGet, srv.URL+"/trips", "")
	var list dto.ListTripResponse
	decode(t, resp, &list)
	if len(list.Trips) != 0 {
		t.Fatalf("route calculation created a trip")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q, want abc-123", got)
	}
}
