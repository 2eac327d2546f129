package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

const (
	metersPerMile = 1609.34
	hgvProfile    = "driving-hgv"
)

type directionsRequest struct {
	Coordinates [][]float64       `json:"coordinates"`
	Options     directionsOptions `json:"options"`
}

type directionsOptions struct {
	AvoidFeatures []string `json:"avoid_features,omitempty"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSRouteProvider routes a truck (heavy goods vehicle profile) through the
// three trip points with OpenRouteService directions.
type ORSRouteProvider struct {
	client   *orsClient
	geocoder ports.Geocoder
	profile  string
}

func NewORSRouteProvider(apiKey, baseURL string, geocoder ports.Geocoder) (*ORSRouteProvider, error) {
	if geocoder == nil {
		return nil, errors.New("ORS route provider: geocoder is nil")
	}
	client, err := newORSClient(apiKey, baseURL)
	if err != nil {
		return nil, err
	}
	return &ORSRouteProvider{client: client, geocoder: geocoder, profile: hgvProfile}, nil
}

func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	current, pickup, dropoff string,
) (_ domain.RouteSummary, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	points, err := resolvePoints(ctx, o.geocoder, current, pickup, dropoff)
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("ORS route: %w", err)
	}

	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.Coords.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: coords,
		Options:     directionsOptions{AvoidFeatures: []string{"tollways"}},
	})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.client.baseURL, o.profile)
	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		return o.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return domain.RouteSummary{}, fmt.Errorf("decode directions response: %w", err)
	}
	if len(dr.Features) == 0 {
		return domain.RouteSummary{}, errors.New("directions response has no route")
	}

	f := dr.Features[0]
	return domain.RouteSummary{
		TotalDistanceMiles:     f.Properties.Summary.Distance / metersPerMile,
		EstimatedDurationHours: f.Properties.Summary.Duration / 3600,
		Points:                 points,
		Geometry:               f.Geometry.Coordinates,
	}, nil
}

// resolvePoints geocodes the three trip addresses, in one batch when the
// geocoder supports it and concurrently otherwise.
func resolvePoints(ctx context.Context, g ports.Geocoder, current, pickup, dropoff string) ([]domain.RoutePoint, error) {
	points := []domain.RoutePoint{
		{Type: domain.PointStart, Address: current, Sequence: 0},
		{Type: domain.PointPickup, Address: pickup, Sequence: 1},
		{Type: domain.PointDropoff, Address: dropoff, Sequence: 2},
	}

	if bg, ok := g.(ports.BatchGeocoder); ok {
		found, err := bg.GeocodeMany(ctx, []string{current, pickup, dropoff})
		if err != nil {
			return nil, fmt.Errorf("geocode route points: %w", err)
		}
		for i := range points {
			c, ok := found[points[i].Address]
			if !ok {
				return nil, fmt.Errorf("missing coordinate for %s %q", points[i].Type, points[i].Address)
			}
			points[i].Coords = c
		}
		return points, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range points {
		eg.Go(func() error {
			c, err := g.Geocode(egCtx, points[i].Address)
			if err != nil {
				return fmt.Errorf("geocode %s %q: %w", points[i].Type, points[i].Address, err)
			}
			points[i].Coords = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
