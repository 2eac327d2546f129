package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder resolves addresses with OpenRouteService (/geocode/search),
// checking a persistent cache first. It is safe for concurrent use.
type ORSGeocoder struct {
	client *orsClient
	cache  ports.GeocodeCache
	limit  int
}

func NewORSGeocoder(apiKey, baseURL string, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	client, err := newORSClient(apiKey, baseURL)
	if err != nil {
		return nil, err
	}
	return &ORSGeocoder{client: client, cache: cache, limit: 5}, nil
}

func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	out, err := g.GeocodeMany(ctx, []string{address})
	if err != nil {
		return domain.Coordinates{}, err
	}
	c, ok := out[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode: no result for %q", address)
	}
	return c, nil
}

// GeocodeMany resolves each distinct address once; cache misses are looked up
// concurrently and written back to the cache.
func (g *ORSGeocoder) GeocodeMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.GeocodeMany")(&err)

	byNorm := make(map[string][]string, len(addresses))
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := normalize(a)
		if n == "" {
			return nil, errors.New("geocode: address must be non-empty")
		}
		if _, ok := byNorm[n]; !ok {
			uniq = append(uniq, n)
		}
		byNorm[n] = append(byNorm[n], a)
	}

	hits := map[string]domain.Coordinates{}
	if g.cache != nil {
		hits, err = g.cache.GetMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("geocode: read cache: %w", err)
		}
	}

	misses := make([]string, 0, len(uniq))
	for _, n := range uniq {
		if _, ok := hits[n]; !ok {
			misses = append(misses, n)
		}
	}

	fresh := make(map[string]domain.Coordinates, len(misses))
	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.limit)
	for _, n := range misses {
		eg.Go(func() error {
			c, err := g.search(egCtx, n)
			if err != nil {
				return err
			}
			mu.Lock()
			fresh[n] = c
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.Coordinates, len(addresses))
	for n, originals := range byNorm {
		c, ok := hits[n]
		if !ok {
			c = fresh[n]
		}
		for _, a := range originals {
			out[a] = c
		}
	}
	return out, nil
}

func (g *ORSGeocoder) search(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := g.client.baseURL + "/geocode/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
