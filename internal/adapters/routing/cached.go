package routing

import (
	"context"
	"log"
	"strings"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

// CachedRouteProvider serves repeated journeys from a RouteCache. Cache
// errors are logged and never fail the lookup.
type CachedRouteProvider struct {
	Provider ports.RouteProvider
	Cache    ports.RouteCache
	TTL      time.Duration
}

// RouteKey is the cache key for a journey: the three normalized,
// lower-cased addresses joined by "|".
func RouteKey(current, pickup, dropoff string) string {
	parts := []string{current, pickup, dropoff}
	for i, p := range parts {
		parts[i] = strings.ToLower(normalize(p))
	}
	return strings.Join(parts, "|")
}

func (c *CachedRouteProvider) GetRoute(ctx context.Context, current, pickup, dropoff string) (domain.RouteSummary, error) {
	key := RouteKey(current, pickup, dropoff)

	if c.Cache != nil {
		r, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("route cache read failed: key=%q err=%v", key, err)
		} else if ok {
			return r, nil
		}
	}

	r, err := c.Provider.GetRoute(ctx, current, pickup, dropoff)
	if err != nil {
		return domain.RouteSummary{}, err
	}

	if c.Cache != nil {
		if err := c.Cache.Put(ctx, key, r, c.TTL); err != nil {
			log.Printf("route cache write failed: key=%q err=%v", key, err)
		}
	}
	return r, nil
}
