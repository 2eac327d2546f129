package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const routeKeyPrefix = "route:"

// RedisRouteCache stores routed journeys as JSON with a per-entry TTL.
type RedisRouteCache struct {
	rdb *redis.Client
}

func NewRedisRouteCache(rdb *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb}
}

type cachedPoint struct {
	Type     string  `json:"type"`
	Address  string  `json:"address"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
	Sequence int     `json:"sequence"`
}

type cachedRoute struct {
	Miles    float64       `json:"miles"`
	Hours    float64       `json:"hours"`
	Points   []cachedPoint `json:"points"`
	Geometry [][]float64   `json:"geometry"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.RouteSummary, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	raw, err := c.rdb.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.RouteSummary{}, false, nil
	}
	if err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return domain.RouteSummary{}, false, fmt.Errorf("decode route cache entry %q: %w", key, err)
	}

	s := domain.RouteSummary{
		TotalDistanceMiles:     cr.Miles,
		EstimatedDurationHours: cr.Hours,
		Geometry:               cr.Geometry,
	}
	for _, p := range cr.Points {
		s.Points = append(s.Points, domain.RoutePoint{
			Type:     domain.RoutePointType(p.Type),
			Address:  p.Address,
			Coords:   domain.Coordinates{Lon: p.Lon, Lat: p.Lat},
			Sequence: p.Sequence,
		})
	}
	return s, true, nil
}

// Put stores summary under key. A non-positive ttl keeps the entry forever.
func (c *RedisRouteCache) Put(ctx context.Context, key string, s domain.RouteSummary, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	cr := cachedRoute{
		Miles:    s.TotalDistanceMiles,
		Hours:    s.EstimatedDurationHours,
		Geometry: s.Geometry,
	}
	for _, p := range s.Points {
		cr.Points = append(cr.Points, cachedPoint{
			Type:     string(p.Type),
			Address:  p.Address,
			Lon:      p.Coords.Lon,
			Lat:      p.Coords.Lat,
			Sequence: p.Sequence,
		})
	}

	raw, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("encode route cache entry %q: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, routeKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}
