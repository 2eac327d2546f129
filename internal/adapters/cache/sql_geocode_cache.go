package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized addresses to
// coordinates. Entries never expire; geocodes of a street address are stable.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given addresses. Missing addresses are
// simply absent from the result.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var c domain.Coordinates
		if err := rows.Scan(&addr, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan: %w", err)
		}
		out[addr] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: rows: %w", err)
	}
	return out, nil
}

// Upsert address -> coordinate mappings in one transaction.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put geocode cache: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		updated_at = EXCLUDED.updated_at;
	`)
	if err != nil {
		return fmt.Errorf("put geocode cache: prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("put geocode cache: empty address key")
		}
		if _, err := stmt.ExecContext(ctx, addr, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("put geocode cache address=%q: %w", addr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put geocode cache: commit: %w", err)
	}
	return nil
}

func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
