package routing

import (
	"context"
	"strings"

	"trip-log-service/internal/domain"
)

// Coordinates used when an address cannot be resolved.
var DefaultCoordinates = domain.Coordinates{Lon: -74.0060, Lat: 40.7128}

var cityCoordinates = map[string]domain.Coordinates{
	"new york":         {Lon: -74.0060, Lat: 40.7128},
	"new york, ny":     {Lon: -74.0060, Lat: 40.7128},
	"nyc":              {Lon: -74.0060, Lat: 40.7128},
	"philadelphia":     {Lon: -75.1652, Lat: 39.9526},
	"philadelphia, pa": {Lon: -75.1652, Lat: 39.9526},
	"philly":           {Lon: -75.1652, Lat: 39.9526},
	"boston":           {Lon: -71.0589, Lat: 42.3601},
	"boston, ma":       {Lon: -71.0589, Lat: 42.3601},
	"chicago":          {Lon: -87.6298, Lat: 41.8781},
	"chicago, il":      {Lon: -87.6298, Lat: 41.8781},
	"los angeles":      {Lon: -118.2437, Lat: 34.0522},
	"los angeles, ca":  {Lon: -118.2437, Lat: 34.0522},
	"miami":            {Lon: -80.1918, Lat: 25.7617},
	"miami, fl":        {Lon: -80.1918, Lat: 25.7617},
	"houston":          {Lon: -95.3698, Lat: 29.7604},
	"houston, tx":      {Lon: -95.3698, Lat: 29.7604},
	"atlanta":          {Lon: -84.3880, Lat: 33.7490},
	"atlanta, ga":      {Lon: -84.3880, Lat: 33.7490},
	"denver":           {Lon: -104.9903, Lat: 39.7392},
	"denver, co":       {Lon: -104.9903, Lat: 39.7392},
	"seattle":          {Lon: -122.3321, Lat: 47.6062},
	"seattle, wa":      {Lon: -122.3321, Lat: 47.6062},
	"portland":         {Lon: -122.6784, Lat: 45.5152},
	"portland, or":     {Lon: -122.6784, Lat: 45.5152},
	"phoenix":          {Lon: -112.0740, Lat: 33.4484},
	"phoenix, az":      {Lon: -112.0740, Lat: 33.4484},
	"dallas":           {Lon: -96.7970, Lat: 32.7767},
	"dallas, tx":       {Lon: -96.7970, Lat: 32.7767},
}

// StaticGeocoder resolves well-known US cities from a fixed table. Exact
// matches win; otherwise the longest city name contained in the address is
// used, and unknown addresses resolve to DefaultCoordinates.
type StaticGeocoder struct{}

func (StaticGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	key := strings.ToLower(normalize(address))
	if c, ok := cityCoordinates[key]; ok {
		return c, nil
	}

	best := ""
	for city := range cityCoordinates {
		if strings.Contains(key, city) && len(city) > len(best) {
			best = city
		}
	}
	if best != "" {
		return cityCoordinates[best], nil
	}
	return DefaultCoordinates, nil
}
