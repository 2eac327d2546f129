package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	RouteCacheTTL time.Duration
	ORSAPIKey     string
	AMQPURL       string
	AMQPExchange  string
	HOSRuleset    string

	DriverName    string
	CarrierName   string
	VehicleNumber string
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration. DATABASE_URL is the only required key.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		ORSAPIKey:     Get("ORS_API_KEY", ""),
		AMQPURL:       Get("AMQP_URL", ""),
		AMQPExchange:  Get("AMQP_EXCHANGE", "trips"),
		HOSRuleset:    Get("HOS_RULESET", "us-70-8"),
		DriverName:    Get("DRIVER_NAME", "Driver"),
		CarrierName:   Get("CARRIER_NAME", "Carrier"),
		VehicleNumber: Get("VEHICLE_NUMBER", "Truck-001"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("load config: DATABASE_URL is required")
	}

	ttl, err := time.ParseDuration(Get("ROUTE_CACHE_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: parse ROUTE_CACHE_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, errors.New("load config: ROUTE_CACHE_TTL must be positive")
	}
	cfg.RouteCacheTTL = ttl

	return cfg, nil
}
