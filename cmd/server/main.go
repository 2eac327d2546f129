package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trip-log-service/internal/adapters/cache"
	"trip-log-service/internal/adapters/events"
	"trip-log-service/internal/adapters/repositories"
	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/api"
	"trip-log-service/internal/config"
	"trip-log-service/internal/hos"
	"trip-log-service/internal/platform/db"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, ORS, Redis, RabbitMQ) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rules, err := hos.RulesetByName(cfg.HOSRuleset)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatal(err)
	}

	// Straight-line routing keeps the service usable without an ORS key or
	// when ORS is down.
	var routes ports.RouteProvider = routing.NewStraightLineRouteProvider(routing.StaticGeocoder{})
	if cfg.ORSAPIKey != "" {
		geocoder, err := routing.NewORSGeocoder(cfg.ORSAPIKey, "", cache.NewSQLGeocodeCache(sqlDB))
		if err != nil {
			log.Fatal(err)
		}
		ors, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, "", geocoder)
		if err != nil {
			log.Fatal(err)
		}
		routes = &routing.FallbackRouteProvider{Primary: ors, Fallback: routes}
	} else {
		log.Println("ORS_API_KEY not set, using straight-line routing")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		routes = &routing.CachedRouteProvider{
			Provider: routes,
			Cache:    cache.NewRedisRouteCache(rdb),
			TTL:      cfg.RouteCacheTTL,
		}
	}

	var publisher ports.TripEventPublisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		mq, err := events.DialRabbitMQ(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal(err)
		}
		defer mq.Close()
		publisher = mq
	}

	engine := hos.NewEngine(rules, hos.WithLogHeader(hos.LogHeader{
		DriverName:    cfg.DriverName,
		CarrierName:   cfg.CarrierName,
		VehicleNumber: cfg.VehicleNumber,
	}))

	trips := repositories.NewPostgresTripRepository(sqlDB)
	planner := &services.Planner{
		Engine: engine,
		Routes: routes,
		Trips:  trips,
		Events: publisher,
	}
	router := api.NewRouter(planner, trips)

	// Timeouts are tuned for cold-cache routing (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s ruleset=%s", cfg.Port, rules.Name)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
