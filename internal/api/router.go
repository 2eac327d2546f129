package api

import (
	"net/http"

	"trip-log-service/internal/api/handlers"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(planner *services.Planner, trips ports.TripRepository) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{Planner: planner, Trips: trips}
	routeHandler := &handlers.RouteHandler{Planner: planner}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("POST /trips", tripHandler.Create)
	mux.HandleFunc("GET /trips/{id}", tripHandler.Get)
	mux.HandleFunc("GET /trips/{id}/logs", tripHandler.Logs)
	mux.HandleFunc("GET /trips/{id}/logs/{logID}/pdf", tripHandler.LogPDF)
	mux.HandleFunc("POST /route", routeHandler.Calculate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
