package handlers

import (
	"net/http"

	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/services"
)

type RouteHandler struct {
	Planner *services.Planner
}

// Calculate routes a journey and plans its stops without creating a trip.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	plan, err := h.Planner.CalculateRoute(r.Context(), services.RouteRequest{
		CurrentLocation: req.CurrentLocation,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
	})
	if err != nil {
		writeServiceError(w, r, "calculate route", err)
		return
	}
	writeJSON(w, r, http.StatusOK, routeResponse(plan))
}
