package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"trip-log-service/internal/adapters/render"
	"trip-log-service/internal/api/dto"
	"trip-log-service/internal/ports"
	"trip-log-service/internal/services"
)

type TripHandler struct {
	Planner *services.Planner
	Trips   ports.TripRepository
}

// Create plans a trip, stores it and returns it with its daily logs.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.Planner.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
	})
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, tripResponse(trip))
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Trips.ListTrips(r.Context())
	if err != nil {
		writeServiceError(w, r, "list trips", err)
		return
	}

	res := dto.ListTripResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripResponse(t))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.Trips.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get trip", err)
		return
	}
	writeJSON(w, r, http.StatusOK, tripResponse(trip))
}

func (h *TripHandler) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Trips.ListLogs(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "list logs", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.LogListResponse{Logs: logsResponse(logs)})
}

// LogPDF streams one daily log as a PDF attachment.
func (h *TripHandler) LogPDF(w http.ResponseWriter, r *http.Request) {
	tripID := r.PathValue("id")
	logID, err := strconv.ParseInt(r.PathValue("logID"), 10, 64)
	if err != nil || logID <= 0 {
		writeError(w, r, http.StatusBadRequest, "logID must be a positive integer")
		return
	}

	trip, err := h.Trips.GetTrip(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, "get trip", err)
		return
	}
	l, err := h.Trips.GetLog(r.Context(), tripID, logID)
	if err != nil {
		writeServiceError(w, r, "get log", err)
		return
	}

	body, err := render.DailyLogPDF(trip, l)
	if err != nil {
		writeServiceError(w, r, "render log pdf", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.LogFilename(l)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
