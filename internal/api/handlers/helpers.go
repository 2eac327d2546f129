package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors to 400 and 404. Anything else is
// logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case domain.IsInvalidInput(err):
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, r, http.StatusBadRequest, ve.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "not found")
	default:
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
