package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nkhare/divvy/internal/models"
)

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses: validation to 400, not
// found to 404, conflict to 409, anything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *models.ValidationError
		nerr *models.NotFoundError
		cerr *models.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: verr.Message})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, errorResponse{Code: http.StatusNotFound, Message: nerr.Message})
	case errors.As(err, &cerr):
		writeJSON(w, http.StatusConflict, errorResponse{Code: http.StatusConflict, Message: cerr.Message})
	default:
		slog.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Code: http.StatusInternalServerError, Message: "internal error"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
		return false
	}
	return true
}
