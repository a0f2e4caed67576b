package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/service"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps service error kinds to HTTP status codes. The message
// text is display-ready and passed through as-is.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrProvider):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Success: false, Message: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Success: false, Message: err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "invalid request body"})
		return false
	}
	return true
}
