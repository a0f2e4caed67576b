package http

import (
	"net/http"
	"time"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /api/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListUpcoming(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
}

// Create handles POST /api/admin/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	}
	if err := h.svc.Create(r.Context(), ident.UID, event); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      event.ID,
	})
}
