package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/service"
)

type ApplicationHandler struct {
	svc service.ApplicationService
}

func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type submitApplicationRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Company      string `json:"company"`
	Idea         string `json:"idea"`
	CampusStatus string `json:"campus_status"`
}

// Submit handles POST /api/applications
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sub := &domain.Submission{
		Name:         req.Name,
		Email:        req.Email,
		Company:      req.Company,
		Idea:         req.Idea,
		CampusStatus: domain.CampusStatus(req.CampusStatus),
	}
	if err := h.svc.SubmitApplication(r.Context(), sub); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      sub.ID,
	})
}

// ListPending handles GET /api/admin/applications/pending
func (h *ApplicationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"submissions": subs})
}

type processApplicationRequest struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Process handles POST /api/admin/applications/{id}/process
func (h *ApplicationHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processApplicationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.ProcessApplication(
		r.Context(),
		mux.Vars(r)["id"],
		service.ProcessAction(req.Action),
		req.Name,
		req.Email,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
