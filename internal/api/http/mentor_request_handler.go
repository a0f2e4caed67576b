package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"incubator-portal-backend/internal/service"
)

type MentorRequestHandler struct {
	svc service.MentorRequestService
}

func NewMentorRequestHandler(svc service.MentorRequestService) *MentorRequestHandler {
	return &MentorRequestHandler{svc: svc}
}

type submitMentorRequestRequest struct {
	MentorID string `json:"mentor_id"`
	Message  string `json:"message"`
}

// Submit handles POST /api/mentor-requests
func (h *MentorRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req submitMentorRequestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name, _ := ident.Claims["name"].(string)
	result, err := h.svc.Submit(r.Context(), ident.UID, ident.Email, name, req.MentorID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListMine handles GET /api/mentor-requests
func (h *MentorRequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	reqs, err := h.svc.ListForUser(r.Context(), ident.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": reqs})
}

// ListPending handles GET /api/admin/mentor-requests/pending
func (h *MentorRequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.svc.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": reqs})
}

type decisionRequest struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

// AdminDecision handles POST /api/admin/mentor-requests/{id}/decision
func (h *MentorRequestHandler) AdminDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.AdminDecision(r.Context(), mux.Vars(r)["id"], service.DecisionAction(req.Action), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListForMentor handles GET /api/mentor/requests
func (h *MentorRequestHandler) ListForMentor(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	reqs, err := h.svc.ListForMentor(r.Context(), ident.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": reqs})
}

// MentorDecision handles POST /api/mentor/requests/{id}/decision
func (h *MentorRequestHandler) MentorDecision(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req decisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.MentorDecision(r.Context(), mux.Vars(r)["id"], service.DecisionAction(req.Action), req.Notes, ident.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type tokenDecisionRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

// TokenDecision handles POST /api/mentor-requests/decision. It is
// unauthenticated by design: the token in the body is the capability.
func (h *MentorRequestHandler) TokenDecision(w http.ResponseWriter, r *http.Request) {
	var req tokenDecisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.MentorDecisionWithToken(r.Context(), req.Token, service.DecisionAction(req.Action), req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
