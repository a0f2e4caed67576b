package http

import (
	"net/http"

	"incubator-portal-backend/internal/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile handles GET /api/users/me
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	user, err := h.svc.GetProfile(r.Context(), ident.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type onboardingRequest struct {
	Milestone string `json:"milestone"`
	Value     bool   `json:"value"`
}

// Onboarding handles PUT /api/users/me/onboarding
func (h *UserHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req onboardingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.SetOnboardingMilestone(r.Context(), ident.UID, req.Milestone, req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type emailOptInRequest struct {
	OptIn bool `json:"opt_in"`
}

// EmailOptIn handles PUT /api/users/me/email-opt-in
func (h *UserHandler) EmailOptIn(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req emailOptInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.SetEmailOptIn(r.Context(), ident.UID, req.OptIn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// PasswordReset handles POST /api/password-reset. Always returns the same
// success shape regardless of whether the address is known.
func (h *UserHandler) PasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := h.svc.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
