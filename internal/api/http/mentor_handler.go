package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/service"
)

type MentorHandler struct {
	svc service.MentorService
}

func NewMentorHandler(svc service.MentorService) *MentorHandler {
	return &MentorHandler{svc: svc}
}

// List handles GET /api/mentors
func (h *MentorHandler) List(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"mentors": mentors})
}

// Get handles GET /api/mentors/{id}
func (h *MentorHandler) Get(w http.ResponseWriter, r *http.Request) {
	mentor, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mentor)
}

type createMentorRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Expertise   string `json:"expertise"`
}

// Create handles POST /api/admin/mentors
func (h *MentorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMentorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mentor, tempPassword, emailOutcome, err := h.svc.Create(r.Context(), req.Name, req.Email, req.Designation, req.Expertise)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"mentor":             mentor,
		"temporary_password": tempPassword,
		"email":              emailOutcome,
	})
}

type updateMentorProfileRequest struct {
	Designation string `json:"designation"`
	Expertise   string `json:"expertise"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	ProfileLink string `json:"profile_link"`
}

// UpdateProfile handles PUT /api/mentor/profile. Mentors edit their own
// detail record; the primary record stays admin-owned.
func (h *MentorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
		return
	}

	var req updateMentorProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	details := &domain.MentorDetails{
		Designation: req.Designation,
		Expertise:   req.Expertise,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		ProfileLink: req.ProfileLink,
	}
	if err := h.svc.UpdateProfile(r.Context(), ident.UID, details); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Delete handles DELETE /api/admin/mentors/{id}
func (h *MentorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
