package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"incubator-portal-backend/internal/domain"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Applications   *ApplicationHandler
	MentorRequests *MentorRequestHandler
	Mentors        *MentorHandler
	Users          *UserHandler
	Events         *EventHandler
	Auth           *AuthMiddleware
}

// NewRouter builds the full API route table. Every request passes through
// the auth middleware; per-route guards enforce the required role.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(h.Auth.Handler)

	api := r.PathPrefix("/api").Subrouter()

	// Public.
	api.HandleFunc("/applications", h.Applications.Submit).Methods(http.MethodPost)
	api.HandleFunc("/password-reset", h.Users.PasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/mentor-requests/decision", h.MentorRequests.TokenDecision).Methods(http.MethodPost)
	api.HandleFunc("/mentors", h.Mentors.List).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{id}", h.Mentors.Get).Methods(http.MethodGet)
	api.HandleFunc("/events", h.Events.List).Methods(http.MethodGet)

	// Authenticated users.
	api.HandleFunc("/users/me", requireRole(h.Users.Profile, domain.RoleUser, domain.RoleMentor, domain.RoleAdmin)).Methods(http.MethodGet)
	api.HandleFunc("/users/me/onboarding", requireRole(h.Users.Onboarding, domain.RoleUser, domain.RoleMentor, domain.RoleAdmin)).Methods(http.MethodPut)
	api.HandleFunc("/users/me/email-opt-in", requireRole(h.Users.EmailOptIn, domain.RoleUser, domain.RoleMentor, domain.RoleAdmin)).Methods(http.MethodPut)
	api.HandleFunc("/mentor-requests", requireRole(h.MentorRequests.Submit, domain.RoleUser)).Methods(http.MethodPost)
	api.HandleFunc("/mentor-requests", requireRole(h.MentorRequests.ListMine, domain.RoleUser)).Methods(http.MethodGet)

	// Mentors.
	api.HandleFunc("/mentor/requests", requireRole(h.MentorRequests.ListForMentor, domain.RoleMentor)).Methods(http.MethodGet)
	api.HandleFunc("/mentor/requests/{id}/decision", requireRole(h.MentorRequests.MentorDecision, domain.RoleMentor)).Methods(http.MethodPost)
	api.HandleFunc("/mentor/profile", requireRole(h.Mentors.UpdateProfile, domain.RoleMentor)).Methods(http.MethodPut)

	// Admin.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/applications/pending", requireRole(h.Applications.ListPending, domain.RoleAdmin)).Methods(http.MethodGet)
	admin.HandleFunc("/applications/{id}/process", requireRole(h.Applications.Process, domain.RoleAdmin)).Methods(http.MethodPost)
	admin.HandleFunc("/mentor-requests/pending", requireRole(h.MentorRequests.ListPending, domain.RoleAdmin)).Methods(http.MethodGet)
	admin.HandleFunc("/mentor-requests/{id}/decision", requireRole(h.MentorRequests.AdminDecision, domain.RoleAdmin)).Methods(http.MethodPost)
	admin.HandleFunc("/mentors", requireRole(h.Mentors.Create, domain.RoleAdmin)).Methods(http.MethodPost)
	admin.HandleFunc("/mentors/{id}", requireRole(h.Mentors.Delete, domain.RoleAdmin)).Methods(http.MethodDelete)
	admin.HandleFunc("/events", requireRole(h.Events.Create, domain.RoleAdmin)).Methods(http.MethodPost)

	return r
}
