package http

import (
	"context"
	"net/http"
	"strings"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/service"
)

type contextKey string

const (
	contextKeyRole     contextKey = "role"
	contextKeyIdentity contextKey = "identity"
)

// AuthMiddleware resolves the caller's role from the Authorization bearer
// token. Requests without a (valid) token proceed as unauthenticated;
// route guards decide what that is allowed to reach.
type AuthMiddleware struct {
	roles service.RoleService
}

func NewAuthMiddleware(roles service.RoleService) *AuthMiddleware {
	return &AuthMiddleware{roles: roles}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := domain.RoleUnauthenticated
		var ident *identity.Identity

		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			resolved, resolvedIdent, err := m.roles.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}
			role = resolved
			ident = resolvedIdent
		}

		ctx := context.WithValue(r.Context(), contextKeyRole, role)
		ctx = context.WithValue(ctx, contextKeyIdentity, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func roleFrom(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(contextKeyRole).(domain.Role); ok {
		return role
	}
	return domain.RoleUnauthenticated
}

func identityFrom(ctx context.Context) *identity.Identity {
	ident, _ := ctx.Value(contextKeyIdentity).(*identity.Identity)
	return ident
}

// requireRole guards a handler; any of the listed roles is accepted.
func requireRole(next http.HandlerFunc, roles ...domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := roleFrom(r.Context())
		for _, role := range roles {
			if current == role {
				next(w, r)
				return
			}
		}
		if current == domain.RoleUnauthenticated {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "authentication required"})
			return
		}
		writeJSON(w, http.StatusForbidden, errorResponse{Success: false, Message: "insufficient permissions"})
	}
}
