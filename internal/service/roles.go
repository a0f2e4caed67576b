package service

import (
	"context"
	"errors"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/repository"
)

type roleService struct {
	provider   identity.Provider
	mentorRepo repository.MentorRepository
	userRepo   repository.UserRepository
}

func NewRoleService(provider identity.Provider, mentorRepo repository.MentorRepository, userRepo repository.UserRepository) RoleService {
	return &roleService{
		provider:   provider,
		mentorRepo: mentorRepo,
		userRepo:   userRepo,
	}
}

// Resolve maps a bearer id token to a role. Admin comes from the
// provider's role claim; mentor and user from the existence of the
// matching record. An invalid token or an identity with no record at all
// resolves to unauthenticated.
func (s *roleService) Resolve(ctx context.Context, idToken string) (domain.Role, *identity.Identity, error) {
	ident, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.RoleUnauthenticated, nil, nil
	}

	if role, ok := ident.Claims["role"].(string); ok && role == string(domain.RoleAdmin) {
		return domain.RoleAdmin, ident, nil
	}

	if _, err := s.mentorRepo.GetByID(ctx, ident.UID); err == nil {
		return domain.RoleMentor, ident, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.RoleUnauthenticated, nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, ident.UID); err == nil {
		return domain.RoleUser, ident, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return domain.RoleUnauthenticated, nil, err
	}

	return domain.RoleUnauthenticated, nil, nil
}
