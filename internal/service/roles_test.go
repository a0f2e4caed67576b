package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/repository"
	"incubator-portal-backend/internal/service"
)

func newRoleFixture() (*MockIdentityProvider, *MockMentorRepo, *MockUserRepo, service.RoleService) {
	provider := new(MockIdentityProvider)
	mentorRepo := new(MockMentorRepo)
	userRepo := new(MockUserRepo)
	svc := service.NewRoleService(provider, mentorRepo, userRepo)
	return provider, mentorRepo, userRepo, svc
}

func TestResolve_InvalidToken(t *testing.T) {
	provider, _, _, svc := newRoleFixture()
	ctx := context.Background()

	provider.On("VerifyIDToken", ctx, "bad-token").Return(nil, identity.ErrAccountNotFound)

	role, ident, err := svc.Resolve(ctx, "bad-token")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUnauthenticated, role)
	assert.Nil(t, ident)
}

func TestResolve_AdminClaim(t *testing.T) {
	provider, mentorRepo, _, svc := newRoleFixture()
	ctx := context.Background()

	provider.On("VerifyIDToken", ctx, "token").Return(&identity.Identity{
		UID:    "uid-admin",
		Email:  "admin@example.com",
		Claims: map[string]interface{}{"role": "admin"},
	}, nil)

	role, ident, err := svc.Resolve(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
	assert.Equal(t, "uid-admin", ident.UID)

	// The claim short-circuits; no record lookups needed.
	mentorRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestResolve_Mentor(t *testing.T) {
	provider, mentorRepo, _, svc := newRoleFixture()
	ctx := context.Background()

	provider.On("VerifyIDToken", ctx, "token").Return(&identity.Identity{
		UID: "uid-m", Email: "dev@example.com", Claims: map[string]interface{}{},
	}, nil)
	mentorRepo.On("GetByID", ctx, "uid-m").Return(&domain.Mentor{ID: "uid-m"}, nil)

	role, ident, err := svc.Resolve(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleMentor, role)
	assert.Equal(t, "dev@example.com", ident.Email)
}

func TestResolve_User(t *testing.T) {
	provider, mentorRepo, userRepo, svc := newRoleFixture()
	ctx := context.Background()

	provider.On("VerifyIDToken", ctx, "token").Return(&identity.Identity{
		UID: "uid-u", Claims: map[string]interface{}{},
	}, nil)
	mentorRepo.On("GetByID", ctx, "uid-u").Return(nil, repository.ErrNotFound)
	userRepo.On("GetByID", ctx, "uid-u").Return(&domain.User{ID: "uid-u"}, nil)

	role, _, err := svc.Resolve(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)
}

func TestResolve_KnownIdentityWithoutRecord(t *testing.T) {
	provider, mentorRepo, userRepo, svc := newRoleFixture()
	ctx := context.Background()

	provider.On("VerifyIDToken", ctx, "token").Return(&identity.Identity{
		UID: "uid-x", Claims: map[string]interface{}{},
	}, nil)
	mentorRepo.On("GetByID", ctx, "uid-x").Return(nil, repository.ErrNotFound)
	userRepo.On("GetByID", ctx, "uid-x").Return(nil, repository.ErrNotFound)

	role, ident, err := svc.Resolve(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleUnauthenticated, role)
	assert.Nil(t, ident)
}
