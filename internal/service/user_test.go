package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/repository"
	"incubator-portal-backend/internal/service"
)

func newUserFixture() (*MockUserRepo, *MockIdentityProvider, *MockEmailService, service.UserService) {
	userRepo := new(MockUserRepo)
	provider := new(MockIdentityProvider)
	emailSvc := new(MockEmailService)
	svc := service.NewUserService(userRepo, provider, emailSvc)
	return userRepo, provider, emailSvc, svc
}

func TestRequestPasswordReset_KnownAddress(t *testing.T) {
	_, provider, emailSvc, svc := newUserFixture()
	ctx := context.Background()

	provider.On("PasswordResetLink", ctx, "asha@example.com").Return("https://reset.example/abc", nil)
	emailSvc.On("SendPasswordReset", ctx, "asha@example.com", "https://reset.example/abc").
		Return(&service.EmailOutcome{To: "asha@example.com", Sent: true})

	result, err := svc.RequestPasswordReset(ctx, "asha@example.com")
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Email.Sent)
}

func TestRequestPasswordReset_UnknownAddressLooksIdentical(t *testing.T) {
	_, provider, emailSvc, svc := newUserFixture()
	ctx := context.Background()

	provider.On("PasswordResetLink", ctx, "nobody@example.com").Return("", identity.ErrAccountNotFound)

	result, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "If an account exists for that address, a reset email has been sent", result.Message)
	emailSvc.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPasswordReset_InvalidAddress(t *testing.T) {
	_, _, _, svc := newUserFixture()

	_, err := svc.RequestPasswordReset(context.Background(), "not-an-email")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSetOnboardingMilestone_UnknownUser(t *testing.T) {
	userRepo, _, _, svc := newUserFixture()
	ctx := context.Background()

	userRepo.On("SetOnboardingMilestone", ctx, "missing", "passwordChanged", true).
		Return(repository.ErrNotFound)

	err := svc.SetOnboardingMilestone(ctx, "missing", "passwordChanged", true)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetOnboardingMilestone_UnknownMilestone(t *testing.T) {
	userRepo, _, _, svc := newUserFixture()

	err := svc.SetOnboardingMilestone(context.Background(), "uid-1", "bogus", true)
	assert.ErrorIs(t, err, service.ErrValidation)
	userRepo.AssertNotCalled(t, "SetOnboardingMilestone",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetEmailOptIn(t *testing.T) {
	userRepo, _, _, svc := newUserFixture()
	ctx := context.Background()

	userRepo.On("SetEmailOptIn", ctx, "uid-1", false).Return(nil)

	err := svc.SetEmailOptIn(ctx, "uid-1", false)
	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}
