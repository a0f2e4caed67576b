package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	provider identity.Provider
	emailSvc EmailService
}

func NewUserService(userRepo repository.UserRepository, provider identity.Provider, emailSvc EmailService) UserService {
	return &userService{
		userRepo: userRepo,
		provider: provider,
		emailSvc: emailSvc,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) SetOnboardingMilestone(ctx context.Context, userID, milestone string, value bool) error {
	if !domain.ValidOnboardingMilestone(milestone) {
		return fmt.Errorf("%w: unknown onboarding milestone %q", ErrValidation, milestone)
	}
	err := s.userRepo.SetOnboardingMilestone(ctx, userID, milestone, value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return err
	}
	return nil
}

func (s *userService) SetEmailOptIn(ctx context.Context, userID string, optIn bool) error {
	err := s.userRepo.SetEmailOptIn(ctx, userID, optIn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return err
	}
	return nil
}

// RequestPasswordReset always reports success to the caller so the
// endpoint cannot be used to probe which addresses have accounts.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) (*ActionResult, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	result := &ActionResult{
		Success: true,
		Message: "If an account exists for that address, a reset email has been sent",
	}

	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			return result, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	result.Email = s.emailSvc.SendPasswordReset(ctx, email, link)
	return result, nil
}
