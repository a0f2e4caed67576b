package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"time"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
)

const (
	tempPasswordLength  = 10
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type applicationService struct {
	subRepo  repository.SubmissionRepository
	userRepo repository.UserRepository
	provider identity.Provider
	emailSvc EmailService
}

func NewApplicationService(
	subRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	provider identity.Provider,
	emailSvc EmailService,
) ApplicationService {
	return &applicationService{
		subRepo:  subRepo,
		userRepo: userRepo,
		provider: provider,
		emailSvc: emailSvc,
	}
}

func (s *applicationService) SubmitApplication(ctx context.Context, sub *domain.Submission) error {
	if sub.Name == "" || sub.Idea == "" {
		return fmt.Errorf("%w: name and idea are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(sub.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	sub.Status = domain.SubmissionStatusPending
	return s.subRepo.Create(ctx, sub)
}

func (s *applicationService) ListPending(ctx context.Context) ([]domain.Submission, error) {
	return s.subRepo.ListByStatus(ctx, domain.SubmissionStatusPending)
}

// ProcessApplication decides a pending submission. The status check is
// re-run inside the store transaction on write, so two concurrent
// processings of the same submission cannot both succeed.
func (s *applicationService) ProcessApplication(ctx context.Context, submissionID string, action ProcessAction, applicantName, applicantEmail string) (*ProcessResult, error) {
	if action != ProcessActionAccept && action != ProcessActionReject {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	sub, err := s.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		}
		return nil, err
	}
	if sub.Status != domain.SubmissionStatusPending {
		return nil, fmt.Errorf("%w: submission %s has already been processed (%s)", ErrInvalidState, submissionID, sub.Status)
	}

	if applicantName == "" {
		applicantName = sub.Name
	}
	if applicantEmail == "" {
		applicantEmail = sub.Email
	}

	if action == ProcessActionReject {
		return s.reject(ctx, sub, applicantName, applicantEmail)
	}
	return s.accept(ctx, sub, applicantName, applicantEmail)
}

func (s *applicationService) reject(ctx context.Context, sub *domain.Submission, name, email string) (*ProcessResult, error) {
	if err := s.subRepo.MarkRejected(ctx, sub.ID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: submission %s has already been processed", ErrInvalidState, sub.ID)
		}
		return nil, err
	}

	outcome := s.emailSvc.SendRejection(ctx, email, name)
	return &ProcessResult{
		Status:  "success",
		Message: fmt.Sprintf("Application from %s rejected", name),
		Email:   outcome,
	}, nil
}

func (s *applicationService) accept(ctx context.Context, sub *domain.Submission, name, email string) (*ProcessResult, error) {
	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary credential: %w", err)
	}

	// Provision the identity first; nothing is mutated if this fails.
	accountID, err := s.provider.CreateAccount(ctx, email, tempPassword, name)
	if err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			return nil, fmt.Errorf("%w: an account already exists for %s", ErrInvalidState, email)
		}
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	// Provisioning can leave a live session for the new account; end it.
	if err := s.provider.RevokeSessions(ctx, accountID); err != nil {
		logger.Warn("Failed to revoke sessions after provisioning", "account_id", accountID, "error", err)
	}

	user := &domain.User{
		ID:           accountID,
		Email:        email,
		Name:         name,
		Status:       domain.UserStatusActive,
		Role:         domain.RoleUser,
		SubmissionID: sub.ID,
		Onboarding:   domain.OnboardingProgress{},
		EmailOptIn:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.compensate(ctx, accountID)
		return nil, fmt.Errorf("failed to create user account: %w", err)
	}

	if err := s.subRepo.MarkAccepted(ctx, sub.ID, accountID, tempPassword, time.Now()); err != nil {
		s.compensate(ctx, accountID)
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: submission %s has already been processed", ErrInvalidState, sub.ID)
		}
		return nil, err
	}

	outcome := s.emailSvc.SendAcceptance(ctx, email, name, tempPassword)
	return &ProcessResult{
		Status:            "success",
		Message:           fmt.Sprintf("Application from %s accepted, account created", name),
		AccountID:         accountID,
		TemporaryPassword: tempPassword,
		Email:             outcome,
	}, nil
}

// compensate deletes the provisioned identity when a later step of the
// accept sequence fails, so no orphaned account is left behind.
func (s *applicationService) compensate(ctx context.Context, accountID string) {
	if err := s.provider.DeleteAccount(ctx, accountID); err != nil {
		logger.Warn("Failed to delete provisioned account during rollback", "account_id", accountID, "error", err)
	}
}

func generateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordCharset[n.Int64()]
	}
	return string(buf), nil
}
