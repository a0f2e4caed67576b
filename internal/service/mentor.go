package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
)

type mentorService struct {
	mentorRepo repository.MentorRepository
	provider   identity.Provider
	emailSvc   EmailService
}

func NewMentorService(
	mentorRepo repository.MentorRepository,
	provider identity.Provider,
	emailSvc EmailService,
) MentorService {
	return &mentorService{
		mentorRepo: mentorRepo,
		provider:   provider,
		emailSvc:   emailSvc,
	}
}

// Get layers the editable details sub-record over the primary record.
// Mentors created before the details split have no sub-record; their
// primary fields are served as-is.
func (s *mentorService) Get(ctx context.Context, id string) (*domain.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: mentor %s", ErrNotFound, id)
		}
		return nil, err
	}

	details, err := s.mentorRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return mentor, nil
		}
		return nil, err
	}

	if details.Designation != "" {
		mentor.Designation = details.Designation
	}
	if details.Expertise != "" {
		mentor.Expertise = details.Expertise
	}
	if details.Bio != "" {
		mentor.Bio = details.Bio
	}
	if details.AvatarURL != "" {
		mentor.AvatarURL = details.AvatarURL
	}
	if details.ProfileLink != "" {
		mentor.ProfileLink = details.ProfileLink
	}
	return mentor, nil
}

func (s *mentorService) List(ctx context.Context) ([]domain.Mentor, error) {
	return s.mentorRepo.List(ctx)
}

// Create provisions a mentor account and its primary record. Returns the
// mentor, the generated temporary credential and the welcome-email
// outcome; a failed send never fails the creation.
func (s *mentorService) Create(ctx context.Context, name, email, designation, expertise string) (*domain.Mentor, string, *EmailOutcome, error) {
	if name == "" {
		return nil, "", nil, fmt.Errorf("%w: mentor name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to generate temporary credential: %w", err)
	}

	accountID, err := s.provider.CreateAccount(ctx, email, tempPassword, name)
	if err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			return nil, "", nil, fmt.Errorf("%w: an account already exists for %s", ErrInvalidState, email)
		}
		return nil, "", nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if err := s.provider.RevokeSessions(ctx, accountID); err != nil {
		logger.Warn("Failed to revoke sessions after provisioning", "account_id", accountID, "error", err)
	}
	if err := s.provider.SetRoleClaim(ctx, accountID, string(domain.RoleMentor)); err != nil {
		logger.Warn("Failed to set mentor role claim", "account_id", accountID, "error", err)
	}

	mentor := &domain.Mentor{
		ID:          accountID,
		Name:        name,
		Email:       strings.ToLower(email),
		Designation: designation,
		Expertise:   expertise,
		Status:      domain.UserStatusActive,
	}
	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		if delErr := s.provider.DeleteAccount(ctx, accountID); delErr != nil {
			logger.Warn("Failed to delete provisioned account during rollback", "account_id", accountID, "error", delErr)
		}
		return nil, "", nil, err
	}

	outcome := s.emailSvc.SendAcceptance(ctx, mentor.Email, name, tempPassword)
	return mentor, tempPassword, outcome, nil
}

func (s *mentorService) UpdateProfile(ctx context.Context, mentorID string, details *domain.MentorDetails) error {
	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: mentor %s", ErrNotFound, mentorID)
		}
		return err
	}
	return s.mentorRepo.SetDetails(ctx, mentorID, details)
}

// Delete fires the two document deletes plus the provider account delete
// independently; each is best-effort and a failure in one does not stop
// the others.
func (s *mentorService) Delete(ctx context.Context, id string) (*ActionResult, error) {
	if _, err := s.mentorRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: mentor %s", ErrNotFound, id)
		}
		return nil, err
	}

	var failures []string
	if err := s.mentorRepo.DeleteDetails(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Warn("Failed to delete mentor details", "mentor_id", id, "error", err)
		failures = append(failures, "profile details")
	}
	if err := s.mentorRepo.Delete(ctx, id); err != nil {
		logger.Warn("Failed to delete mentor record", "mentor_id", id, "error", err)
		failures = append(failures, "mentor record")
	}
	if err := s.provider.DeleteAccount(ctx, id); err != nil && !errors.Is(err, identity.ErrAccountNotFound) {
		logger.Warn("Failed to delete mentor account", "mentor_id", id, "error", err)
		failures = append(failures, "account")
	}

	if len(failures) > 0 {
		return &ActionResult{
			Success: false,
			Message: fmt.Sprintf("Mentor partially deleted; failed: %s", strings.Join(failures, ", ")),
		}, nil
	}
	return &ActionResult{Success: true, Message: "Mentor deleted"}, nil
}
