package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
	"incubator-portal-backend/internal/security"
)

const (
	requestMessageMinLen = 10
	requestMessageMaxLen = 500
)

type mentorRequestService struct {
	reqRepo    repository.MentorRequestRepository
	mentorRepo repository.MentorRepository
	tokens     security.TokenManager
	emailSvc   EmailService
}

func NewMentorRequestService(
	reqRepo repository.MentorRequestRepository,
	mentorRepo repository.MentorRepository,
	tokens security.TokenManager,
	emailSvc EmailService,
) MentorRequestService {
	return &mentorRequestService{
		reqRepo:    reqRepo,
		mentorRepo: mentorRepo,
		tokens:     tokens,
		emailSvc:   emailSvc,
	}
}

func (s *mentorRequestService) Submit(ctx context.Context, userID, userEmail, userName, mentorID, message string) (*ActionResult, error) {
	message = strings.TrimSpace(message)
	if n := utf8.RuneCountInString(message); n < requestMessageMinLen || n > requestMessageMaxLen {
		return nil, fmt.Errorf("%w: request message must be between %d and %d characters",
			ErrValidation, requestMessageMinLen, requestMessageMaxLen)
	}

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: mentor %s", ErrNotFound, mentorID)
		}
		return nil, err
	}

	// Advisory only: without a store-level constraint a race can still
	// slip a duplicate through.
	if _, err := s.reqRepo.FindOpen(ctx, userID, mentorID); err == nil {
		return nil, fmt.Errorf("%w: you already have an open request with this mentor", ErrValidation)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	req := &domain.MentorRequest{
		UserID:      userID,
		UserName:    userName,
		UserEmail:   userEmail,
		MentorID:    mentor.ID,
		MentorName:  mentor.Name,
		MentorEmail: mentor.Email,
		Message:     message,
		Status:      domain.MentorRequestStatusPending,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	return &ActionResult{
		Success: true,
		Message: fmt.Sprintf("Your request to %s has been submitted for admin review", mentor.Name),
	}, nil
}

func (s *mentorRequestService) AdminDecision(ctx context.Context, requestID string, action DecisionAction, notes string) (*ActionResult, error) {
	if action != DecisionActionApprove && action != DecisionActionReject {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}

	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.MentorRequestStatusPending {
		return nil, fmt.Errorf("%w: request %s is %s, not pending", ErrInvalidState, requestID, req.Status)
	}

	now := time.Now()

	if action == DecisionActionReject {
		if err := s.reqRepo.AdminTransition(ctx, requestID, domain.MentorRequestStatusAdminRejected, notes, "", now); err != nil {
			return nil, mapTransitionErr(err, requestID)
		}
		outcome := s.emailSvc.SendRequestOutcome(ctx, req.UserEmail, req.UserName, req.MentorName, false, notes)
		return &ActionResult{
			Success: true,
			Message: "Request rejected",
			Email:   outcome,
		}, nil
	}

	// Approve: issue the decision token the mentor will act with, persist
	// its digest together with the transition, then email the action link.
	token, tokenID, err := s.tokens.GenerateDecisionToken(req.ID, req.MentorEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to generate decision token: %w", err)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(tokenID), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to digest decision token: %w", err)
	}

	if err := s.reqRepo.AdminTransition(ctx, requestID, domain.MentorRequestStatusAdminApproved, notes, string(digest), now); err != nil {
		return nil, mapTransitionErr(err, requestID)
	}

	outcome := s.emailSvc.SendMentorActionRequest(ctx, req.MentorEmail, req.MentorName, req.UserName, req.Message, token)
	return &ActionResult{
		Success: true,
		Message: fmt.Sprintf("Request approved and forwarded to %s", req.MentorName),
		Email:   outcome,
	}, nil
}

func (s *mentorRequestService) MentorDecision(ctx context.Context, requestID string, action DecisionAction, notes, callerMentorEmail string) (*ActionResult, error) {
	req, err := s.getRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(callerMentorEmail, req.MentorEmail) {
		return nil, fmt.Errorf("%w: this request is addressed to a different mentor", ErrUnauthorized)
	}
	return s.decide(ctx, req, action, notes)
}

func (s *mentorRequestService) MentorDecisionWithToken(ctx context.Context, token string, action DecisionAction, notes string) (*ActionResult, error) {
	claims, err := s.tokens.ValidateDecisionToken(token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, fmt.Errorf("%w: the decision link has expired", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid decision link", ErrUnauthorized)
	}

	req, err := s.getRequest(ctx, claims.RequestID)
	if err != nil {
		return nil, err
	}

	// A consumed or superseded token no longer matches the stored digest.
	if req.DecisionTokenDigest == "" ||
		bcrypt.CompareHashAndPassword([]byte(req.DecisionTokenDigest), []byte(claims.ID)) != nil {
		return nil, fmt.Errorf("%w: this decision link is no longer valid", ErrUnauthorized)
	}
	if !strings.EqualFold(claims.MentorEmail, req.MentorEmail) {
		return nil, fmt.Errorf("%w: this request is addressed to a different mentor", ErrUnauthorized)
	}

	return s.decide(ctx, req, action, notes)
}

// decide performs the mentor's stage of the approval chain. The request
// must be admin_approved; the transition is conditional, so only one
// decision lands.
func (s *mentorRequestService) decide(ctx context.Context, req *domain.MentorRequest, action DecisionAction, notes string) (*ActionResult, error) {
	if action != DecisionActionApprove && action != DecisionActionReject {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}
	if req.Status != domain.MentorRequestStatusAdminApproved {
		return nil, fmt.Errorf("%w: request %s is %s, not awaiting your decision", ErrInvalidState, req.ID, req.Status)
	}

	to := domain.MentorRequestStatusMentorApproved
	approved := true
	if action == DecisionActionReject {
		to = domain.MentorRequestStatusMentorRejected
		approved = false
	}

	if err := s.reqRepo.MentorTransition(ctx, req.ID, to, notes, time.Now()); err != nil {
		return nil, mapTransitionErr(err, req.ID)
	}

	outcome := s.emailSvc.SendRequestOutcome(ctx, req.UserEmail, req.UserName, req.MentorName, approved, notes)

	msg := "Request approved; the mentee now has your contact details"
	if !approved {
		msg = "Request declined"
	}
	logger.Info("Mentor decision recorded", "request_id", req.ID, "status", string(to))
	return &ActionResult{
		Success: true,
		Message: msg,
		Email:   outcome,
	}, nil
}

func (s *mentorRequestService) ListPending(ctx context.Context) ([]domain.MentorRequest, error) {
	return s.reqRepo.ListByStatus(ctx, domain.MentorRequestStatusPending)
}

func (s *mentorRequestService) ListForMentor(ctx context.Context, mentorEmail string) ([]domain.MentorRequest, error) {
	return s.reqRepo.ListByMentorEmail(ctx, mentorEmail)
}

func (s *mentorRequestService) ListForUser(ctx context.Context, userID string) ([]domain.MentorRequest, error) {
	return s.reqRepo.ListByUser(ctx, userID)
}

func (s *mentorRequestService) getRequest(ctx context.Context, requestID string) (*domain.MentorRequest, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: mentor request %s", ErrNotFound, requestID)
		}
		return nil, err
	}
	return req, nil
}

// mapTransitionErr converts the repository's conditional-write conflict
// into the invalid-state kind callers expect.
func mapTransitionErr(err error, requestID string) error {
	if errors.Is(err, repository.ErrStatusConflict) {
		return fmt.Errorf("%w: request %s was processed concurrently", ErrInvalidState, requestID)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: mentor request %s", ErrNotFound, requestID)
	}
	return err
}
