package service

import (
	"context"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
)

// ProcessAction is the admin's decision on an applicant submission.
type ProcessAction string

const (
	ProcessActionAccept ProcessAction = "accept"
	ProcessActionReject ProcessAction = "reject"
)

// DecisionAction is a decision on a mentor request, by either party.
type DecisionAction string

const (
	DecisionActionApprove DecisionAction = "approve"
	DecisionActionReject  DecisionAction = "reject"
)

// EmailOutcome reports a single best-effort send. A failed send never
// fails the operation that composed the email; the error is surfaced here
// and the message stays in the outbox for retry.
type EmailOutcome struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Sent    bool   `json:"sent"`
	Error   string `json:"error,omitempty"`
}

// ProcessResult is returned by ProcessApplication.
type ProcessResult struct {
	Status            string        `json:"status"` // "success" or "error"
	Message           string        `json:"message"`
	AccountID         string        `json:"firebase_uid,omitempty"`
	TemporaryPassword string        `json:"temporary_password,omitempty"`
	Email             *EmailOutcome `json:"email,omitempty"`
}

// ActionResult is the common shape for mentor-request operations.
type ActionResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Email   *EmailOutcome `json:"email,omitempty"`
}

type ApplicationService interface {
	// ProcessApplication decides a pending submission. On accept it
	// provisions an identity, creates the linked user account, transitions
	// the submission and sends the credential email; on reject it
	// transitions and sends the rejection email. The submission is mutated
	// at most once, ever.
	ProcessApplication(ctx context.Context, submissionID string, action ProcessAction, applicantName, applicantEmail string) (*ProcessResult, error)
	SubmitApplication(ctx context.Context, sub *domain.Submission) error
	ListPending(ctx context.Context) ([]domain.Submission, error)
}

type MentorRequestService interface {
	Submit(ctx context.Context, userID, userEmail, userName, mentorID, message string) (*ActionResult, error)
	AdminDecision(ctx context.Context, requestID string, action DecisionAction, notes string) (*ActionResult, error)
	MentorDecision(ctx context.Context, requestID string, action DecisionAction, notes, callerMentorEmail string) (*ActionResult, error)
	// MentorDecisionWithToken carries MentorDecision's semantics for a
	// mentor acting from the emailed link, without a session.
	MentorDecisionWithToken(ctx context.Context, token string, action DecisionAction, notes string) (*ActionResult, error)

	ListPending(ctx context.Context) ([]domain.MentorRequest, error)
	ListForMentor(ctx context.Context, mentorEmail string) ([]domain.MentorRequest, error)
	ListForUser(ctx context.Context, userID string) ([]domain.MentorRequest, error)
}

type MentorService interface {
	// Get returns the mentor profile with detail sub-record fields layered
	// over the primary record when present.
	Get(ctx context.Context, id string) (*domain.Mentor, error)
	List(ctx context.Context) ([]domain.Mentor, error)
	// Create provisions a mentor account and its primary record, returning
	// the mentor, the generated temporary credential and the welcome-email
	// outcome.
	Create(ctx context.Context, name, email, designation, expertise string) (*domain.Mentor, string, *EmailOutcome, error)
	UpdateProfile(ctx context.Context, mentorID string, details *domain.MentorDetails) error
	// Delete removes the mentor best-effort: profile details, primary
	// record and the provider account are deleted independently.
	Delete(ctx context.Context, id string) (*ActionResult, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	SetOnboardingMilestone(ctx context.Context, userID, milestone string, value bool) error
	SetEmailOptIn(ctx context.Context, userID string, optIn bool) error
	RequestPasswordReset(ctx context.Context, email string) (*ActionResult, error)
}

type RoleService interface {
	// Resolve maps a bearer id token to admin, mentor, user or
	// unauthenticated. The identity is nil when unauthenticated.
	Resolve(ctx context.Context, idToken string) (domain.Role, *identity.Identity, error)
}

type EventService interface {
	Create(ctx context.Context, adminID string, event *domain.Event) error
	ListUpcoming(ctx context.Context) ([]domain.Event, error)
}

// EmailService composes domain emails. Every method persists the composed
// message to the outbox and attempts one synchronous send; the outcome is
// reported, never raised.
type EmailService interface {
	SendAcceptance(ctx context.Context, to, name, tempPassword string) *EmailOutcome
	SendRejection(ctx context.Context, to, name string) *EmailOutcome
	SendMentorActionRequest(ctx context.Context, mentorEmail, mentorName, userName, message, token string) *EmailOutcome
	SendRequestOutcome(ctx context.Context, to, name, mentorName string, approved bool, notes string) *EmailOutcome
	SendPasswordReset(ctx context.Context, to, link string) *EmailOutcome

	// Deliver performs a raw send for the outbox worker.
	Deliver(ctx context.Context, msg *domain.OutboxMessage) error
}
