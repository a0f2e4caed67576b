package repository

import (
	"context"
	"errors"
	"time"

	"incubator-portal-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrStatusConflict is returned when a conditional status transition
	// finds the document in a different state than required. The
	// check-and-write happens inside a store transaction, so only one of
	// two concurrent transitions can win.
	ErrStatusConflict = errors.New("record is not in the required status")
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *domain.Submission) error
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error)

	// MarkAccepted transitions pending -> accepted, attaching the
	// provisioned account id and generated credential. Fails with
	// ErrStatusConflict unless the submission is still pending.
	MarkAccepted(ctx context.Context, id, accountID, tempPassword string, processedAt time.Time) error
	// MarkRejected transitions pending -> rejected.
	MarkRejected(ctx context.Context, id string, processedAt time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetOnboardingMilestone(ctx context.Context, id, milestone string, value bool) error
	SetEmailOptIn(ctx context.Context, id string, optIn bool) error
}

type MentorRepository interface {
	Create(ctx context.Context, mentor *domain.Mentor) error
	GetByID(ctx context.Context, id string) (*domain.Mentor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Mentor, error)
	List(ctx context.Context) ([]domain.Mentor, error)
	// GetDetails returns the editable profile sub-record, or ErrNotFound
	// when the mentor has never edited their profile.
	GetDetails(ctx context.Context, id string) (*domain.MentorDetails, error)
	SetDetails(ctx context.Context, id string, details *domain.MentorDetails) error
	Delete(ctx context.Context, id string) error
	DeleteDetails(ctx context.Context, id string) error
}

type MentorRequestRepository interface {
	Create(ctx context.Context, req *domain.MentorRequest) error
	GetByID(ctx context.Context, id string) (*domain.MentorRequest, error)
	ListByStatus(ctx context.Context, status domain.MentorRequestStatus) ([]domain.MentorRequest, error)
	ListByUser(ctx context.Context, userID string) ([]domain.MentorRequest, error)
	ListByMentorEmail(ctx context.Context, mentorEmail string) ([]domain.MentorRequest, error)
	// FindOpen returns an open (pending or admin_approved) request from the
	// user to the mentor, or ErrNotFound. Advisory only: not a store-level
	// uniqueness constraint.
	FindOpen(ctx context.Context, userID, mentorID string) (*domain.MentorRequest, error)

	// AdminTransition moves pending -> to (admin_approved|admin_rejected)
	// and records the admin's notes, timestamp and, on approval, the
	// decision token digest. ErrStatusConflict unless currently pending.
	AdminTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes, tokenDigest string, processedAt time.Time) error
	// MentorTransition moves admin_approved -> to (mentor_approved|
	// mentor_rejected), records the mentor's notes and timestamp and clears
	// the decision token digest. ErrStatusConflict unless admin_approved.
	MentorTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes string, processedAt time.Time) error
}

type OutboxRepository interface {
	Create(ctx context.Context, msg *domain.OutboxMessage) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
	// MarkAttemptFailed bumps the attempt counter; final moves the message
	// to the failed status instead of scheduling another attempt.
	MarkAttemptFailed(ctx context.Context, id string, attempts int, lastErr string, nextAttemptAt time.Time, final bool) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
}
