package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/identity"
	"incubator-portal-backend/internal/security"
	"incubator-portal-backend/internal/service"
)

// MockSubmissionRepo
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}
func (m *MockSubmissionRepo) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Submission), args.Error(1)
}
func (m *MockSubmissionRepo) MarkAccepted(ctx context.Context, id, accountID, tempPassword string, processedAt time.Time) error {
	args := m.Called(ctx, id, accountID, tempPassword, processedAt)
	return args.Error(0)
}
func (m *MockSubmissionRepo) MarkRejected(ctx context.Context, id string, processedAt time.Time) error {
	args := m.Called(ctx, id, processedAt)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) SetOnboardingMilestone(ctx context.Context, id, milestone string, value bool) error {
	args := m.Called(ctx, id, milestone, value)
	return args.Error(0)
}
func (m *MockUserRepo) SetEmailOptIn(ctx context.Context, id string, optIn bool) error {
	args := m.Called(ctx, id, optIn)
	return args.Error(0)
}

// MockMentorRepo
type MockMentorRepo struct {
	mock.Mock
}

func (m *MockMentorRepo) Create(ctx context.Context, mentor *domain.Mentor) error {
	args := m.Called(ctx, mentor)
	return args.Error(0)
}
func (m *MockMentorRepo) GetByID(ctx context.Context, id string) (*domain.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mentor), args.Error(1)
}
func (m *MockMentorRepo) GetByEmail(ctx context.Context, email string) (*domain.Mentor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mentor), args.Error(1)
}
func (m *MockMentorRepo) List(ctx context.Context) ([]domain.Mentor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Mentor), args.Error(1)
}
func (m *MockMentorRepo) GetDetails(ctx context.Context, id string) (*domain.MentorDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorDetails), args.Error(1)
}
func (m *MockMentorRepo) SetDetails(ctx context.Context, id string, details *domain.MentorDetails) error {
	args := m.Called(ctx, id, details)
	return args.Error(0)
}
func (m *MockMentorRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMentorRepo) DeleteDetails(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMentorRequestRepo
type MockMentorRequestRepo struct {
	mock.Mock
}

func (m *MockMentorRequestRepo) Create(ctx context.Context, req *domain.MentorRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMentorRequestRepo) GetByID(ctx context.Context, id string) (*domain.MentorRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestRepo) ListByStatus(ctx context.Context, status domain.MentorRequestStatus) ([]domain.MentorRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestRepo) ListByUser(ctx context.Context, userID string) ([]domain.MentorRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestRepo) ListByMentorEmail(ctx context.Context, mentorEmail string) ([]domain.MentorRequest, error) {
	args := m.Called(ctx, mentorEmail)
	return args.Get(0).([]domain.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestRepo) FindOpen(ctx context.Context, userID, mentorID string) (*domain.MentorRequest, error) {
	args := m.Called(ctx, userID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MentorRequest), args.Error(1)
}
func (m *MockMentorRequestRepo) AdminTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes, tokenDigest string, processedAt time.Time) error {
	args := m.Called(ctx, id, to, notes, tokenDigest, processedAt)
	return args.Error(0)
}
func (m *MockMentorRequestRepo) MentorTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes string, processedAt time.Time) error {
	args := m.Called(ctx, id, to, notes, processedAt)
	return args.Error(0)
}

// MockOutboxRepo
type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Create(ctx context.Context, msg *domain.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockOutboxRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]domain.OutboxMessage), args.Error(1)
}
func (m *MockOutboxRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockOutboxRepo) MarkAttemptFailed(ctx context.Context, id string, attempts int, lastErr string, nextAttemptAt time.Time, final bool) error {
	args := m.Called(ctx, id, attempts, lastErr, nextAttemptAt, final)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}
func (m *MockIdentityProvider) DeleteAccount(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
func (m *MockIdentityProvider) RevokeSessions(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
func (m *MockIdentityProvider) SetRoleClaim(ctx context.Context, uid, role string) error {
	args := m.Called(ctx, uid, role)
	return args.Error(0)
}
func (m *MockIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Identity), args.Error(1)
}
func (m *MockIdentityProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateDecisionToken(requestID, mentorEmail string) (string, string, error) {
	args := m.Called(requestID, mentorEmail)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockTokenManager) ValidateDecisionToken(tokenString string) (*security.DecisionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.DecisionClaims), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAcceptance(ctx context.Context, to, name, tempPassword string) *service.EmailOutcome {
	args := m.Called(ctx, to, name, tempPassword)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *MockEmailService) SendRejection(ctx context.Context, to, name string) *service.EmailOutcome {
	args := m.Called(ctx, to, name)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *MockEmailService) SendMentorActionRequest(ctx context.Context, mentorEmail, mentorName, userName, message, token string) *service.EmailOutcome {
	args := m.Called(ctx, mentorEmail, mentorName, userName, message, token)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *MockEmailService) SendRequestOutcome(ctx context.Context, to, name, mentorName string, approved bool, notes string) *service.EmailOutcome {
	args := m.Called(ctx, to, name, mentorName, approved, notes)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *MockEmailService) SendPasswordReset(ctx context.Context, to, link string) *service.EmailOutcome {
	args := m.Called(ctx, to, link)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *MockEmailService) Deliver(ctx context.Context, msg *domain.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
