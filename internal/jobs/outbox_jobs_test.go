package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/config"
	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/jobs"
	"incubator-portal-backend/internal/service"
)

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Create(ctx context.Context, msg *domain.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *mockOutboxRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]domain.OutboxMessage), args.Error(1)
}
func (m *mockOutboxRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *mockOutboxRepo) MarkAttemptFailed(ctx context.Context, id string, attempts int, lastErr string, nextAttemptAt time.Time, final bool) error {
	args := m.Called(ctx, id, attempts, lastErr, nextAttemptAt, final)
	return args.Error(0)
}

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendAcceptance(ctx context.Context, to, name, tempPassword string) *service.EmailOutcome {
	args := m.Called(ctx, to, name, tempPassword)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *mockEmailService) SendRejection(ctx context.Context, to, name string) *service.EmailOutcome {
	args := m.Called(ctx, to, name)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *mockEmailService) SendMentorActionRequest(ctx context.Context, mentorEmail, mentorName, userName, message, token string) *service.EmailOutcome {
	args := m.Called(ctx, mentorEmail, mentorName, userName, message, token)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *mockEmailService) SendRequestOutcome(ctx context.Context, to, name, mentorName string, approved bool, notes string) *service.EmailOutcome {
	args := m.Called(ctx, to, name, mentorName, approved, notes)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *mockEmailService) SendPasswordReset(ctx context.Context, to, link string) *service.EmailOutcome {
	args := m.Called(ctx, to, link)
	return args.Get(0).(*service.EmailOutcome)
}
func (m *mockEmailService) Deliver(ctx context.Context, msg *domain.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			DeliverOutbox:      "0 */5 * * * *",
			MaxDeliveryRetries: 3,
		},
	}
}

func TestDeliverOutbox_MarksSentOnSuccess(t *testing.T) {
	outbox := new(mockOutboxRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(outbox, &jobs.Services{Email: email}, testConfig())

	msg := domain.OutboxMessage{ID: "out-1", To: "asha@example.com", Subject: "Welcome"}
	outbox.On("ListDue", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]domain.OutboxMessage{msg}, nil)
	email.On("Deliver", mock.Anything, mock.AnythingOfType("*domain.OutboxMessage")).Return(nil)
	outbox.On("MarkSent", mock.Anything, "out-1", mock.AnythingOfType("time.Time")).Return(nil)

	runner.DeliverOutbox()

	outbox.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestDeliverOutbox_BacksOffOnFailure(t *testing.T) {
	outbox := new(mockOutboxRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(outbox, &jobs.Services{Email: email}, testConfig())

	msg := domain.OutboxMessage{ID: "out-1", To: "asha@example.com", Attempts: 1}
	outbox.On("ListDue", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]domain.OutboxMessage{msg}, nil)
	email.On("Deliver", mock.Anything, mock.AnythingOfType("*domain.OutboxMessage")).
		Return(errors.New("sendgrid timeout"))
	// Second failed attempt, below the cap: rescheduled, not final.
	outbox.On("MarkAttemptFailed", mock.Anything, "out-1", 2, "sendgrid timeout",
		mock.AnythingOfType("time.Time"), false).Return(nil)

	runner.DeliverOutbox()

	outbox.AssertExpectations(t)
	outbox.AssertNotCalled(t, "MarkSent", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverOutbox_FinalFailureAtRetryCap(t *testing.T) {
	outbox := new(mockOutboxRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(outbox, &jobs.Services{Email: email}, testConfig())

	msg := domain.OutboxMessage{ID: "out-1", To: "asha@example.com", Attempts: 2}
	outbox.On("ListDue", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]domain.OutboxMessage{msg}, nil)
	email.On("Deliver", mock.Anything, mock.AnythingOfType("*domain.OutboxMessage")).
		Return(errors.New("sendgrid timeout"))
	outbox.On("MarkAttemptFailed", mock.Anything, "out-1", 3, "sendgrid timeout",
		mock.AnythingOfType("time.Time"), true).Return(nil)

	runner.DeliverOutbox()

	outbox.AssertExpectations(t)
}

func TestDeliverOutbox_NothingDue(t *testing.T) {
	outbox := new(mockOutboxRepo)
	email := new(mockEmailService)
	runner := jobs.NewJobRunner(outbox, &jobs.Services{Email: email}, testConfig())

	outbox.On("ListDue", mock.Anything, mock.AnythingOfType("time.Time"), 50).
		Return([]domain.OutboxMessage{}, nil)

	runner.DeliverOutbox()

	email.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}
