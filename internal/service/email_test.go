package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/service"
)

func TestEmailService_ConsoleFallbackParksMessage(t *testing.T) {
	outbox := new(MockOutboxRepo)
	svc := service.NewEmailService("", "noreply@example.com", "Incubation Centre", "http://localhost:3000", outbox)
	ctx := context.Background()

	outbox.On("Create", ctx, mock.AnythingOfType("*domain.OutboxMessage")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.OutboxMessage).ID = "out-1"
		}).Return(nil)
	// Without an API key there is nothing the retry worker could do better;
	// the message is parked as a final failure, not rescheduled.
	outbox.On("MarkAttemptFailed", ctx, "out-1", 1, mock.AnythingOfType("string"),
		mock.AnythingOfType("time.Time"), true).Return(nil)

	outcome := svc.SendRejection(ctx, "asha@example.com", "Asha Rao")
	assert.False(t, outcome.Sent)
	assert.NotEmpty(t, outcome.Error)
	assert.Equal(t, "asha@example.com", outcome.To)
	assert.NotEmpty(t, outcome.Subject)
	outbox.AssertExpectations(t)
}

func TestEmailService_AcceptanceIncludesCredential(t *testing.T) {
	outbox := new(MockOutboxRepo)
	svc := service.NewEmailService("", "noreply@example.com", "Incubation Centre", "http://localhost:3000", outbox)
	ctx := context.Background()

	outbox.On("Create", ctx, mock.AnythingOfType("*domain.OutboxMessage")).Return(nil)

	outcome := svc.SendAcceptance(ctx, "asha@example.com", "Asha Rao", "Xy3kP9mQ2r")
	assert.Contains(t, outcome.Body, "Xy3kP9mQ2r")
	assert.Contains(t, outcome.Body, "asha@example.com")
	assert.Contains(t, outcome.Body, "http://localhost:3000")
}

func TestEmailService_MentorActionRequestCarriesDecisionLink(t *testing.T) {
	outbox := new(MockOutboxRepo)
	svc := service.NewEmailService("", "noreply@example.com", "Incubation Centre", "https://portal.example", outbox)
	ctx := context.Background()

	outbox.On("Create", ctx, mock.AnythingOfType("*domain.OutboxMessage")).Return(nil)

	outcome := svc.SendMentorActionRequest(ctx, "dev@example.com", "Dev Kapoor", "Asha Rao",
		"Looking for guidance", "signed-token")
	assert.Contains(t, outcome.Body, "https://portal.example/mentor/requests/decide?token=signed-token")
	assert.Contains(t, outcome.Body, "Asha Rao")
}

func TestEmailService_RequestOutcomeNotes(t *testing.T) {
	outbox := new(MockOutboxRepo)
	svc := service.NewEmailService("", "noreply@example.com", "Incubation Centre", "http://localhost:3000", outbox)
	ctx := context.Background()

	outbox.On("Create", ctx, mock.AnythingOfType("*domain.OutboxMessage")).Return(nil)

	approved := svc.SendRequestOutcome(ctx, "asha@example.com", "Asha Rao", "Dev Kapoor", true, "see you Monday")
	assert.Contains(t, approved.Subject, "approved")
	assert.Contains(t, approved.Body, "see you Monday")

	declined := svc.SendRequestOutcome(ctx, "asha@example.com", "Asha Rao", "Dev Kapoor", false, "")
	assert.NotContains(t, declined.Subject, "approved")
	assert.Contains(t, declined.Body, "declined")
}
