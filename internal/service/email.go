package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
)

// errEmailNotConfigured marks the console-fallback mode: with no API key
// the composed email is logged and reported as a soft failure, never
// raised.
var errEmailNotConfigured = errors.New("email service not configured, message logged to console")

type emailService struct {
	apiKey   string
	from     string
	fromName string
	appURL   string
	outbox   repository.OutboxRepository
}

func NewEmailService(apiKey, from, fromName, appURL string, outbox repository.OutboxRepository) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		appURL:   appURL,
		outbox:   outbox,
	}
}

func (s *emailService) SendAcceptance(ctx context.Context, to, name, tempPassword string) *EmailOutcome {
	subject := "Welcome to the Incubation Centre"
	body := fmt.Sprintf(
		"Hello %s,\n\nCongratulations! Your application to the incubation programme has been accepted.\n\n"+
			"An account has been created for you:\n\nEmail: %s\nTemporary password: %s\n\n"+
			"Please sign in at %s and change your password right away.\n\nBest regards,\nThe Incubation Centre Team",
		name, to, tempPassword, s.appURL)
	return s.dispatch(ctx, to, name, subject, body, "")
}

func (s *emailService) SendRejection(ctx context.Context, to, name string) *EmailOutcome {
	subject := "Update on your incubation application"
	body := fmt.Sprintf(
		"Hello %s,\n\nThank you for applying to the incubation programme. "+
			"After careful review we are unable to offer you a place at this time.\n\n"+
			"We encourage you to apply again in a future intake.\n\nBest regards,\nThe Incubation Centre Team",
		name)
	return s.dispatch(ctx, to, name, subject, body, "")
}

func (s *emailService) SendMentorActionRequest(ctx context.Context, mentorEmail, mentorName, userName, message, token string) *EmailOutcome {
	subject := fmt.Sprintf("Mentorship request from %s", userName)
	actionURL := fmt.Sprintf("%s/mentor/requests/decide?token=%s", s.appURL, token)
	body := fmt.Sprintf(
		"Hello %s,\n\n%s has requested you as a mentor and the admin team has forwarded the request to you.\n\n"+
			"Their message:\n%s\n\nYou can approve or decline here:\n%s\n\nThe link expires; no sign-in is needed.\n\n"+
			"Best regards,\nThe Incubation Centre Team",
		mentorName, userName, message, actionURL)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p><strong>%s</strong> has requested you as a mentor.</p><p>%s</p>"+
			"<p><a href=\"%s\">Review the request</a></p>",
		mentorName, userName, message, actionURL)
	return s.dispatch(ctx, mentorEmail, mentorName, subject, body, htmlBody)
}

func (s *emailService) SendRequestOutcome(ctx context.Context, to, name, mentorName string, approved bool, notes string) *EmailOutcome {
	var subject, body string
	if approved {
		subject = fmt.Sprintf("Your mentorship request to %s was approved", mentorName)
		body = fmt.Sprintf(
			"Hello %s,\n\nGood news: %s has accepted your mentorship request. "+
				"Their contact details are now visible on your dashboard at %s.",
			name, mentorName, s.appURL)
	} else {
		subject = "Update on your mentorship request"
		body = fmt.Sprintf(
			"Hello %s,\n\nUnfortunately your mentorship request to %s was declined.",
			name, mentorName)
	}
	if notes != "" {
		body += fmt.Sprintf("\n\nNotes: %s", notes)
	}
	body += "\n\nBest regards,\nThe Incubation Centre Team"
	return s.dispatch(ctx, to, name, subject, body, "")
}

func (s *emailService) SendPasswordReset(ctx context.Context, to, link string) *EmailOutcome {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"Hello,\n\nA password reset was requested for this address. Use the link below to choose a new password:\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.\n\nBest regards,\nThe Incubation Centre Team",
		link)
	return s.dispatch(ctx, to, "", subject, body, "")
}

// dispatch persists the composed message to the outbox and attempts one
// synchronous send. The outcome is reported to the caller; nothing here is
// fatal to the operation that composed the email.
func (s *emailService) dispatch(ctx context.Context, to, toName, subject, body, htmlBody string) *EmailOutcome {
	outcome := &EmailOutcome{
		To:      to,
		Subject: subject,
		Body:    body,
	}

	msg := &domain.OutboxMessage{
		To:       to,
		ToName:   toName,
		Subject:  subject,
		Body:     body,
		HTMLBody: htmlBody,
	}
	if err := s.outbox.Create(ctx, msg); err != nil {
		logger.Warn("Failed to persist email to outbox", "to", to, "subject", subject, "error", err)
	}

	err := s.Deliver(ctx, msg)
	if err == nil {
		outcome.Sent = true
		if msg.ID != "" {
			if err := s.outbox.MarkSent(ctx, msg.ID, time.Now()); err != nil {
				logger.Warn("Failed to mark outbox message sent", "id", msg.ID, "error", err)
			}
		}
		return outcome
	}

	outcome.Error = err.Error()
	if msg.ID != "" {
		// With no API key the worker can't do better than we did; park the
		// message instead of retrying it forever.
		final := errors.Is(err, errEmailNotConfigured)
		next := time.Now().Add(time.Minute)
		if markErr := s.outbox.MarkAttemptFailed(ctx, msg.ID, 1, err.Error(), next, final); markErr != nil {
			logger.Warn("Failed to record outbox attempt", "id", msg.ID, "error", markErr)
		}
	}
	return outcome
}

func (s *emailService) Deliver(ctx context.Context, msg *domain.OutboxMessage) error {
	if s.apiKey == "" {
		logger.Info("Email service not configured; would have sent email",
			"to", msg.To, "subject", msg.Subject, "body", msg.Body)
		return errEmailNotConfigured
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(msg.ToName, msg.To)
	htmlBody := msg.HTMLBody
	if htmlBody == "" {
		htmlBody = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, recipient, msg.Body, htmlBody)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", msg.To, "subject", msg.Subject)
	response, err := client.SendWithContext(ctx, message)
	logger.ExternalServiceResult("sendgrid", "send", err, "to", msg.To)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
