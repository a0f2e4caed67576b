package domain

import "time"

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxMessage is a composed email persisted alongside the state
// transition that produced it. Delivery is best-effort: one synchronous
// attempt at transition time, then the outbox worker retries pending rows
// until MaxDeliveryRetries is reached.
type OutboxMessage struct {
	ID            string       `firestore:"-" json:"id"`
	To            string       `firestore:"to" json:"to"`
	ToName        string       `firestore:"toName,omitempty" json:"to_name,omitempty"`
	Subject       string       `firestore:"subject" json:"subject"`
	Body          string       `firestore:"body" json:"body"`
	HTMLBody      string       `firestore:"htmlBody,omitempty" json:"html_body,omitempty"`
	Status        OutboxStatus `firestore:"status" json:"status"`
	Attempts      int          `firestore:"attempts" json:"attempts"`
	LastError     string       `firestore:"lastError,omitempty" json:"last_error,omitempty"`
	NextAttemptAt time.Time    `firestore:"nextAttemptAt" json:"next_attempt_at"`
	CreatedAt     time.Time    `firestore:"createdAt" json:"created_at"`
	SentAt        *time.Time   `firestore:"sentAt,omitempty" json:"sent_at,omitempty"`
}
