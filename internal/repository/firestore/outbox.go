package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/repository"
)

type outboxRepository struct {
	client *fs.Client
}

func NewOutboxRepository(client *fs.Client) repository.OutboxRepository {
	return &outboxRepository{client: client}
}

func (r *outboxRepository) Create(ctx context.Context, msg *domain.OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Status == "" {
		msg.Status = domain.OutboxStatusPending
	}
	now := time.Now()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if msg.NextAttemptAt.IsZero() {
		msg.NextAttemptAt = now
	}

	_, err := r.client.Collection(colMailOutbox).Doc(msg.ID).Create(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to create outbox message: %w", err)
	}
	return nil
}

func (r *outboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.OutboxMessage, error) {
	iter := r.client.Collection(colMailOutbox).
		Where("status", "==", string(domain.OutboxStatusPending)).
		Where("nextAttemptAt", "<=", now).
		OrderBy("nextAttemptAt", fs.Asc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var msgs []domain.OutboxMessage
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list due outbox messages: %w", err)
		}
		var msg domain.OutboxMessage
		if err := snap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("failed to decode outbox message %s: %w", snap.Ref.ID, err)
		}
		msg.ID = snap.Ref.ID
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.client.Collection(colMailOutbox).Doc(id).Update(ctx, []fs.Update{
		{Path: "status", Value: string(domain.OutboxStatusSent)},
		{Path: "sentAt", Value: at},
	})
	return mapErr(err)
}

func (r *outboxRepository) MarkAttemptFailed(ctx context.Context, id string, attempts int, lastErr string, nextAttemptAt time.Time, final bool) error {
	status := domain.OutboxStatusPending
	if final {
		status = domain.OutboxStatusFailed
	}
	_, err := r.client.Collection(colMailOutbox).Doc(id).Update(ctx, []fs.Update{
		{Path: "status", Value: string(status)},
		{Path: "attempts", Value: attempts},
		{Path: "lastError", Value: lastErr},
		{Path: "nextAttemptAt", Value: nextAttemptAt},
	})
	return mapErr(err)
}
