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

type eventRepository struct {
	client *fs.Client
}

func NewEventRepository(client *fs.Client) repository.EventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.client.Collection(colEvents).Doc(event.ID).Create(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	iter := r.client.Collection(colEvents).
		Where("startsAt", ">=", now).
		OrderBy("startsAt", fs.Asc).
		Documents(ctx)
	defer iter.Stop()

	var events []domain.Event
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list upcoming events: %w", err)
		}
		var event domain.Event
		if err := snap.DataTo(&event); err != nil {
			return nil, fmt.Errorf("failed to decode event %s: %w", snap.Ref.ID, err)
		}
		event.ID = snap.Ref.ID
		events = append(events, event)
	}
	return events, nil
}
