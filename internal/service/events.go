package service

import (
	"context"
	"fmt"
	"time"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, adminID string, event *domain.Event) error {
	if event.Title == "" {
		return fmt.Errorf("%w: event title is required", ErrValidation)
	}
	if event.StartsAt.IsZero() {
		return fmt.Errorf("%w: event start time is required", ErrValidation)
	}
	event.CreatedBy = adminID
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.ListUpcoming(ctx, time.Now())
}
