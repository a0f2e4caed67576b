package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/service"
)

func TestEventCreate_Validation(t *testing.T) {
	eventRepo := new(MockEventRepo)
	svc := service.NewEventService(eventRepo)
	ctx := context.Background()

	err := svc.Create(ctx, "admin-1", &domain.Event{StartsAt: time.Now()})
	assert.ErrorIs(t, err, service.ErrValidation)

	err = svc.Create(ctx, "admin-1", &domain.Event{Title: "Demo Day"})
	assert.ErrorIs(t, err, service.ErrValidation)

	eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEventCreate_StampsCreator(t *testing.T) {
	eventRepo := new(MockEventRepo)
	svc := service.NewEventService(eventRepo)
	ctx := context.Background()

	eventRepo.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.CreatedBy == "admin-1"
	})).Return(nil)

	err := svc.Create(ctx, "admin-1", &domain.Event{Title: "Demo Day", StartsAt: time.Now().Add(24 * time.Hour)})
	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}
