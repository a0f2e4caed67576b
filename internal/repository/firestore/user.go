package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"incubator-portal-backend/internal/domain"
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
)

type userRepository struct {
	client *fs.Client
}

func NewUserRepository(client *fs.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	logger.StoreCall("create", colUsers, "id", user.ID)
	_, err := r.client.Collection(colUsers).Doc(user.ID).Create(ctx, user)
	logger.StoreResult("create", colUsers, err, "id", user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(colUsers).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := r.client.Collection(colUsers).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", snap.Ref.ID, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

// SetOnboardingMilestone writes a single milestone field. The milestone
// name is validated by the user service before it reaches the store.
func (r *userRepository) SetOnboardingMilestone(ctx context.Context, id, milestone string, value bool) error {
	_, err := r.client.Collection(colUsers).Doc(id).Update(ctx, []fs.Update{
		{Path: "onboarding." + milestone, Value: value},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapErr(err)
}

func (r *userRepository) SetEmailOptIn(ctx context.Context, id string, optIn bool) error {
	_, err := r.client.Collection(colUsers).Doc(id).Update(ctx, []fs.Update{
		{Path: "emailOptIn", Value: optIn},
		{Path: "updatedAt", Value: time.Now()},
	})
	return mapErr(err)
}
