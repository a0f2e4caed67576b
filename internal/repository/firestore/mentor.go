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

type mentorRepository struct {
	client *fs.Client
}

func NewMentorRepository(client *fs.Client) repository.MentorRepository {
	return &mentorRepository{client: client}
}

func (r *mentorRepository) detailsRef(id string) *fs.DocumentRef {
	return r.client.Collection(colMentors).Doc(id).
		Collection(colMentorProfile).Doc(docMentorProfileDetails)
}

func (r *mentorRepository) Create(ctx context.Context, mentor *domain.Mentor) error {
	now := time.Now()
	if mentor.CreatedAt.IsZero() {
		mentor.CreatedAt = now
	}
	mentor.UpdatedAt = now
	if mentor.Status == "" {
		mentor.Status = domain.UserStatusActive
	}

	logger.StoreCall("create", colMentors, "id", mentor.ID)
	_, err := r.client.Collection(colMentors).Doc(mentor.ID).Create(ctx, mentor)
	logger.StoreResult("create", colMentors, err, "id", mentor.ID)
	if err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

func (r *mentorRepository) GetByID(ctx context.Context, id string) (*domain.Mentor, error) {
	snap, err := r.client.Collection(colMentors).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	var mentor domain.Mentor
	if err := snap.DataTo(&mentor); err != nil {
		return nil, fmt.Errorf("failed to decode mentor %s: %w", id, err)
	}
	mentor.ID = snap.Ref.ID
	return &mentor, nil
}

func (r *mentorRepository) GetByEmail(ctx context.Context, email string) (*domain.Mentor, error) {
	iter := r.client.Collection(colMentors).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mentor by email: %w", err)
	}

	var mentor domain.Mentor
	if err := snap.DataTo(&mentor); err != nil {
		return nil, fmt.Errorf("failed to decode mentor %s: %w", snap.Ref.ID, err)
	}
	mentor.ID = snap.Ref.ID
	return &mentor, nil
}

func (r *mentorRepository) List(ctx context.Context) ([]domain.Mentor, error) {
	iter := r.client.Collection(colMentors).
		Where("status", "==", string(domain.UserStatusActive)).
		OrderBy("name", fs.Asc).
		Documents(ctx)
	defer iter.Stop()

	var mentors []domain.Mentor
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list mentors: %w", err)
		}
		var mentor domain.Mentor
		if err := snap.DataTo(&mentor); err != nil {
			return nil, fmt.Errorf("failed to decode mentor %s: %w", snap.Ref.ID, err)
		}
		mentor.ID = snap.Ref.ID
		mentors = append(mentors, mentor)
	}
	return mentors, nil
}

func (r *mentorRepository) GetDetails(ctx context.Context, id string) (*domain.MentorDetails, error) {
	snap, err := r.detailsRef(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}

	var details domain.MentorDetails
	if err := snap.DataTo(&details); err != nil {
		return nil, fmt.Errorf("failed to decode mentor details %s: %w", id, err)
	}
	return &details, nil
}

func (r *mentorRepository) SetDetails(ctx context.Context, id string, details *domain.MentorDetails) error {
	details.UpdatedAt = time.Now()
	_, err := r.detailsRef(id).Set(ctx, details)
	if err != nil {
		return fmt.Errorf("failed to set mentor details: %w", err)
	}
	return nil
}

func (r *mentorRepository) Delete(ctx context.Context, id string) error {
	logger.StoreCall("delete", colMentors, "id", id)
	_, err := r.client.Collection(colMentors).Doc(id).Delete(ctx)
	logger.StoreResult("delete", colMentors, err, "id", id)
	return mapErr(err)
}

func (r *mentorRepository) DeleteDetails(ctx context.Context, id string) error {
	_, err := r.detailsRef(id).Delete(ctx)
	return mapErr(err)
}
