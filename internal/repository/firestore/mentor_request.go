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
	"incubator-portal-backend/internal/logger"
	"incubator-portal-backend/internal/repository"
)

type mentorRequestRepository struct {
	client *fs.Client
}

func NewMentorRequestRepository(client *fs.Client) repository.MentorRequestRepository {
	return &mentorRequestRepository{client: client}
}

func (r *mentorRequestRepository) Create(ctx context.Context, req *domain.MentorRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.MentorRequestStatusPending
	}
	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now

	logger.StoreCall("create", colMentorRequests, "id", req.ID)
	_, err := r.client.Collection(colMentorRequests).Doc(req.ID).Create(ctx, req)
	logger.StoreResult("create", colMentorRequests, err, "id", req.ID)
	if err != nil {
		return fmt.Errorf("failed to create mentor request: %w", err)
	}
	return nil
}

func (r *mentorRequestRepository) GetByID(ctx context.Context, id string) (*domain.MentorRequest, error) {
	snap, err := r.client.Collection(colMentorRequests).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return decodeRequest(snap)
}

func (r *mentorRequestRepository) ListByStatus(ctx context.Context, status domain.MentorRequestStatus) ([]domain.MentorRequest, error) {
	return r.list(ctx, r.client.Collection(colMentorRequests).
		Where("status", "==", string(status)).
		OrderBy("createdAt", fs.Desc))
}

func (r *mentorRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.MentorRequest, error) {
	return r.list(ctx, r.client.Collection(colMentorRequests).
		Where("userId", "==", userID).
		OrderBy("createdAt", fs.Desc))
}

func (r *mentorRequestRepository) ListByMentorEmail(ctx context.Context, mentorEmail string) ([]domain.MentorRequest, error) {
	return r.list(ctx, r.client.Collection(colMentorRequests).
		Where("mentorEmail", "==", mentorEmail).
		OrderBy("createdAt", fs.Desc))
}

func (r *mentorRequestRepository) FindOpen(ctx context.Context, userID, mentorID string) (*domain.MentorRequest, error) {
	iter := r.client.Collection(colMentorRequests).
		Where("userId", "==", userID).
		Where("mentorId", "==", mentorID).
		Where("status", "in", []string{
			string(domain.MentorRequestStatusPending),
			string(domain.MentorRequestStatusAdminApproved),
		}).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query open mentor requests: %w", err)
	}
	return decodeRequest(snap)
}

func (r *mentorRequestRepository) AdminTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes, tokenDigest string, processedAt time.Time) error {
	updates := []fs.Update{
		{Path: "status", Value: string(to)},
		{Path: "adminNotes", Value: notes},
		{Path: "adminProcessedAt", Value: processedAt},
		{Path: "updatedAt", Value: processedAt},
	}
	if tokenDigest != "" {
		updates = append(updates, fs.Update{Path: "decisionTokenDigest", Value: tokenDigest})
	}
	return r.transition(ctx, id, domain.MentorRequestStatusPending, to, updates)
}

func (r *mentorRequestRepository) MentorTransition(ctx context.Context, id string, to domain.MentorRequestStatus, notes string, processedAt time.Time) error {
	return r.transition(ctx, id, domain.MentorRequestStatusAdminApproved, to, []fs.Update{
		{Path: "status", Value: string(to)},
		{Path: "mentorNotes", Value: notes},
		{Path: "mentorProcessedAt", Value: processedAt},
		{Path: "updatedAt", Value: processedAt},
		{Path: "decisionTokenDigest", Value: fs.Delete},
	})
}

// transition performs the conditional status write inside a transaction:
// the request must currently be in from, otherwise ErrStatusConflict.
func (r *mentorRequestRepository) transition(ctx context.Context, id string, from, to domain.MentorRequestStatus, updates []fs.Update) error {
	docRef := r.client.Collection(colMentorRequests).Doc(id)

	logger.StoreCall("transition", colMentorRequests, "id", id, "from", string(from), "to", string(to))
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return mapErr(err)
		}
		var req domain.MentorRequest
		if err := snap.DataTo(&req); err != nil {
			return fmt.Errorf("failed to decode mentor request %s: %w", id, err)
		}
		if req.Status != from {
			return repository.ErrStatusConflict
		}
		return tx.Update(docRef, updates)
	})
	logger.StoreResult("transition", colMentorRequests, err, "id", id, "to", string(to))
	return err
}

func (r *mentorRequestRepository) list(ctx context.Context, q fs.Query) ([]domain.MentorRequest, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var reqs []domain.MentorRequest
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list mentor requests: %w", err)
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}

func decodeRequest(snap *fs.DocumentSnapshot) (*domain.MentorRequest, error) {
	var req domain.MentorRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode mentor request %s: %w", snap.Ref.ID, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}
