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

type submissionRepository struct {
	client *fs.Client
}

func NewSubmissionRepository(client *fs.Client) repository.SubmissionRepository {
	return &submissionRepository{client: client}
}

// collectionFor picks the collection a submission belongs to based on its
// campus tag.
func (r *submissionRepository) collectionFor(sub *domain.Submission) *fs.CollectionRef {
	if sub.CampusStatus == domain.CampusStatusOffCampus {
		return r.client.Collection(colOffCampusApplications)
	}
	return r.client.Collection(colContactSubmissions)
}

func (r *submissionRepository) Create(ctx context.Context, sub *domain.Submission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = domain.SubmissionStatusPending
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	col := r.collectionFor(sub)
	logger.StoreCall("create", col.ID, "id", sub.ID)
	_, err := col.Doc(sub.ID).Create(ctx, sub)
	logger.StoreResult("create", col.ID, err, "id", sub.ID)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// ref locates a submission document by id, trying the campus collection
// first and falling back to the off-campus one.
func (r *submissionRepository) ref(ctx context.Context, id string) (*fs.DocumentRef, *fs.DocumentSnapshot, error) {
	for _, name := range []string{colContactSubmissions, colOffCampusApplications} {
		docRef := r.client.Collection(name).Doc(id)
		snap, err := docRef.Get(ctx)
		if err == nil {
			return docRef, snap, nil
		}
		if !errors.Is(mapErr(err), repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("failed to get submission: %w", err)
		}
	}
	return nil, nil, repository.ErrNotFound
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	_, snap, err := r.ref(ctx, id)
	if err != nil {
		return nil, err
	}

	var sub domain.Submission
	if err := snap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission %s: %w", id, err)
	}
	sub.ID = snap.Ref.ID
	return &sub, nil
}

func (r *submissionRepository) ListByStatus(ctx context.Context, status domain.SubmissionStatus) ([]domain.Submission, error) {
	var subs []domain.Submission
	for _, name := range []string{colContactSubmissions, colOffCampusApplications} {
		part, err := r.listByStatus(ctx, name, status)
		if err != nil {
			return nil, err
		}
		subs = append(subs, part...)
	}
	return subs, nil
}

func (r *submissionRepository) listByStatus(ctx context.Context, col string, status domain.SubmissionStatus) ([]domain.Submission, error) {
	iter := r.client.Collection(col).
		Where("status", "==", string(status)).
		OrderBy("submittedAt", fs.Desc).
		Documents(ctx)
	defer iter.Stop()

	var subs []domain.Submission
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return subs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions: %w", err)
		}
		var sub domain.Submission
		if err := snap.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("failed to decode submission %s: %w", snap.Ref.ID, err)
		}
		sub.ID = snap.Ref.ID
		subs = append(subs, sub)
	}
}

func (r *submissionRepository) MarkAccepted(ctx context.Context, id, accountID, tempPassword string, processedAt time.Time) error {
	return r.transition(ctx, id, domain.SubmissionStatusAccepted, []fs.Update{
		{Path: "status", Value: string(domain.SubmissionStatusAccepted)},
		{Path: "firebaseUid", Value: accountID},
		{Path: "temporaryPassword", Value: tempPassword},
		{Path: "processedAt", Value: processedAt},
	})
}

func (r *submissionRepository) MarkRejected(ctx context.Context, id string, processedAt time.Time) error {
	return r.transition(ctx, id, domain.SubmissionStatusRejected, []fs.Update{
		{Path: "status", Value: string(domain.SubmissionStatusRejected)},
		{Path: "processedAt", Value: processedAt},
	})
}

// transition applies updates inside a transaction that re-reads the
// document and fails unless it is still pending. Two concurrent
// processings of the same submission cannot both pass the check.
func (r *submissionRepository) transition(ctx context.Context, id string, to domain.SubmissionStatus, updates []fs.Update) error {
	docRef, _, err := r.ref(ctx, id)
	if err != nil {
		return err
	}

	logger.StoreCall("transition", docRef.Parent.ID, "id", id, "to", string(to))
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *fs.Transaction) error {
		snap, err := tx.Get(docRef)
		if err != nil {
			return mapErr(err)
		}
		var sub domain.Submission
		if err := snap.DataTo(&sub); err != nil {
			return fmt.Errorf("failed to decode submission %s: %w", id, err)
		}
		if sub.Status != domain.SubmissionStatusPending {
			return repository.ErrStatusConflict
		}
		return tx.Update(docRef, updates)
	})
	logger.StoreResult("transition", docRef.Parent.ID, err, "id", id, "to", string(to))
	return err
}
