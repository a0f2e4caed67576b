package firestore

import (
	fs "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"incubator-portal-backend/internal/repository"
)

// Collection names. Campus and off-campus applications live in separate
// collections; the submission repository spans both.
const (
	colContactSubmissions     = "contactSubmissions"
	colOffCampusApplications  = "offCampusApplications"
	colUsers                  = "users"
	colMentors                = "mentors"
	colMentorProfile          = "profile"
	docMentorProfileDetails   = "details"
	colMentorRequests         = "mentorRequests"
	colEvents                 = "events"
	colMailOutbox             = "mailOutbox"
)

// Store bundles the Firestore-backed repositories
type Store struct {
	SubmissionRepository    repository.SubmissionRepository
	UserRepository          repository.UserRepository
	MentorRepository        repository.MentorRepository
	MentorRequestRepository repository.MentorRequestRepository
	OutboxRepository        repository.OutboxRepository
	EventRepository         repository.EventRepository
}

// NewStore creates all repositories sharing one Firestore client
func NewStore(client *fs.Client) *Store {
	return &Store{
		SubmissionRepository:    NewSubmissionRepository(client),
		UserRepository:          NewUserRepository(client),
		MentorRepository:        NewMentorRepository(client),
		MentorRequestRepository: NewMentorRequestRepository(client),
		OutboxRepository:        NewOutboxRepository(client),
		EventRepository:         NewEventRepository(client),
	}
}

// mapErr converts Firestore NotFound codes to the repository sentinel so
// callers never inspect grpc codes themselves.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}
