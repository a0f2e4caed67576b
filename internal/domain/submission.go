package domain

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusAccepted SubmissionStatus = "accepted"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

type CampusStatus string

const (
	CampusStatusOnCampus  CampusStatus = "campus"
	CampusStatusOffCampus CampusStatus = "off-campus"
)

// Submission is an applicant's incubation-program application. A submission
// leaves "pending" exactly once; it is never reprocessed and never deleted.
type Submission struct {
	ID           string           `firestore:"-" json:"id"`
	Name         string           `firestore:"name" json:"name"`
	Email        string           `firestore:"email" json:"email"`
	Company      string           `firestore:"company,omitempty" json:"company,omitempty"`
	Idea         string           `firestore:"idea" json:"idea"`
	CampusStatus CampusStatus     `firestore:"campusStatus,omitempty" json:"campus_status,omitempty"`
	Status       SubmissionStatus `firestore:"status" json:"status"`
	SubmittedAt  time.Time        `firestore:"submittedAt" json:"submitted_at"`

	// Set when the submission is accepted.
	AccountID         string     `firestore:"firebaseUid,omitempty" json:"firebase_uid,omitempty"`
	TemporaryPassword string     `firestore:"temporaryPassword,omitempty" json:"-"`
	ProcessedAt       *time.Time `firestore:"processedAt,omitempty" json:"processed_at,omitempty"`
}
