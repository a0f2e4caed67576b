package domain

import "time"

type MentorRequestStatus string

const (
	MentorRequestStatusPending        MentorRequestStatus = "pending"
	MentorRequestStatusAdminApproved  MentorRequestStatus = "admin_approved"
	MentorRequestStatusAdminRejected  MentorRequestStatus = "admin_rejected"
	MentorRequestStatusMentorApproved MentorRequestStatus = "mentor_approved"
	MentorRequestStatusMentorRejected MentorRequestStatus = "mentor_rejected"
)

// IsTerminal reports whether no further transition is legal from s.
// The transition graph is a strict DAG:
//
//	pending -> admin_approved -> mentor_approved | mentor_rejected
//	pending -> admin_rejected
func (s MentorRequestStatus) IsTerminal() bool {
	switch s {
	case MentorRequestStatusAdminRejected,
		MentorRequestStatusMentorApproved,
		MentorRequestStatusMentorRejected:
		return true
	}
	return false
}

// IsOpen reports whether the request still awaits a decision from someone.
func (s MentorRequestStatus) IsOpen() bool {
	return s == MentorRequestStatusPending || s == MentorRequestStatusAdminApproved
}

// MentorRequest is a mentee's request to be paired with a specific mentor,
// subject to two-stage approval (admin first, then the mentor).
type MentorRequest struct {
	ID          string              `firestore:"-" json:"id"`
	UserID      string              `firestore:"userId" json:"user_id"`
	UserName    string              `firestore:"userName" json:"user_name"`
	UserEmail   string              `firestore:"userEmail" json:"user_email"`
	MentorID    string              `firestore:"mentorId" json:"mentor_id"`
	MentorName  string              `firestore:"mentorName" json:"mentor_name"`
	MentorEmail string              `firestore:"mentorEmail" json:"mentor_email"`
	Message     string              `firestore:"message" json:"message"`
	Status      MentorRequestStatus `firestore:"status" json:"status"`

	AdminNotes        string     `firestore:"adminNotes,omitempty" json:"admin_notes,omitempty"`
	AdminProcessedAt  *time.Time `firestore:"adminProcessedAt,omitempty" json:"admin_processed_at,omitempty"`
	MentorNotes       string     `firestore:"mentorNotes,omitempty" json:"mentor_notes,omitempty"`
	MentorProcessedAt *time.Time `firestore:"mentorProcessedAt,omitempty" json:"mentor_processed_at,omitempty"`

	// bcrypt digest of the emailed decision token's id; cleared once the
	// mentor's decision consumes it.
	DecisionTokenDigest string `firestore:"decisionTokenDigest,omitempty" json:"-"`

	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updated_at"`
}
