package domain

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleMentor          Role = "mentor"
	RoleUser            Role = "user"
	RoleUnauthenticated Role = "unauthenticated"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
)

// OnboardingProgress tracks the four independent post-acceptance milestones.
type OnboardingProgress struct {
	PasswordChanged         bool `firestore:"passwordChanged" json:"password_changed"`
	ProfileCompleted        bool `firestore:"profileCompleted" json:"profile_completed"`
	NotificationsConfigured bool `firestore:"notificationsConfigured" json:"notifications_configured"`
	Completed               bool `firestore:"completed" json:"completed"`
}

// Milestone names accepted when updating OnboardingProgress; they match
// the stored field names.
const (
	MilestonePasswordChanged         = "passwordChanged"
	MilestoneProfileCompleted        = "profileCompleted"
	MilestoneNotificationsConfigured = "notificationsConfigured"
	MilestoneCompleted               = "completed"
)

// ValidOnboardingMilestone reports whether name is a known milestone.
func ValidOnboardingMilestone(name string) bool {
	switch name {
	case MilestonePasswordChanged, MilestoneProfileCompleted,
		MilestoneNotificationsConfigured, MilestoneCompleted:
		return true
	}
	return false
}

// User is an account created when a submission is accepted. ID is the
// identity provider's account id; SubmissionID links back to the submission
// that created it (one-to-one).
type User struct {
	ID           string             `firestore:"-" json:"id"`
	Email        string             `firestore:"email" json:"email"`
	Name         string             `firestore:"name" json:"name"`
	Status       UserStatus         `firestore:"status" json:"status"`
	Role         Role               `firestore:"role" json:"role"`
	SubmissionID string             `firestore:"submissionId" json:"submission_id"`
	Onboarding   OnboardingProgress `firestore:"onboarding" json:"onboarding"`
	EmailOptIn   bool               `firestore:"emailOptIn" json:"email_opt_in"`
	CreatedAt    time.Time          `firestore:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `firestore:"updatedAt" json:"updated_at"`
}
