package domain

import "time"

// Mentor is the primary mentor record. Editable profile fields are
// duplicated in a separately-versioned details sub-record so profile edits
// do not rewrite the auth-linked fields; reads fall back to these fields
// when no details sub-record exists.
type Mentor struct {
	ID          string     `firestore:"-" json:"id"`
	Name        string     `firestore:"name" json:"name"`
	Email       string     `firestore:"email" json:"email"`
	Designation string     `firestore:"designation,omitempty" json:"designation,omitempty"`
	Expertise   string     `firestore:"expertise,omitempty" json:"expertise,omitempty"`
	Bio         string     `firestore:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string     `firestore:"avatarUrl,omitempty" json:"avatar_url,omitempty"`
	ProfileLink string     `firestore:"profileLink,omitempty" json:"profile_link,omitempty"`
	Status      UserStatus `firestore:"status" json:"status"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"created_at"`
	UpdatedAt   time.Time  `firestore:"updatedAt" json:"updated_at"`
}

// MentorDetails is the mentor-editable profile sub-record.
type MentorDetails struct {
	Designation string    `firestore:"designation,omitempty" json:"designation,omitempty"`
	Expertise   string    `firestore:"expertise,omitempty" json:"expertise,omitempty"`
	Bio         string    `firestore:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL   string    `firestore:"avatarUrl,omitempty" json:"avatar_url,omitempty"`
	ProfileLink string    `firestore:"profileLink,omitempty" json:"profile_link,omitempty"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updated_at"`
}
