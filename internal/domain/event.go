package domain

import "time"

// Event is an incubation-centre announcement shown on the portal dashboard.
type Event struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Description string    `firestore:"description,omitempty" json:"description,omitempty"`
	Location    string    `firestore:"location,omitempty" json:"location,omitempty"`
	StartsAt    time.Time `firestore:"startsAt" json:"starts_at"`
	CreatedBy   string    `firestore:"createdBy" json:"created_by"`
	CreatedAt   time.Time `firestore:"createdAt" json:"created_at"`
}
