package identity

import (
	"context"
	"errors"
)

var (
	// ErrEmailInUse is returned when the provider already has an account
	// for the email address.
	ErrEmailInUse = errors.New("email is already in use")
	// ErrAccountNotFound is returned for lookups of unknown accounts.
	ErrAccountNotFound = errors.New("account not found")
)

// Identity is the provider's view of an authenticated caller.
type Identity struct {
	UID    string
	Email  string
	Claims map[string]interface{}
}

// Provider abstracts the external identity/auth service. Provisioning an
// account implicitly creates a session server-side with some providers;
// RevokeSessions undoes that after acceptance provisioning.
type Provider interface {
	// CreateAccount provisions an account and returns its id.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
	RevokeSessions(ctx context.Context, uid string) error
	// SetRoleClaim attaches a role custom claim; role resolution reads it
	// back instead of comparing a shared secret.
	SetRoleClaim(ctx context.Context, uid, role string) error
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	// PasswordResetLink returns a reset link for the email; delivery is the
	// email service's job.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
