package identity

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"incubator-portal-backend/internal/logger"
)

type firebaseProvider struct {
	client *auth.Client
}

// NewFirebaseProvider wraps the Firebase Auth admin client
func NewFirebaseProvider(client *auth.Client) Provider {
	return &firebaseProvider{client: client}
}

func (p *firebaseProvider) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(false).
		Disabled(false)

	logger.ExternalServiceCall("firebase-auth", "create-user", "email", email)
	record, err := p.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase-auth", "create-user", err, "email", email)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", ErrEmailInUse
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}
	return record.UID, nil
}

func (p *firebaseProvider) DeleteAccount(ctx context.Context, uid string) error {
	logger.ExternalServiceCall("firebase-auth", "delete-user", "uid", uid)
	err := p.client.DeleteUser(ctx, uid)
	logger.ExternalServiceResult("firebase-auth", "delete-user", err, "uid", uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (p *firebaseProvider) RevokeSessions(ctx context.Context, uid string) error {
	err := p.client.RevokeRefreshTokens(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func (p *firebaseProvider) SetRoleClaim(ctx context.Context, uid, role string) error {
	err := p.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role})
	if err != nil {
		return fmt.Errorf("failed to set role claim: %w", err)
	}
	return nil
}

func (p *firebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	return &Identity{
		UID:    token.UID,
		Email:  email,
		Claims: token.Claims,
	}, nil
}

func (p *firebaseProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	logger.ExternalServiceCall("firebase-auth", "password-reset-link", "email", email)
	link, err := p.client.PasswordResetLink(ctx, email)
	logger.ExternalServiceResult("firebase-auth", "password-reset-link", err, "email", email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to create password reset link: %w", err)
	}
	return link, nil
}
