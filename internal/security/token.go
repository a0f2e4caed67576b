package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type TokenType string

const (
	TokenTypeMentorDecision TokenType = "mentor_decision"
)

// DecisionClaims binds an emailed decision token to one mentor request.
// The token is a bearer capability: it allows exactly one transition
// (admin_approved -> mentor decision) on exactly one request, and it
// expires. The request document additionally stores a digest of the token
// id so a consumed token cannot be replayed.
type DecisionClaims struct {
	RequestID   string    `json:"request_id"`
	MentorEmail string    `json:"mentor_email"`
	Type        TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	// GenerateDecisionToken returns the signed token and its token id
	// (the id's digest is persisted on the request).
	GenerateDecisionToken(requestID, mentorEmail string) (token string, tokenID string, err error)
	ValidateDecisionToken(tokenString string) (*DecisionClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (m *tokenManager) GenerateDecisionToken(requestID, mentorEmail string) (string, string, error) {
	tokenID := uuid.NewString()
	claims := DecisionClaims{
		RequestID:   requestID,
		MentorEmail: mentorEmail,
		Type:        TokenTypeMentorDecision,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   mentorEmail,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "incubator-portal",
			Audience:  jwt.ClaimStrings{"mentor-decision"},
			ID:        tokenID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

func (m *tokenManager) ValidateDecisionToken(tokenString string) (*DecisionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DecisionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*DecisionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeMentorDecision || claims.RequestID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
