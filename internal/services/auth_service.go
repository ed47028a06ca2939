package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

var (
	ErrAuthFailed   = errors.New("authentication failed")
	ErrUserNotFound = errors.New("user not found")
)

type AuthService struct {
	Users    *repos.UserRepo
	Verifier IdentityVerifier
	Tokens   *TokenIssuer
}

func NewAuthService(users *repos.UserRepo, verifier IdentityVerifier, tokens *TokenIssuer) *AuthService {
	return &AuthService{Users: users, Verifier: verifier, Tokens: tokens}
}

// GoogleSignIn verifies the ID token, upserts the user and issues a session
// token.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*domain.User, string, error) {
	profile, err := s.Verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	u, err := s.Users.UpsertGoogle(ctx, profile)
	if err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}
	tok, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, tok, nil
}

// Authenticate validates a session token.
func (s *AuthService) Authenticate(raw string) (*Claims, error) {
	return s.Tokens.Verify(raw)
}

// CurrentUser returns the stored profile for the token's subject.
func (s *AuthService) CurrentUser(ctx context.Context, claims *Claims) (*domain.User, error) {
	u, err := s.Users.ByID(ctx, claims.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
