package services

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"

	"storefront/internal/domain"
)

// IdentityVerifier checks an ID token issued by the identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (domain.GoogleProfile, error)
}

// GoogleVerifier validates Google ID tokens for one OAuth client id.
type GoogleVerifier struct {
	ClientID string
}

func (g GoogleVerifier) Verify(ctx context.Context, idToken string) (domain.GoogleProfile, error) {
	if idToken == "" {
		return domain.GoogleProfile{}, errors.New("empty id token")
	}
	payload, err := idtoken.Validate(ctx, idToken, g.ClientID)
	if err != nil {
		return domain.GoogleProfile{}, err
	}
	if payload.Subject == "" {
		return domain.GoogleProfile{}, errors.New("id token has no subject")
	}
	return domain.GoogleProfile{
		Subject: payload.Subject,
		Name:    claim(payload.Claims, "name"),
		Email:   claim(payload.Claims, "email"),
		Picture: claim(payload.Claims, "picture"),
	}, nil
}

func claim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}
