package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type stubVerifier struct {
	profile domain.GoogleProfile
	err     error
}

func (s stubVerifier) Verify(context.Context, string) (domain.GoogleProfile, error) {
	return s.profile, s.err
}

func TestGoogleSignInUpsertsAndIssuesToken(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)
	tokens := services.NewTokenIssuer("test-secret")
	profile := domain.GoogleProfile{Subject: "sub-42", Name: "Ravi", Email: "ravi@example.com", Picture: "p1"}
	svc := services.NewAuthService(users, stubVerifier{profile: profile}, tokens)

	u, tok, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", u.Name)

	claims, err := svc.Authenticate(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.ID)
	assert.Equal(t, "ravi@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	// second sign-in keeps the id and refreshes the profile
	profile.Name = "Ravi K"
	svc.Verifier = stubVerifier{profile: profile}
	again, _, err := svc.GoogleSignIn(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Ravi K", again.Name)

	cur, err := svc.CurrentUser(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", cur.Name)
}

func TestGoogleSignInRejectsBadIDToken(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), stubVerifier{err: errors.New("bad audience")}, services.NewTokenIssuer("s"))

	_, _, err := svc.GoogleSignIn(context.Background(), "forged")
	assert.ErrorIs(t, err, services.ErrAuthFailed)
}

func TestVerifyRejectsTamperedAndExpired(t *testing.T) {
	issuer := services.NewTokenIssuer("secret-a")
	tok, err := issuer.Issue(7, "a@example.com")
	require.NoError(t, err)

	_, err = services.NewTokenIssuer("secret-b").Verify(tok)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, err = issuer.Verify(tok + "x")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		ID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	raw, err := expired.SignedString([]byte("secret-a"))
	require.NoError(t, err)
	_, err = issuer.Verify(raw)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, services.Claims{ID: 7})
	rawNone, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(rawNone)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestCurrentUserGone(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)
	svc := services.NewAuthService(users, stubVerifier{}, services.NewTokenIssuer("s"))
	u := seedUser(t, db)
	require.NoError(t, users.Delete(context.Background(), u.ID))

	_, err := svc.CurrentUser(context.Background(), &services.Claims{ID: u.ID})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
