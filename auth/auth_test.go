package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, userID uuid.UUID, aud string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Email: "owner@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{aud},
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier(t *testing.T) {
	v := NewVerifier(testSecret)
	userID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		token := signToken(t, testSecret, userID, "authenticated", time.Now().Add(time.Hour))
		s, err := v.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, userID, s.UserID)
		assert.Equal(t, "owner@example.com", s.Email)
		assert.Equal(t, token, s.AccessToken)
	})

	tests := []struct {
		name  string
		token string
		check func(error) bool
	}{
		{"missing", "", errs.IsMissingTokenError},
		{"expired", signToken(t, testSecret, userID, "authenticated", time.Now().Add(-time.Minute)), errs.IsExpiredTokenError},
		{"wrong secret", signToken(t, "another-secret-another-secret-another", userID, "authenticated", time.Now().Add(time.Hour)), errs.IsInvalidTokenError},
		{"wrong audience", signToken(t, testSecret, userID, "anon", time.Now().Add(time.Hour)), errs.IsInvalidTokenError},
		{"garbage", "not.a.jwt", errs.IsInvalidTokenError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
			assert.Equal(t, 401, errs.StatusCode(err))
		})
	}
}

type fakeProvider struct {
	session    Session
	signInErr  error
	refreshErr error
	signOutErr error
	refreshes  int
	signedOut  []string
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (Session, error) {
	if f.signInErr != nil {
		return Session{}, f.signInErr
	}
	return f.session, nil
}

func (f *fakeProvider) Refresh(_ context.Context, refreshToken string) (Session, error) {
	f.refreshes++
	if f.refreshErr != nil {
		return Session{}, f.refreshErr
	}
	return f.session, nil
}

func (f *fakeProvider) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return f.signOutErr
}

func TestGateCurrent(t *testing.T) {
	userID := uuid.New()
	fresh := signToken(t, testSecret, userID, "authenticated", time.Now().Add(time.Hour))
	stale := signToken(t, testSecret, userID, "authenticated", time.Now().Add(-time.Minute))

	provider := &fakeProvider{session: Session{UserID: userID, AccessToken: fresh, RefreshToken: "rt-2", ExpiresAt: time.Now().Add(time.Hour)}}
	gate := NewGate(provider, NewVerifier(testSecret))
	ctx := context.Background()

	s, refreshed, err := gate.Current(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, s, "no tokens is the signed out branch, not an error")
	assert.False(t, refreshed)

	s, refreshed, err = gate.Current(ctx, fresh, "rt-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.False(t, refreshed)
	assert.Equal(t, "rt-1", s.RefreshToken)
	assert.Zero(t, provider.refreshes)

	s, refreshed, err = gate.Current(ctx, stale, "rt-1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.True(t, refreshed)
	assert.Equal(t, "rt-2", s.RefreshToken)
	assert.Equal(t, 1, provider.refreshes)

	s, _, err = gate.Current(ctx, stale, "")
	require.NoError(t, err)
	assert.Nil(t, s, "expired without refresh token")

	s, _, err = gate.Current(ctx, "forged", "rt-1")
	require.NoError(t, err)
	assert.Nil(t, s, "bad signatures are never refreshed")
	assert.Equal(t, 1, provider.refreshes)

	provider.refreshErr = errs.NewInvalidTokenError(errors.New("refresh token revoked"))
	s, _, err = gate.Current(ctx, stale, "rt-1")
	require.NoError(t, err)
	assert.Nil(t, s)

	provider.refreshErr = errors.New("auth service timeout")
	_, _, err = gate.Current(ctx, stale, "rt-1")
	assert.Error(t, err)
}

func TestGateEventsAndUnsubscribe(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, userID, "authenticated", time.Now().Add(time.Hour))
	provider := &fakeProvider{session: Session{UserID: userID, Email: "owner@example.com", AccessToken: token, ExpiresAt: time.Now().Add(time.Hour)}}
	gate := NewGate(provider, NewVerifier(testSecret))
	ctx := context.Background()

	var first, second []EventType
	unsubscribeFirst := gate.Subscribe(func(e Event) { first = append(first, e.Type) })
	gate.Subscribe(func(e Event) { second = append(second, e.Type) })

	session, err := gate.SignIn(ctx, "owner@example.com", "pw")
	require.NoError(t, err)
	_, err = gate.Refresh(ctx, "rt")
	require.NoError(t, err)

	unsubscribeFirst()
	unsubscribeFirst()

	require.NoError(t, gate.SignOut(ctx, session))

	assert.Equal(t, []EventType{EventSignedIn, EventTokenRefreshed}, first)
	assert.Equal(t, []EventType{EventSignedIn, EventTokenRefreshed, EventSignedOut}, second)
	assert.Equal(t, []string{token}, provider.signedOut)

	s, _, err := gate.Current(ctx, token, "")
	require.NoError(t, err)
	assert.Nil(t, s, "signed out tokens are rejected locally")
}

func TestGateSignInFailurePublishesNothing(t *testing.T) {
	provider := &fakeProvider{signInErr: errs.NewInvalidCredentialsError(errors.New("Invalid login credentials"))}
	gate := NewGate(provider, NewVerifier(testSecret))

	var events []Event
	gate.Subscribe(func(e Event) { events = append(events, e) })

	_, err := gate.SignIn(context.Background(), "a@b.co", "wrong")
	require.Error(t, err)
	assert.True(t, errs.IsInvalidCredentialsError(err))
	assert.Empty(t, events)
}

func TestGateSignOutIsBestEffort(t *testing.T) {
	provider := &fakeProvider{signOutErr: errors.New("network down")}
	gate := NewGate(provider, NewVerifier(testSecret))

	var events []EventType
	gate.Subscribe(func(e Event) { events = append(events, e.Type) })

	err := gate.SignOut(context.Background(), Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	assert.Error(t, err)
	assert.Equal(t, []EventType{EventSignedOut}, events)
	assert.True(t, gate.isRevoked("tok"))
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, Session{ExpiresAt: now}.Expired(now))
	assert.False(t, Session{ExpiresAt: now.Add(time.Second)}.Expired(now))
}
