package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

type EventType string

const (
	EventSignedIn       EventType = "signed_in"
	EventSignedOut      EventType = "signed_out"
	EventTokenRefreshed EventType = "token_refreshed"
)

type Event struct {
	Type   EventType
	UserID uuid.UUID
	Email  string
	At     time.Time
}

type subscriber struct {
	id int
	fn func(Event)
}

// Gate owns session state for the process: it resolves the caller's session,
// signs operators in and out and tells subscribers about every change.
// Tokens signed out here stay rejected until they would have expired anyway.
type Gate struct {
	provider Provider
	verifier *Verifier
	now      func() time.Time

	mu          sync.Mutex
	subscribers []subscriber
	nextID      int
	revoked     map[string]time.Time
}

func NewGate(provider Provider, verifier *Verifier) *Gate {
	return &Gate{
		provider: provider,
		verifier: verifier,
		now:      time.Now,
		revoked:  make(map[string]time.Time),
	}
}

// Subscribe registers fn for every session event and returns the function
// that removes it. Events are delivered synchronously in registration order.
func (g *Gate) Subscribe(fn func(Event)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.subscribers = append(g.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			for i, s := range g.subscribers {
				if s.id == id {
					g.subscribers = append(g.subscribers[:i], g.subscribers[i+1:]...)
					return
				}
			}
		})
	}
}

func (g *Gate) publish(t EventType, s Session) {
	g.mu.Lock()
	subs := make([]subscriber, len(g.subscribers))
	copy(subs, g.subscribers)
	g.mu.Unlock()

	ev := Event{Type: t, UserID: s.UserID, Email: s.Email, At: g.now()}
	for _, sub := range subs {
		sub.fn(ev)
	}
}

// Current resolves the session for the given tokens. An expired access token
// is refreshed once when a refresh token is available; the returned bool
// reports that the tokens changed. A nil session with a nil error means the
// caller is simply not signed in.
func (g *Gate) Current(ctx context.Context, accessToken, refreshToken string) (*Session, bool, error) {
	if accessToken == "" && refreshToken == "" {
		return nil, false, nil
	}
	if g.isRevoked(accessToken) {
		return nil, false, nil
	}

	session, err := g.verifier.Verify(accessToken)
	if err == nil {
		session.RefreshToken = refreshToken
		return &session, false, nil
	}

	canRefresh := refreshToken != "" && (errs.IsExpiredTokenError(err) || errs.IsMissingTokenError(err))
	if !canRefresh {
		return nil, false, nil
	}

	refreshed, err := g.Refresh(ctx, refreshToken)
	if err != nil {
		var apiErr *errs.ApiErr
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &refreshed, true, nil
}

func (g *Gate) SignIn(ctx context.Context, email, password string) (Session, error) {
	session, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	g.publish(EventSignedIn, session)
	return session, nil
}

func (g *Gate) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	session, err := g.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return Session{}, err
	}
	g.publish(EventTokenRefreshed, session)
	return session, nil
}

// SignOut revokes the session with the provider and locally. The provider
// call is best effort; its error is returned after local state is cleared.
func (g *Gate) SignOut(ctx context.Context, session Session) error {
	g.revoke(session.AccessToken, session.ExpiresAt)
	err := g.provider.SignOut(ctx, session.AccessToken)
	g.publish(EventSignedOut, session)
	return err
}

func (g *Gate) revoke(token string, until time.Time) {
	if token == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for t, exp := range g.revoked {
		if !exp.After(now) {
			delete(g.revoked, t)
		}
	}
	g.revoked[token] = until
}

func (g *Gate) isRevoked(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	until, ok := g.revoked[token]
	return ok && until.After(g.now())
}
