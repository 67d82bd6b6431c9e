package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	supabaseauth "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// SupabaseProvider signs operators in against Supabase Auth.
type SupabaseProvider struct {
	client supabaseauth.Client
}

// NewSupabaseProvider builds a client for projectRef. A non-empty authURL
// (e.g. a self-hosted or local stack) replaces the hosted one.
func NewSupabaseProvider(projectRef, anonKey, authURL string) *SupabaseProvider {
	client := supabaseauth.New(projectRef, anonKey)
	if authURL != "" {
		if !strings.HasPrefix(authURL, "https://") || !strings.Contains(authURL, ".supabase.co") {
			log.Warn().Str("authURL", authURL).Msg("auth URL does not look like a hosted Supabase project")
		}
		client = client.WithCustomAuthURL(strings.TrimRight(authURL, "/") + "/auth/v1")
	}
	return &SupabaseProvider{client: client}
}

func (p *SupabaseProvider) SignIn(_ context.Context, email, password string) (Session, error) {
	resp, err := p.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return Session{}, errs.NewInvalidCredentialsError(err)
	}
	return sessionFromToken(resp), nil
}

func (p *SupabaseProvider) Refresh(_ context.Context, refreshToken string) (Session, error) {
	resp, err := p.client.RefreshToken(refreshToken)
	if err != nil {
		return Session{}, errs.NewInvalidTokenError(err)
	}
	return sessionFromToken(resp), nil
}

func (p *SupabaseProvider) SignOut(_ context.Context, accessToken string) error {
	return p.client.WithToken(accessToken).Logout()
}

func sessionFromToken(resp *types.TokenResponse) Session {
	expiresAt := time.Unix(resp.ExpiresAt, 0)
	if resp.ExpiresAt == 0 {
		expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return Session{
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
		ExpiresAt:    expiresAt,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
}
