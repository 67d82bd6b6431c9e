package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const supabaseAudience = "authenticated"

// Claims are the fields this API reads from a Supabase access token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier checks Supabase access tokens locally with the project's JWT secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithAudience(supabaseAudience),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify returns the session carried by token. Expired tokens yield an
// errs.ErrExpiredToken so callers can try a refresh.
func (v *Verifier) Verify(token string) (Session, error) {
	if token == "" {
		return Session{}, errs.NewMissingTokenError()
	}

	var claims Claims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, errs.NewExpiredTokenError()
		}
		return Session{}, errs.NewInvalidTokenError(err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Session{}, errs.NewInvalidTokenError(fmt.Errorf("subject is not a user id: %w", err))
	}

	return Session{
		UserID:      userID,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt.Time,
		AccessToken: token,
	}, nil
}
