package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-site-backend/auth"
)

const (
	accessTokenCookie  = "sb-access-token"
	refreshTokenCookie = "sb-refresh-token"
	refreshCookieTTL   = 30 * 24 * time.Hour
)

type cookieJar struct {
	secure bool
}

func (c cookieJar) setSession(w http.ResponseWriter, session auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	})
	if session.RefreshToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     refreshTokenCookie,
			Value:    session.RefreshToken,
			Path:     "/",
			Expires:  time.Now().Add(refreshCookieTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   c.secure,
		})
	}
}

func (c cookieJar) clear(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   c.secure,
		})
	}
}

// tokensFromRequest prefers the Authorization header over the access cookie.
func tokensFromRequest(r *http.Request) (access, refresh string) {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		access = token
	} else if cookie, err := r.Cookie(accessTokenCookie); err == nil {
		access = cookie.Value
	}
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refresh = cookie.Value
	}
	return access, refresh
}
