package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	gate      *auth.Gate
	cookies   cookieJar
}

func newAuthHandler(gate *auth.Gate, cookies cookieJar) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gate:      gate,
		cookies:   cookies,
	}
}

// login signs the operator in and sets the session cookies
// @Summary Admin login
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginInput true "Email and password"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Auth service rejected the credentials"
// @Router /admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.LoginInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		session, err := h.gate.SignIn(r.Context(), input.Email, input.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.cookies.setSession(w, session)
		h.responder.WriteJSON(w, SessionResponse{Session: &session})
	}
}

// logout revokes the session and clears the cookies
// @Summary Admin logout
// @Tags Admin Auth
// @Success 204
// @Router /admin/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFromContext(r.Context())
		if session != nil {
			if err := h.gate.SignOut(r.Context(), *session); err != nil {
				h.logger.Warn().Err(err).Str("userId", session.UserID.String()).Msg("auth service logout failed")
			}
		}

		h.cookies.clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// session echoes the current session
// @Summary Current admin session
// @Tags Admin Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} UnauthenticatedResponse
// @Router /admin/session [get]
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, SessionResponse{Session: sessionFromContext(r.Context())})
	}
}
