package api

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactHandler(contact *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// submit stores a contact form post
// @Summary Submit contact form
// @Description A filled website field is accepted and dropped. One submission per client per minute.
// @Tags Public
// @Accept json
// @Produce json
// @Param message body models.ContactInput true "Contact form"
// @Success 201 {object} models.ContactMessage
// @Success 202 {object} StatusResponse "Accepted and discarded"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid form"
// @Failure 429 {object} ErrorResponse "Too Many Requests - Cooldown active"
// @Router /contact [post]
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ContactInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.contact.Submit(r.Context(), clientAddress(r), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if result.Discarded {
			h.responder.WriteJSONStatus(w, http.StatusAccepted, StatusResponse{Status: "accepted"})
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, result.Message)
	}
}

// clientAddress is the caller's IP. With TRUST_PROXY_HEADERS set,
// middleware.RealIP has already replaced RemoteAddr from the proxy header.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
