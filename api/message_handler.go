package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const allStatuses = "all"

type messageHandler struct {
	responder          Responder
	logger             zerolog.Logger
	contactMessageRepo *database.ContactMessageRepo
}

func newMessageHandler(contactMessageRepo *database.ContactMessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:          NewResponder(logger),
		logger:             logger,
		contactMessageRepo: contactMessageRepo,
	}
}

// list returns contact messages, newest first
// @Summary List contact messages
// @Tags Admin Messages
// @Produce json
// @Param status query string false "new (default), archived or all"
// @Success 200 {array} models.ContactMessage
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown status"
// @Router /admin/messages [get]
func (h messageHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := models.MessageStatus(r.URL.Query().Get("status"))
		switch {
		case status == "":
			status = models.MessageStatusNew
		case status == allStatuses:
			status = ""
		case !status.Valid():
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "use new, archived or all"))
			return
		}

		messages, err := h.contactMessageRepo.List(r.Context(), status)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "contact messages", err))
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

// archive moves a message from new to archived; archiving twice is a no-op
// @Summary Archive contact message
// @Tags Admin Messages
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /admin/messages/{messageID}/archive [post]
func (h messageHandler) archive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuidParam(r, "messageID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.contactMessageRepo.Archive(r.Context(), messageID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("archive", "contact message", err))
			return
		}
		h.responder.WriteJSON(w, message)
	}
}
