package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
}

func newDashboardHandler(database database.Database) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  database,
	}
}

// @Summary Admin dashboard counts
// @Tags Admin
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /admin/dashboard [get]
func (h dashboardHandler) counts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := h.database.DashboardCounts(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "dashboard", err))
			return
		}
		h.responder.WriteJSON(w, DashboardResponse{Counts: counts})
	}
}
