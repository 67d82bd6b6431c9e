package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type settingsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	settingsRepo *database.SiteSettingsRepo
}

func newSettingsHandler(settingsRepo *database.SiteSettingsRepo) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		settingsRepo: settingsRepo,
	}
}

// @Summary Get site settings (admin)
// @Tags Admin Settings
// @Produce json
// @Success 200 {object} SettingsEditorResponse
// @Failure 404 {object} ErrorResponse "Not Found - Settings row was never seeded"
// @Router /admin/settings [get]
func (h settingsHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, SettingsEditorResponse{
			Form:     models.SiteSettingsFormFrom(settings),
			Settings: settings,
		})
	}
}

// @Summary Update site settings
// @Tags Admin Settings
// @Accept json
// @Produce json
// @Param settings body models.SiteSettingsInput true "Settings"
// @Success 200 {object} models.SiteSettings
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid settings"
// @Failure 404 {object} ErrorResponse "Not Found - Settings row was never seeded"
// @Router /admin/settings [put]
func (h settingsHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.SiteSettingsInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.settingsRepo.Update(r.Context(), &input)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}
