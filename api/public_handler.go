package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

const homeFeaturedLimit = 3

type publicHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projectRepo   *database.ProjectRepo
	portfolioRepo *database.PortfolioRepo
	settingsRepo  *database.SiteSettingsRepo
}

func newPublicHandler(projectRepo *database.ProjectRepo, portfolioRepo *database.PortfolioRepo, settingsRepo *database.SiteSettingsRepo) publicHandler {
	logger := log.With().Str("handlerName", "publicHandler").Logger()

	return publicHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projectRepo:   projectRepo,
		portfolioRepo: portfolioRepo,
		settingsRepo:  settingsRepo,
	}
}

// home returns the landing page content
// @Summary Home page
// @Description Site settings (or defaults) and up to three featured projects, newest first
// @Tags Public
// @Produce json
// @Success 200 {object} HomeResponse
// @Router /home [get]
func (h publicHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.GetOrDefault(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}

		featured, err := h.projectRepo.ListFeatured(r.Context(), homeFeaturedLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "featured projects", err))
			return
		}

		h.responder.WriteJSON(w, HomeResponse{Settings: settings, Featured: featured})
	}
}

// listProjects returns published projects filtered by q and tag
// @Summary List published projects
// @Description Search runs over title and summary, case insensitive. tags lists every tag of the published set.
// @Tags Public
// @Produce json
// @Param q query string false "Search text"
// @Param tag query string false "Tag filter"
// @Success 200 {object} ProjectListResponse
// @Router /projects [get]
func (h publicHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.ListPublished(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		tag := strings.TrimSpace(r.URL.Query().Get("tag"))
		filtered := services.FilterProjects(projects, query, tag)

		h.responder.WriteJSON(w, ProjectListResponse{
			Projects: filtered,
			Tags:     services.UnionTags(projects),
			Total:    len(filtered),
		})
	}
}

// getProject returns one published project by slug
// @Summary Get published project
// @Tags Public
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not Found - No published project with that slug"
// @Router /projects/{slug} [get]
func (h publicHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// getPortfolio returns a published client portfolio with its projects in order
// @Summary Get client portfolio page
// @Tags Public
// @Produce json
// @Param slug path string true "Portfolio slug"
// @Success 200 {object} PublicPortfolioResponse
// @Failure 404 {object} ErrorResponse "Not Found - No published portfolio with that slug"
// @Router /p/{slug} [get]
func (h publicHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolio, err := h.portfolioRepo.FindPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}

		projects, err := h.portfolioRepo.LinkedProjects(r.Context(), portfolio.ID, true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio projects", err))
			return
		}

		settings, err := h.settingsRepo.GetOrDefault(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}

		h.responder.WriteJSON(w, PublicPortfolioResponse{
			Portfolio: portfolio,
			Settings:  settings,
			Projects:  projects,
		})
	}
}

// getSettings returns the public site settings
// @Summary Site settings
// @Tags Public
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /settings [get]
func (h publicHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settingsRepo.GetOrDefault(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "site settings", err))
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}
