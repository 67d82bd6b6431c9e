package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type portfolioHandler struct {
	responder     Responder
	logger        zerolog.Logger
	portfolioRepo *database.PortfolioRepo
	projectRepo   *database.ProjectRepo
	siteURL       string
}

func newPortfolioHandler(portfolioRepo *database.PortfolioRepo, projectRepo *database.ProjectRepo, siteURL string) portfolioHandler {
	logger := log.With().Str("handlerName", "portfolioHandler").Logger()

	return portfolioHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		portfolioRepo: portfolioRepo,
		projectRepo:   projectRepo,
		siteURL:       strings.TrimSuffix(siteURL, "/"),
	}
}

// publicURL is the share link for a client portfolio page.
func (h portfolioHandler) publicURL(slug string) string {
	return h.siteURL + "/p/" + slug
}

// list returns the admin portfolio rows
// @Summary List portfolios (admin)
// @Tags Admin Portfolios
// @Produce json
// @Success 200 {array} models.PortfolioListItem
// @Router /admin/portfolios [get]
func (h portfolioHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolios, err := h.portfolioRepo.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolios", err))
			return
		}

		items := make([]models.PortfolioListItem, 0, len(portfolios))
		for i := range portfolios {
			items = append(items, portfolios[i].ListItem())
		}
		h.responder.WriteJSON(w, items)
	}
}

// editor returns the portfolio, the published candidates and the current selection
// @Summary Get portfolio editor state
// @Tags Admin Portfolios
// @Produce json
// @Param portfolioID path string true "Portfolio ID (uuid) or new"
// @Success 200 {object} PortfolioEditorResponse
// @Failure 404 {object} ErrorResponse "Not Found - Portfolio not found"
// @Router /admin/portfolios/{portfolioID} [get]
func (h portfolioHandler) editor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, isNew, err := editorIDParam(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		candidates, err := h.projectRepo.ListPublishedRefs(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		if isNew {
			form := models.NewPortfolioForm()
			h.responder.WriteJSON(w, PortfolioEditorResponse{
				ID:         newIDToken,
				IsNew:      true,
				Form:       &form,
				Candidates: candidates,
				Selected:   []models.ProjectRef{},
			})
			return
		}

		portfolio, err := h.portfolioRepo.FindByID(r.Context(), portfolioID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
			return
		}
		links, err := h.portfolioRepo.Links(r.Context(), portfolio.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "portfolio links", err))
			return
		}
		selected, err := h.selectedRefs(r, portfolio.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form := models.PortfolioFormFrom(portfolio, links)
		h.responder.WriteJSON(w, PortfolioEditorResponse{
			ID:         portfolio.ID.String(),
			Form:       &form,
			Portfolio:  portfolio,
			PublicURL:  h.publicURL(portfolio.Slug),
			Candidates: candidates,
			Selected:   selected,
		})
	}
}

// save writes the portfolio and its ordered project links in one transaction
// @Summary Save portfolio draft / publish portfolio
// @Tags Admin Portfolios
// @Accept json
// @Produce json
// @Param portfolioID path string true "Portfolio ID (uuid) or new"
// @Param portfolio body models.PortfolioInput true "Portfolio data with ordered project_ids"
// @Success 200 {object} PortfolioSavedResponse
// @Success 201 {object} PortfolioSavedResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid portfolio data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /admin/portfolios/{portfolioID}/draft [post]
// @Router /admin/portfolios/{portfolioID}/publish [post]
func (h portfolioHandler) save(published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, isNew, err := editorIDParam(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.PortfolioInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		portfolio := &models.ClientPortfolio{}
		if !isNew {
			portfolio, err = h.portfolioRepo.FindByID(r.Context(), portfolioID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "portfolio", err))
				return
			}
		}
		input.ApplyTo(portfolio, published)

		if err := h.portfolioRepo.Save(r.Context(), portfolio, input.ProjectIDs, isNew); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("save", "portfolio", err))
			return
		}

		selected, err := h.selectedRefs(r, portfolio.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		response := PortfolioSavedResponse{
			Portfolio: portfolio,
			PublicURL: h.publicURL(portfolio.Slug),
			Selected:  selected,
		}

		if isNew {
			h.logger.Info().Str("portfolioId", portfolio.ID.String()).Bool("published", published).Msg("portfolio created")
			w.Header().Set("Location", "/api/admin/portfolios/"+portfolio.ID.String())
			h.responder.WriteJSONStatus(w, http.StatusCreated, response)
			return
		}
		h.responder.WriteJSON(w, response)
	}
}

// delete removes a portfolio and its links once confirmed
// @Summary Delete portfolio
// @Tags Admin Portfolios
// @Param portfolioID path string true "Portfolio ID" format(uuid)
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 428 {object} ErrorResponse "Precondition Required - confirm=true missing"
// @Router /admin/portfolios/{portfolioID} [delete]
func (h portfolioHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolioID, err := uuidParam(r, "portfolioID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := requireConfirmation(r, "portfolio deletion"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.portfolioRepo.Delete(r.Context(), portfolioID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "portfolio", err))
			return
		}

		h.logger.Info().Str("portfolioId", portfolioID.String()).Msg("portfolio deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

// addProject appends a project to the selection; already selected is a no-op
// @Summary Add project to portfolio
// @Tags Admin Portfolios
// @Accept json
// @Produce json
// @Param portfolioID path string true "Portfolio ID" format(uuid)
// @Param body body AddProjectRequest true "Project to add"
// @Success 200 {object} SelectionResponse
// @Router /admin/portfolios/{portfolioID}/projects [post]
func (h portfolioHandler) addProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("project_id"))
			return
		}

		h.editSelection(w, r, func(sel *services.Selection) error {
			sel.Add(req.ProjectID)
			return nil
		})
	}
}

// removeProject drops a project from the selection
// @Summary Remove project from portfolio
// @Tags Admin Portfolios
// @Produce json
// @Param portfolioID path string true "Portfolio ID" format(uuid)
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} SelectionResponse
// @Router /admin/portfolios/{portfolioID}/projects/{projectID} [delete]
func (h portfolioHandler) removeProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.editSelection(w, r, func(sel *services.Selection) error {
			sel.Remove(projectID)
			return nil
		})
	}
}

// moveProject reorders the selection with an array move
// @Summary Move project within portfolio
// @Tags Admin Portfolios
// @Accept json
// @Produce json
// @Param portfolioID path string true "Portfolio ID" format(uuid)
// @Param body body MoveProjectRequest true "0-based from and to positions"
// @Success 200 {object} SelectionResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Position out of range"
// @Router /admin/portfolios/{portfolioID}/projects/move [post]
func (h portfolioHandler) moveProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MoveProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.From == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("from"))
			return
		}
		if req.To == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("to"))
			return
		}

		h.editSelection(w, r, func(sel *services.Selection) error {
			return sel.Move(*req.From, *req.To)
		})
	}
}

// editSelection loads the stored selection, applies edit and persists the
// resulting link set atomically.
func (h portfolioHandler) editSelection(w http.ResponseWriter, r *http.Request, edit func(*services.Selection) error) {
	portfolioID, err := uuidParam(r, "portfolioID")
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}

	links, err := h.portfolioRepo.Links(r.Context(), portfolioID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "portfolio links", err))
		return
	}

	selection := services.SelectionFromLinks(links)
	if err := edit(selection); err != nil {
		h.responder.WriteError(w, err)
		return
	}

	if err := h.portfolioRepo.ReplaceLinks(r.Context(), portfolioID, selection.Links(portfolioID)); err != nil {
		h.responder.WriteError(w, wrapDatabaseError("update", "portfolio", err))
		return
	}

	selected, err := h.selectedRefs(r, portfolioID)
	if err != nil {
		h.responder.WriteError(w, err)
		return
	}
	h.responder.WriteJSON(w, SelectionResponse{PortfolioID: portfolioID.String(), Selected: selected})
}

func (h portfolioHandler) selectedRefs(r *http.Request, portfolioID uuid.UUID) ([]models.ProjectRef, error) {
	projects, err := h.portfolioRepo.LinkedProjects(r.Context(), portfolioID, false)
	if err != nil {
		return nil, wrapDatabaseError("find", "portfolio projects", err)
	}
	refs := make([]models.ProjectRef, 0, len(projects))
	for i := range projects {
		refs = append(refs, projects[i].Ref())
	}
	return refs, nil
}
