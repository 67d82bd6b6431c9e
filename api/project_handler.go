package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// list returns the admin project rows
// @Summary List projects (admin)
// @Description Every project, drafts included, most recently updated first
// @Tags Admin Projects
// @Produce json
// @Success 200 {array} models.ProjectListItem
// @Failure 401 {object} UnauthenticatedResponse
// @Router /admin/projects [get]
func (h projectHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.ListAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		items := make([]models.ProjectListItem, 0, len(projects))
		for i := range projects {
			items = append(items, projects[i].ListItem())
		}
		h.responder.WriteJSON(w, items)
	}
}

// editor returns the editor state for one project
// @Summary Get project editor state
// @Description With projectID "new" returns the blank form, otherwise the hydrated form and the stored project
// @Tags Admin Projects
// @Produce json
// @Param projectID path string true "Project ID (uuid) or new"
// @Success 200 {object} ProjectEditorResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [get]
func (h projectHandler) editor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, isNew, err := editorIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if isNew {
			form := models.NewProjectForm()
			h.responder.WriteJSON(w, ProjectEditorResponse{ID: newIDToken, IsNew: true, Form: &form})
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}

		form := models.ProjectFormFrom(project)
		h.responder.WriteJSON(w, ProjectEditorResponse{ID: project.ID.String(), Form: &form, Project: project})
	}
}

// save persists the full editor payload. Draft and publish differ only in
// the published flag they write.
// @Summary Save project draft / publish project
// @Tags Admin Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID (uuid) or new"
// @Param project body models.ProjectInput true "Project data"
// @Success 200 {object} models.Project "Updated project"
// @Success 201 {object} models.Project "Created project, Location header points at it"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /admin/projects/{projectID}/draft [post]
// @Router /admin/projects/{projectID}/publish [post]
func (h projectHandler) save(published bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, isNew, err := editorIDParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		input.Normalize()
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if isNew {
			var project models.Project
			input.ApplyTo(&project, published)
			if err := h.projectRepo.Create(r.Context(), &project); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
				return
			}
			h.logger.Info().Str("projectId", project.ID.String()).Bool("published", published).Msg("project created")

			w.Header().Set("Location", "/api/admin/projects/"+project.ID.String())
			h.responder.WriteJSONStatus(w, http.StatusCreated, project)
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		input.ApplyTo(project, published)
		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// setFlags toggles featured and/or published on one row
// @Summary Toggle project flags
// @Tags Admin Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param flags body models.ProjectFlagsInput true "Flags to change"
// @Success 200 {object} models.ProjectListItem
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID}/flags [patch]
func (h projectHandler) setFlags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.ProjectFlagsInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.SetFlags(r.Context(), projectID, input.Columns())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, project.ListItem())
	}
}

// delete removes a project and its portfolio links once confirmed
// @Summary Delete project
// @Tags Admin Projects
// @Param projectID path string true "Project ID" format(uuid)
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 428 {object} ErrorResponse "Precondition Required - confirm=true missing"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := requireConfirmation(r, "project deletion"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("projectId", projectID.String()).Msg("project deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
