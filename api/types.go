package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	publicHandler    publicHandler
	projectHandler   projectHandler
	portfolioHandler portfolioHandler
	messageHandler   messageHandler
	settingsHandler  settingsHandler
	contactHandler   contactHandler
	uploadHandler    uploadHandler
	authHandler      authHandler
	dashboardHandler dashboardHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error             string `json:"error" example:"Internal Server Error"`
	Status            string `json:"status" example:"error"`
	Field             string `json:"field,omitempty" example:"title"`
	Details           string `json:"details,omitempty" example:"Additional error details"`
	Cause             string `json:"cause,omitempty" example:"Underlying error cause"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty" example:"42"`
}

// UnauthenticatedResponse tells the frontend where the login screen is.
type UnauthenticatedResponse struct {
	Error    string `json:"error" example:"unauthorized"`
	Redirect string `json:"redirect" example:"/admin/login"`
}

type HomeResponse struct {
	Settings *models.SiteSettings `json:"settings"`
	Featured []models.Project     `json:"featured"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Tags     []string         `json:"tags"`
	Total    int              `json:"total"`
}

type PublicPortfolioResponse struct {
	Portfolio *models.ClientPortfolio `json:"portfolio"`
	Settings  *models.SiteSettings    `json:"settings"`
	Projects  []models.Project        `json:"projects"`
}

type ProjectEditorResponse struct {
	ID      string               `json:"id"`
	IsNew   bool                 `json:"is_new"`
	Form    *models.ProjectInput `json:"form,omitempty"`
	Project *models.Project      `json:"project,omitempty"`
}

type PortfolioEditorResponse struct {
	ID         string                  `json:"id"`
	IsNew      bool                    `json:"is_new"`
	Form       *models.PortfolioInput  `json:"form,omitempty"`
	Portfolio  *models.ClientPortfolio `json:"portfolio,omitempty"`
	PublicURL  string                  `json:"public_url,omitempty"`
	Candidates []models.ProjectRef     `json:"candidates"`
	Selected   []models.ProjectRef     `json:"selected"`
}

// SettingsEditorResponse carries the stored row and the form PUT accepts back.
type SettingsEditorResponse struct {
	Form     models.SiteSettingsInput `json:"form"`
	Settings *models.SiteSettings     `json:"settings"`
}

type PortfolioSavedResponse struct {
	Portfolio *models.ClientPortfolio `json:"portfolio"`
	PublicURL string                  `json:"public_url"`
	Selected  []models.ProjectRef     `json:"selected"`
}

type SessionResponse struct {
	Session *auth.Session `json:"session"`
}

type DashboardResponse struct {
	Counts database.DashboardCounts `json:"counts"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type HealthResponse struct {
	Status        string    `json:"status"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

type SelectionResponse struct {
	PortfolioID string              `json:"portfolio_id"`
	Selected    []models.ProjectRef `json:"selected"`
}

type AddProjectRequest struct {
	ProjectID uuid.UUID `json:"project_id"`
}

type MoveProjectRequest struct {
	From *int `json:"from"`
	To   *int `json:"to"`
}
