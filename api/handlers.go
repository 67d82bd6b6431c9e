package api

import (
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, r router, cookies cookieJar) *routeHandlers {
	siteURL := config.GetString(r.config, "SITE_URL", "")

	return &routeHandlers{
		publicHandler:    newPublicHandler(database.ProjectRepo(), database.PortfolioRepo(), database.SiteSettingsRepo()),
		projectHandler:   newProjectHandler(database.ProjectRepo()),
		portfolioHandler: newPortfolioHandler(database.PortfolioRepo(), database.ProjectRepo(), siteURL),
		messageHandler:   newMessageHandler(database.ContactMessageRepo()),
		settingsHandler:  newSettingsHandler(database.SiteSettingsRepo()),
		contactHandler:   newContactHandler(r.contact),
		uploadHandler:    newUploadHandler(r.images),
		authHandler:      newAuthHandler(r.gate, cookies),
		dashboardHandler: newDashboardHandler(database),
		healthHandler:    newHealthHandler(database, r.startupTime),
	}
}
