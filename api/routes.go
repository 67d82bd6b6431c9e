package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes mounts the visitor facing API. Everything here only ever
// sees published rows.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/home", handlers.publicHandler.home())
	r.Get("/projects", handlers.publicHandler.listProjects())
	r.Get("/projects/{slug}", handlers.publicHandler.getProject())
	r.Get("/p/{slug}", handlers.publicHandler.getPortfolio())
	r.Get("/settings", handlers.publicHandler.getSettings())
	r.Post("/contact", handlers.contactHandler.submit())
}

// setupAdminRoutes mounts the operator API. Only login is reachable without a session.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware) {
	r.Route("/admin", func(admin chi.Router) {
		admin.Post("/login", handlers.authHandler.login())

		admin.Group(func(admin chi.Router) {
			admin.Use(sessions.require)

			admin.Post("/logout", handlers.authHandler.logout())
			admin.Get("/session", handlers.authHandler.session())
			admin.Get("/dashboard", handlers.dashboardHandler.counts())

			// Project Handler endpoints
			admin.Get("/projects", handlers.projectHandler.list())
			admin.Get("/projects/{projectID}", handlers.projectHandler.editor())
			admin.Post("/projects/{projectID}/draft", handlers.projectHandler.save(false))
			admin.Post("/projects/{projectID}/publish", handlers.projectHandler.save(true))
			admin.Patch("/projects/{projectID}/flags", handlers.projectHandler.setFlags())
			admin.Delete("/projects/{projectID}", handlers.projectHandler.delete())

			// Portfolio Handler endpoints
			admin.Get("/portfolios", handlers.portfolioHandler.list())
			admin.Get("/portfolios/{portfolioID}", handlers.portfolioHandler.editor())
			admin.Post("/portfolios/{portfolioID}/draft", handlers.portfolioHandler.save(false))
			admin.Post("/portfolios/{portfolioID}/publish", handlers.portfolioHandler.save(true))
			admin.Delete("/portfolios/{portfolioID}", handlers.portfolioHandler.delete())
			admin.Post("/portfolios/{portfolioID}/projects", handlers.portfolioHandler.addProject())
			admin.Post("/portfolios/{portfolioID}/projects/move", handlers.portfolioHandler.moveProject())
			admin.Delete("/portfolios/{portfolioID}/projects/{projectID}", handlers.portfolioHandler.removeProject())

			admin.Get("/messages", handlers.messageHandler.list())
			admin.Post("/messages/{messageID}/archive", handlers.messageHandler.archive())

			admin.Get("/settings", handlers.settingsHandler.get())
			admin.Put("/settings", handlers.settingsHandler.update())

			admin.Post("/uploads", handlers.uploadHandler.upload())
		})
	})
}
