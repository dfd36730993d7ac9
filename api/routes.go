package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public, authenticated and admin routes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints
		r.Get("/health", handlers.authHandler.health())
		r.Get("/auth/login", handlers.authHandler.loginRedirect())
		r.Get("/auth/callback", handlers.authHandler.callback())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/me", handlers.authHandler.me())

			// Initiative endpoints
			r.Get("/initiatives", handlers.initiativeHandler.getInitiatives())
			r.Post("/initiatives/refresh", handlers.initiativeHandler.refreshInitiatives())
			r.Post("/initiatives", handlers.initiativeHandler.createInitiative())
			r.Put("/initiatives/{name}", handlers.initiativeHandler.updateInitiative())
			r.Delete("/initiatives/{name}", handlers.initiativeHandler.deleteInitiative())
			r.Get("/initiatives/{name}/databases", handlers.initiativeHandler.getInitiativeDatabases())

			r.Get("/databases", handlers.initiativeHandler.getDatabaseNames())
			r.Post("/activity", handlers.initiativeHandler.recordActivity())
			r.Post("/reconcile", handlers.initiativeHandler.reconcile())

			// Admin endpoints
			r.Route("/admin", func(r chi.Router) {
				r.Use(authMiddleware.requireAdmin)

				r.Get("/overview", handlers.adminHandler.getOverview())
				r.Post("/admins", handlers.adminHandler.addAdmin())
				r.Delete("/admins/{email}", handlers.adminHandler.removeAdmin())
			})
		})
	})
}
