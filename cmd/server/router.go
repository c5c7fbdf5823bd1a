package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stridehq/stride-api/internal/api"
	apiMiddleware "github.com/stridehq/stride-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.passwordHasher)
	activityHandler := api.NewActivityHandler(app.activityService, app.statsService)
	motivationHandler := api.NewMotivationHandler(
		app.generator,
		app.statsService,
		app.config.Motivation.Enabled,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Activity endpoints
			r.Post("/activities", activityHandler.CreateActivity)
			r.Get("/activities", activityHandler.ListActivities)

			// Stats endpoint
			r.Get("/stats/monthly", activityHandler.GetMonthlyStats)

			// Motivation endpoints
			r.Get("/motivation", motivationHandler.GetMotivation)
			r.Delete("/motivation/cache", motivationHandler.ClearCache)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
