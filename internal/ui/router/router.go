// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/features/dashboard"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/notifier"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/resources"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	catalog *dataset.Catalog,
	geoRef *geo.Reference,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	return dashboard.SetupRoutes(router, catalog, geoRef, sessionStore, notify, logger)
}
