// Package dashboard provides the choropleth/drilldown dashboard feature.
package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	catalog *dataset.Catalog,
	geoRef *geo.Reference,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(catalog, geoRef, sessionStore, notify, logger)

	router.Get("/", handlers.Page)
	router.Get("/dashboard/refresh", handlers.Refresh)
	router.Get("/dashboard/updates", handlers.Updates)
	router.Get("/geo/india.json", handlers.GeoJSON)

	return nil
}
