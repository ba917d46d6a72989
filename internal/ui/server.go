// Package ui provides the web dashboard server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/notifier"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/router"
)

// Server is the main dashboard server.
type Server struct {
	catalog      *dataset.Catalog
	geo          *geo.Reference
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	dataDir      string
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the dashboard server.
type Config struct {
	Catalog       *dataset.Catalog
	Geo           *geo.Reference
	Port          int
	Watch         bool
	DataDir       string
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new dashboard server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		catalog:      cfg.Catalog,
		geo:          cfg.Geo,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		dataDir:      cfg.DataDir,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Serve starts the dashboard server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting dashboard server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.catalog, s.geo, s.sessionStore, s.notifier, s.logger); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchData(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down dashboard server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchData watches the data directory for CSV changes, reloads the
// catalog, and pushes the new state to all connected pages.
func (s *Server) watchData(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.dataDir); err != nil {
		s.logger.Error("failed to watch data directory", "error", err)
		// Continue without watching rather than taking the server down.
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".csv" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("data file changed, reloading catalog", "file", event.Name)

				if err := s.catalog.Reload(); err != nil {
					s.logger.Error("catalog reload failed", "error", err)
					return
				}
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
