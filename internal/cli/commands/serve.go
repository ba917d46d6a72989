package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ShlokRathi29/India-crime-analysis/internal/cli/config"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long: `Start a local web server providing the interactive crime dashboard.

The dashboard provides:
- Choropleth map of Indian states shaded by total crimes
- Drilldown to sub-group breakdown and year-wise trend per state
- Top-state rankings by crimes and by recovery rate
- Headline KPIs for the current filter selection`,
		Example: `  # Start on the default port
  crimedash serve

  # Start on a custom port without opening the browser
  crimedash serve --port 3000 --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload datasets when CSV files change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	// CLI flags override config file
	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	catalog, geoRef, err := loadData(cfg, logger)
	if err != nil {
		return err
	}

	server := ui.NewServer(ui.Config{
		Catalog:       catalog,
		Geo:           geoRef,
		Port:          port,
		Watch:         watch,
		DataDir:       cfg.DataDir,
		SessionSecret: generateSessionSecret(),
		Logger:        logger,
	})

	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}

// generateSessionSecret returns a random per-process cookie secret.
// Sessions only hold filter selections, so invalidating them on restart
// is fine.
func generateSessionSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "crimedash-fallback-session-secret"
	}
	return hex.EncodeToString(buf)
}
