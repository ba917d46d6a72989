// Package commands implements the crimedash subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/ShlokRathi29/India-crime-analysis/internal/cli/config"
	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
)

// getConfig returns the loaded configuration, falling back to defaults
// when a command runs without the root's PersistentPreRunE (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		DataDir:     config.DefaultDataDir,
		GeoJSONPath: config.DefaultGeoJSON,
		Port:        config.DefaultPort,
		Watch:       true,
	}
}

// loadData loads the dataset catalog and boundary reference. Both are
// startup requirements; either failing aborts the command.
func loadData(cfg *config.Config, logger *slog.Logger) (*dataset.Catalog, *geo.Reference, error) {
	catalog, err := dataset.LoadCatalog(cfg.DataDir, dataset.DefaultSources, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load datasets from %s: %w", cfg.DataDir, err)
	}

	geoRef, err := geo.Load(cfg.GeoJSONPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load boundary file %s: %w", cfg.GeoJSONPath, err)
	}

	return catalog, geoRef, nil
}

// openBrowser opens the URL in the default browser, best effort.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "could not open browser: %v\n", err)
	}
}
