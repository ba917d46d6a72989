// Package config loads CLI configuration from file, environment, and flags.
package config

// Default configuration values.
const (
	DefaultDataDir = "data"
	DefaultGeoJSON = "data/india_state.geojson"
	DefaultPort    = 8765
)

// Config holds all CLI configuration options.
type Config struct {
	// DataDir is the directory holding the cleaned NCRB CSV exports.
	DataDir string `koanf:"data_dir"`
	// GeoJSONPath points at the India state boundary file.
	GeoJSONPath string `koanf:"geojson"`
	// Port is the dashboard server port.
	Port int `koanf:"port"`
	// Watch reloads datasets when files in DataDir change.
	Watch bool `koanf:"watch"`
	// AutoOpen opens the browser when the server starts.
	AutoOpen bool `koanf:"auto_open"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
}
