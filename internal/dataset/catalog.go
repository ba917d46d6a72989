package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
)

// DefaultSources maps dataset display names to the cleaned NCRB CSV
// exports shipped in the data directory.
var DefaultSources = map[string]string{
	"Property Crime":           "property_crime_cleaned.csv",
	"Murders":                  "murder_cleaned.csv",
	"Kidnapping & Abduction":   "kidnapping_cleaned.csv",
	"Crime Against Women":      "women_crimes_cleaned.csv",
	"Frauds":                   "frauds_cleaned.csv",
	"Auto Theft":               "auto_theft_cleaned.csv",
	"Complaint against police": "police_complaints_cleaned.csv",
	"Trial of violent crimes":  "trials_cleaned.csv",
}

// Catalog holds every loaded dataset, keyed by display name. Datasets
// are loaded once at startup and only replaced wholesale by Reload, so
// readers never see a partially loaded set.
type Catalog struct {
	dir     string
	sources map[string]string
	logger  *slog.Logger

	mu   sync.RWMutex
	sets map[string]*Dataset
}

// LoadCatalog reads every source CSV under dir. A missing or unusable
// file is a startup error.
func LoadCatalog(dir string, sources map[string]string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(sources) == 0 {
		sources = DefaultSources
	}

	c := &Catalog{
		dir:     dir,
		sources: sources,
		logger:  logger,
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads every source file and swaps the dataset map in one
// step. Used by the data-directory watcher.
func (c *Catalog) Reload() error {
	sets := make(map[string]*Dataset, len(c.sources))
	for name, file := range c.sources {
		path := filepath.Join(c.dir, file)
		records, err := Load(path)
		if err != nil {
			return fmt.Errorf("load dataset %q: %w", name, err)
		}
		sets[name] = &Dataset{Name: name, File: file, Records: records}
		c.logger.Debug("loaded dataset", "name", name, "records", len(records))
	}

	c.mu.Lock()
	c.sets = sets
	c.mu.Unlock()
	return nil
}

// Get returns the dataset with the given display name.
func (c *Catalog) Get(name string) (*Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.sets[name]
	return d, ok
}

// Names returns all dataset display names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
