// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
	"github.com/ShlokRathi29/India-crime-analysis/internal/testutil"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/notifier"
)

// TestDataset is a helper to create test datasets with minimal boilerplate.
type TestDataset struct {
	Name string
	File string
	CSV  string
}

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Catalog      *dataset.Catalog
	Geo          *geo.Reference
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	DataDir string
}

// boundaryDoc is a minimal three-state India boundary document. The
// names match the canonical forms the loader produces.
const boundaryDoc = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"NAME_1": "Kerala"},
     "geometry": {"type": "Polygon", "coordinates": [[[76, 10], [77, 10], [77, 11], [76, 10]]]}},
    {"type": "Feature", "properties": {"NAME_1": "Maharashtra"},
     "geometry": {"type": "Polygon", "coordinates": [[[73, 18], [76, 18], [76, 20], [73, 18]]]}},
    {"type": "Feature", "properties": {"NAME_1": "Delhi"},
     "geometry": {"type": "Polygon", "coordinates": [[[77, 28.5], [77.3, 28.5], [77.3, 28.8], [77, 28.5]]]}}
  ]
}`

// DefaultTestDatasets returns a property-crime dataset and a generic
// count dataset covering the fixture's three states.
func DefaultTestDatasets() []TestDataset {
	return []TestDataset{
		{
			Name: "Property Crime",
			File: "property_crime_cleaned.csv",
			CSV: `Area_Name,Year,Group_Name,Sub_Group_Name,Cases_Property_Stolen,Cases_Property_Recovered,Value_of_Property_Stolen,Value_of_Property_Recovered
Maharashtra,2010,Burglary,Residential,100,80,5000,4000
Maharashtra,2011,Burglary,Residential,120,60,6000,2000
Kerala,2010,Robbery,Highway,50,10,1000,200
Delhi,2011,Robbery,Highway,80,20,2000,500
`,
		},
		{
			Name: "Murders",
			File: "murder_cleaned.csv",
			CSV: `Area_Name,Year,Group_Name,Sub_Group_Name,Total_Cases
Maharashtra,2012,Murder,Overall,30
Kerala,2012,Murder,Overall,12
`,
		},
	}
}

// SetupTestFixture creates a complete fixture with a catalog loaded from
// temp CSV files, a parsed boundary reference, a notifier, and a cookie
// session store.
func SetupTestFixture(t *testing.T, datasets ...TestDataset) *TestFixture {
	t.Helper()

	if len(datasets) == 0 {
		datasets = DefaultTestDatasets()
	}

	logger := testutil.NewTestLogger(t)
	dataDir := t.TempDir()

	sources := make(map[string]string, len(datasets))
	for _, d := range datasets {
		sources[d.Name] = d.File
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, d.File), []byte(d.CSV), 0600))
	}

	catalog, err := dataset.LoadCatalog(dataDir, sources, logger)
	require.NoError(t, err)

	geoRef, err := geo.Parse([]byte(boundaryDoc))
	require.NoError(t, err)

	return &TestFixture{
		Catalog:      catalog,
		Geo:          geoRef,
		Notifier:     notifier.New(),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		DataDir:      dataDir,
	}
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	_ = cancel // the timeout cancels the context in tests
	return r.WithContext(ctx)
}
