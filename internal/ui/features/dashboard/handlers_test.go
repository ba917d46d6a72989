package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/features"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/views"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)

	handlers := NewHandlers(
		fixture.Catalog,
		fixture.Geo,
		fixture.SessionStore,
		fixture.Notifier,
		nil,
	)

	return handlers, fixture
}

// refreshRequest builds a GET request carrying datastar signals in the
// query string, the way the browser submits filter changes.
func refreshRequest(t *testing.T, signals string) *http.Request {
	t.Helper()
	target := "/dashboard/refresh?datastar=" + url.QueryEscape(signals)
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Page(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "India Crime Pattern")
	assert.Contains(t, body, `id="filter-controls"`)
	assert.Contains(t, body, `id="kpi-cards"`)
	assert.Contains(t, body, `id="map-title"`)
	assert.Contains(t, body, `id="map-chart"`)
	assert.Contains(t, body, "@get('/dashboard/updates')")
	// Initial chart payload is embedded for the first paint.
	assert.Contains(t, body, "window.__charts")
}

func TestPage_DefaultSelection(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Page(rec, req)

	body := rec.Body.String()
	// No session: first dataset in sorted order is selected, with the
	// unrestricted group and state sentinels.
	assert.Contains(t, body, `<option value="Murders" selected>`)
	assert.Contains(t, body, `<option value="`+views.AllGroups+`" selected>`)
	assert.Contains(t, body, `<option value="All India" selected>`)
}

func TestRefresh(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := refreshRequest(t, `{"dataset":"Property Crime","yearfrom":"2010","yearto":"2011","group":"All","state":"All India"}`)
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// All three fragments plus the chart update script go out over SSE.
	assert.Contains(t, body, `id="filter-controls"`)
	assert.Contains(t, body, `id="kpi-cards"`)
	assert.Contains(t, body, `id="map-title"`)
	assert.Contains(t, body, "window.dashboard")
	assert.Contains(t, body, `<option value="Property Crime" selected>`)

	// 100+120+50+80 crimes across the fixture's property dataset.
	assert.Contains(t, body, "350")
}

func TestRefresh_PersistsSelectionInSession(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := refreshRequest(t, `{"dataset":"Property Crime","yearfrom":"2010","yearto":"2011"}`)
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "refresh should set the session cookie")

	// A fresh page load with the cookie restores the selection.
	pageReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		pageReq.AddCookie(c)
	}
	pageRec := httptest.NewRecorder()

	h.Page(pageRec, pageReq)

	assert.Contains(t, pageRec.Body.String(), `<option value="Property Crime" selected>`)
}

func TestRefresh_BadSignals(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := refreshRequest(t, "{not json")
	rec := httptest.NewRecorder()

	h.Refresh(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdates_SendsViewOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast()

	<-done

	body := rec.Body.String()
	eventCount := strings.Count(body, "event:")
	assert.GreaterOrEqual(t, eventCount, 1, "should have at least 1 SSE event from broadcast")
	assert.Contains(t, body, `id="kpi-cards"`, "update should re-render the dashboard")
}

func TestUpdates_NoInitialState(t *testing.T) {
	// Page renders full content, so the SSE stream stays silent until a
	// reload broadcast arrives.
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/updates", nil)
	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.Updates(rec, req)

	eventCount := strings.Count(rec.Body.String(), "event:")
	assert.Equal(t, 0, eventCount, "should have no SSE events without broadcast")
}

func TestGeoJSON(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/geo/india.json", nil)
	rec := httptest.NewRecorder()

	h.GeoJSON(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, fixture.Geo.Raw(), rec.Body.Bytes())
}

func TestResolveFilters(t *testing.T) {
	h, _ := setupTestHandlers(t)

	tests := []struct {
		name    string
		signals Signals
		want    views.FilterState
	}{
		{
			name:    "empty signals fall back to first dataset and full range",
			signals: Signals{},
			want: views.FilterState{
				Dataset:  "Murders",
				YearFrom: 2012,
				YearTo:   2012,
				Group:    views.AllGroups,
				State:    views.AllIndia,
			},
		},
		{
			name: "unknown dataset falls back",
			signals: Signals{
				Dataset: "No Such Dataset",
			},
			want: views.FilterState{
				Dataset:  "Murders",
				YearFrom: 2012,
				YearTo:   2012,
				Group:    views.AllGroups,
				State:    views.AllIndia,
			},
		},
		{
			name: "years clamp to the dataset range",
			signals: Signals{
				Dataset:  "Property Crime",
				YearFrom: "1990",
				YearTo:   "2050",
			},
			want: views.FilterState{
				Dataset:  "Property Crime",
				YearFrom: 2010,
				YearTo:   2011,
				Group:    views.AllGroups,
				State:    views.AllIndia,
			},
		},
		{
			name: "inverted year range is swapped",
			signals: Signals{
				Dataset:  "Property Crime",
				YearFrom: "2011",
				YearTo:   "2010",
			},
			want: views.FilterState{
				Dataset:  "Property Crime",
				YearFrom: 2010,
				YearTo:   2011,
				Group:    views.AllGroups,
				State:    views.AllIndia,
			},
		},
		{
			name: "valid group and state are kept",
			signals: Signals{
				Dataset:  "Property Crime",
				YearFrom: "2010",
				YearTo:   "2011",
				Group:    "Burglary",
				State:    "Kerala",
			},
			want: views.FilterState{
				Dataset:  "Property Crime",
				YearFrom: 2010,
				YearTo:   2011,
				Group:    "Burglary",
				State:    "Kerala",
			},
		},
		{
			name: "unknown group and state revert to sentinels",
			signals: Signals{
				Dataset: "Property Crime",
				Group:   "Cybercrime",
				State:   "Atlantis",
			},
			want: views.FilterState{
				Dataset:  "Property Crime",
				YearFrom: 2010,
				YearTo:   2011,
				Group:    views.AllGroups,
				State:    views.AllIndia,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.resolveFilters(tt.signals))
		})
	}
}
