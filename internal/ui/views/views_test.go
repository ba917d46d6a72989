package views

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShlokRathi29/India-crime-analysis/internal/stats"
)

func TestKPICards(t *testing.T) {
	var b strings.Builder
	err := KPICards(stats.KPI{
		TotalCrimes:     1234567,
		TotalRecovered:  54321,
		RecoveryRatePct: 4.4,
	}).Render(context.Background(), &b)
	require.NoError(t, err)
	out := b.String()

	assert.Contains(t, out, `id="kpi-cards"`)
	assert.Contains(t, out, "1,234,567")
	assert.Contains(t, out, "54,321")
	assert.Contains(t, out, "4.40%")
}

func TestFilterControls(t *testing.T) {
	f := FilterState{
		Dataset:  "Murders",
		YearFrom: 2005,
		YearTo:   2010,
		Group:    AllGroups,
		State:    "Kerala",
	}
	o := FilterOptions{
		Datasets: []string{"Murders", "Property Crime"},
		Years:    []int{2005, 2006, 2010},
		Groups:   []string{"Murder"},
		States:   []string{"Delhi", "Kerala"},
	}

	var b strings.Builder
	require.NoError(t, FilterControls(f, o).Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, `id="filter-controls"`)
	assert.Contains(t, out, `<option value="Murders" selected>`)
	assert.Contains(t, out, `<option value="2005" selected>`)
	assert.Contains(t, out, `<option value="Kerala" selected>`)
	// The sentinel options lead their selects.
	assert.Contains(t, out, `<option value="`+AllGroups+`">`)
	assert.Contains(t, out, `<option value="All India">`)
	// Every control triggers a refresh.
	assert.Equal(t, 5, strings.Count(out, "@get('/dashboard/refresh')"))
}

func TestMapTitle_EscapesDatasetName(t *testing.T) {
	var b strings.Builder
	require.NoError(t, MapTitle(`<script>"x"`).Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, `id="map-title"`)
	assert.NotContains(t, out, "<script>")
}

func TestDashboardPage(t *testing.T) {
	data := PageData{
		Title: "Murders",
		Filters: FilterState{
			Dataset: "Murders", YearFrom: 2005, YearTo: 2010,
			Group: AllGroups, State: AllIndia,
		},
		Options: FilterOptions{
			Datasets: []string{"Murders"},
			Years:    []int{2005, 2010},
			Groups:   []string{"Murder"},
			States:   []string{"Kerala"},
		},
		ChartJSON: `{"map":[]}`,
	}

	var b strings.Builder
	require.NoError(t, DashboardPage(data).Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, "<title>Murders - India Crime Dashboard</title>")
	assert.Contains(t, out, "data-signals=")
	assert.Contains(t, out, "@get('/dashboard/updates')")
	assert.Contains(t, out, `window.__charts = {"map":[]};`)
	assert.Contains(t, out, "/static/js/dashboard.js")
	assert.Contains(t, out, "/static/css/dashboard.css")
}

func TestSignalsJSON(t *testing.T) {
	out := signalsJSON(FilterState{
		Dataset:  "Trial of violent crimes",
		YearFrom: 2001,
		YearTo:   2010,
		Group:    AllGroups,
		State:    AllIndia,
	})

	assert.Contains(t, out, `"dataset":"Trial of violent crimes"`)
	assert.Contains(t, out, `"yearfrom":"2001"`)
	assert.Contains(t, out, `"state":"All India"`)
	assert.NotContains(t, out, "'", "single quotes would break the attribute")
}
