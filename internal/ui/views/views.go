// Package views renders the dashboard HTML. Components are plain templ
// components so handlers can render them directly or patch them over
// SSE with datastar.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/ShlokRathi29/India-crime-analysis/internal/stats"
)

// Sentinel option values used by the filter controls. The handlers map
// them to unrestricted filters.
const (
	AllGroups = "All"
	AllIndia  = "All India"
)

// FilterState is the current filter selection, as shown in the controls.
type FilterState struct {
	Dataset  string
	YearFrom int
	YearTo   int
	Group    string
	State    string
}

// FilterOptions holds the choices offered by the filter controls for
// the active dataset.
type FilterOptions struct {
	Datasets []string
	Years    []int
	Groups   []string
	States   []string
}

// PageData is everything the full dashboard page needs.
type PageData struct {
	Title     string
	Filters   FilterState
	Options   FilterOptions
	KPI       stats.KPI
	ChartJSON string
}

func component(f func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return f(w)
	})
}

// DashboardPage renders the complete page: filter sidebar, KPI cards,
// and the chart containers the frontend fills in. The initial chart
// payload is embedded so the first paint needs no extra round trip.
func DashboardPage(data PageData) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder

		b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
		b.WriteString("<meta charset=\"utf-8\">\n")
		b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&b, "<title>%s - India Crime Dashboard</title>\n", templ.EscapeString(data.Title))
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/css/dashboard.css\">\n")
		b.WriteString("<script src=\"https://cdn.jsdelivr.net/npm/echarts@5.5.0/dist/echarts.min.js\"></script>\n")
		b.WriteString("<script type=\"module\" src=\"https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js\"></script>\n")
		b.WriteString("</head>\n")

		fmt.Fprintf(&b, "<body data-signals='%s' data-on-load=\"@get('/dashboard/updates')\">\n", signalsJSON(data.Filters))
		b.WriteString("<div id=\"app\">\n")

		b.WriteString("<aside id=\"sidebar\">\n<h2>Controls</h2>\n")
		writeFilterControls(&b, data.Filters, data.Options)
		b.WriteString("</aside>\n")

		b.WriteString("<main>\n<h1>India Crime Pattern &amp; Safety Analysis</h1>\n")
		writeKPICards(&b, data.KPI)
		b.WriteString("<section class=\"panel\">\n")
		writeMapTitle(&b, data.Filters.Dataset)
		b.WriteString("<div id=\"map-chart\" class=\"chart chart-map\"></div>\n</section>\n")

		b.WriteString("<section class=\"row\">\n")
		b.WriteString("<div class=\"panel\"><h3>Sub-group Breakdown (Top 15)</h3><div id=\"subgroup-chart\" class=\"chart\"></div></div>\n")
		b.WriteString("<div class=\"panel\"><h3>Year-wise Trend</h3><div id=\"trend-chart\" class=\"chart\"></div></div>\n")
		b.WriteString("</section>\n")

		b.WriteString("<section class=\"row\">\n")
		b.WriteString("<div class=\"panel\"><h3>Top 10 High Risk States</h3><div id=\"top-states-chart\" class=\"chart\"></div></div>\n")
		b.WriteString("<div class=\"panel\"><h3>Top 15 States by Recovery Rate</h3><div id=\"recovery-chart\" class=\"chart\"></div></div>\n")
		b.WriteString("</section>\n")

		b.WriteString("</main>\n</div>\n")
		fmt.Fprintf(&b, "<script>window.__charts = %s;</script>\n", data.ChartJSON)
		b.WriteString("<script src=\"/static/js/dashboard.js\"></script>\n")
		b.WriteString("</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FilterControls renders the sidebar controls fragment. Patched on every
// filter change so the year and group options track the dataset.
func FilterControls(f FilterState, o FilterOptions) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		writeFilterControls(&b, f, o)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// KPICards renders the headline metric cards fragment.
func KPICards(k stats.KPI) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		writeKPICards(&b, k)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// MapTitle renders the choropleth heading fragment.
func MapTitle(datasetName string) templ.Component {
	return component(func(w io.Writer) error {
		var b strings.Builder
		writeMapTitle(&b, datasetName)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeFilterControls(b *strings.Builder, f FilterState, o FilterOptions) {
	b.WriteString("<div id=\"filter-controls\">\n")

	writeSelect(b, "dataset", "Crime Dataset", o.Datasets, f.Dataset)

	years := make([]string, len(o.Years))
	for i, y := range o.Years {
		years[i] = strconv.Itoa(y)
	}
	writeSelect(b, "yearfrom", "Year From", years, strconv.Itoa(f.YearFrom))
	writeSelect(b, "yearto", "Year To", years, strconv.Itoa(f.YearTo))

	writeSelect(b, "group", "Crime Group", append([]string{AllGroups}, o.Groups...), f.Group)
	writeSelect(b, "state", "Drilldown State/UT", append([]string{AllIndia}, o.States...), f.State)

	b.WriteString("</div>\n")
}

func writeSelect(b *strings.Builder, signal, label string, options []string, selected string) {
	fmt.Fprintf(b, "<label class=\"control\">%s\n", templ.EscapeString(label))
	fmt.Fprintf(b, "<select data-bind-%s data-on-change=\"@get('/dashboard/refresh')\">\n", signal)
	for _, opt := range options {
		escaped := templ.EscapeString(opt)
		if opt == selected {
			fmt.Fprintf(b, "<option value=\"%s\" selected>%s</option>\n", escaped, escaped)
		} else {
			fmt.Fprintf(b, "<option value=\"%s\">%s</option>\n", escaped, escaped)
		}
	}
	b.WriteString("</select>\n</label>\n")
}

func writeKPICards(b *strings.Builder, k stats.KPI) {
	b.WriteString("<section id=\"kpi-cards\">\n")
	writeKPICard(b, "Total Crimes", humanize.Commaf(k.TotalCrimes))
	writeKPICard(b, "Total Recovered", humanize.Commaf(k.TotalRecovered))
	writeKPICard(b, "Recovery Rate", fmt.Sprintf("%.2f%%", k.RecoveryRatePct))
	b.WriteString("</section>\n")
}

func writeKPICard(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<div class=\"kpi-card\"><span class=\"kpi-label\">%s</span><span class=\"kpi-value\">%s</span></div>\n",
		templ.EscapeString(label), templ.EscapeString(value))
}

func writeMapTitle(b *strings.Builder, datasetName string) {
	fmt.Fprintf(b, "<h2 id=\"map-title\">India States Map - %s (Shaded by Total Crimes)</h2>\n",
		templ.EscapeString(datasetName))
}

// signalsJSON encodes the filter selection as the page's initial
// datastar signals. Values are strings to match the select controls.
func signalsJSON(f FilterState) string {
	payload := map[string]string{
		"dataset":  f.Dataset,
		"yearfrom": strconv.Itoa(f.YearFrom),
		"yearto":   strconv.Itoa(f.YearTo),
		"group":    f.Group,
		"state":    f.State,
	}
	raw, _ := json.Marshal(payload)
	// Single quotes delimit the attribute, so escape any in the JSON.
	return strings.ReplaceAll(string(raw), "'", "&#39;")
}
