package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
	"github.com/ShlokRathi29/India-crime-analysis/internal/geo"
	"github.com/ShlokRathi29/India-crime-analysis/internal/stats"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/notifier"
	"github.com/ShlokRathi29/India-crime-analysis/internal/ui/views"
)

const (
	sessionName = "crimedash"
	topStatesN  = 10
	topRecoverN = 15
	subGroupsN  = 15
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	catalog      *dataset.Catalog
	geo          *geo.Reference
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(catalog *dataset.Catalog, geoRef *geo.Reference, sessionStore sessions.Store, notify *notifier.Notifier, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		catalog:      catalog,
		geo:          geoRef,
		sessionStore: sessionStore,
		notifier:     notify,
		logger:       logger,
	}
}

// Page renders the dashboard with full server-side content: controls,
// KPI cards, and the initial chart payload.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	filters := h.resolveFilters(h.sessionSignals(r))
	data := h.buildPageData(filters)

	if err := views.DashboardPage(data).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Refresh recomputes all aggregates for the submitted filter signals
// and patches the controls, KPI cards, map title, and chart payload.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	// Read signals before creating the SSE stream (it consumes the request).
	var signals Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filters := h.resolveFilters(signals)
	h.saveSession(w, r, filters)

	sse := datastar.NewSSE(w, r)
	if err := h.sendDashboardView(sse, filters); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Updates is the long-lived SSE endpoint. It pushes a fresh view when
// the data directory watcher reloads the catalog; there is no initial
// send because Page renders full content.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			filters := h.resolveFilters(h.sessionSignals(r))
			if err := h.sendDashboardView(sse, filters); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// GeoJSON serves the boundary document the frontend registers as the
// ECharts map.
func (h *Handlers) GeoJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(h.geo.Raw())
}

// sendDashboardView patches every reactive fragment plus the chart
// payload for the given filter selection.
func (h *Handlers) sendDashboardView(sse *datastar.ServerSentEventGenerator, filters views.FilterState) error {
	data := h.buildPageData(filters)

	if err := sse.PatchElementTempl(views.FilterControls(data.Filters, data.Options)); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(views.KPICards(data.KPI)); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(views.MapTitle(data.Filters.Dataset)); err != nil {
		return err
	}
	return sse.ExecuteScript("window.dashboard && window.dashboard.update(" + data.ChartJSON + ")")
}

// buildPageData runs the full aggregation pipeline for one selection.
func (h *Handlers) buildPageData(filters views.FilterState) views.PageData {
	d, ok := h.catalog.Get(filters.Dataset)
	if !ok {
		// Catalog reload can retire a dataset out from under a session.
		filters = h.resolveFilters(Signals{})
		d, _ = h.catalog.Get(filters.Dataset)
	}

	kpi, payload := h.computeCharts(d, filters)
	raw, _ := json.Marshal(payload)

	return views.PageData{
		Title:   filters.Dataset,
		Filters: filters,
		Options: views.FilterOptions{
			Datasets: h.catalog.Names(),
			Years:    d.Years(),
			Groups:   d.Groups(),
			States:   h.geo.StateNames(),
		},
		KPI:       kpi,
		ChartJSON: string(raw),
	}
}

// computeCharts aggregates the dataset under the selection and shapes
// the result for the KPI cards and every chart.
func (h *Handlers) computeCharts(d *dataset.Dataset, filters views.FilterState) (stats.KPI, ChartPayload) {
	base := stats.Filter{
		YearFrom: filters.YearFrom,
		YearTo:   filters.YearTo,
	}
	if filters.Group != views.AllGroups {
		base.Group = filters.Group
	}

	summaries := stats.Aggregate(d.Records, base, h.geo.StateNames())
	kpi := stats.ComputeKPI(summaries)

	payload := ChartPayload{
		Map:        make([]MapDatum, 0, len(summaries)),
		DrillTitle: filters.State,
	}
	for _, s := range summaries {
		payload.Map = append(payload.Map, MapDatum{
			Name:     s.State,
			Value:    s.TotalCrimes,
			Recovery: s.RecoveryRate * 100,
			Loss:     s.LossValue,
		})
		if s.TotalCrimes > payload.MapMax {
			payload.MapMax = s.TotalCrimes
		}
	}

	for _, s := range stats.TopByCrimes(summaries, topStatesN) {
		payload.TopStates.Labels = append(payload.TopStates.Labels, s.State)
		payload.TopStates.Values = append(payload.TopStates.Values, s.TotalCrimes)
	}
	for _, s := range stats.TopByRecovery(summaries, topRecoverN) {
		payload.TopRecovery.Labels = append(payload.TopRecovery.Labels, s.State)
		payload.TopRecovery.Values = append(payload.TopRecovery.Values, s.RecoveryRate*100)
	}

	drill := base
	if filters.State != views.AllIndia {
		drill.State = filters.State
	}
	for _, g := range stats.SubGroupBreakdown(d.Records, drill, subGroupsN) {
		payload.SubGroups.Labels = append(payload.SubGroups.Labels, g.Name)
		payload.SubGroups.Values = append(payload.SubGroups.Values, g.TotalCrimes)
	}
	for _, p := range stats.YearTrend(d.Records, drill) {
		payload.Trend.Years = append(payload.Trend.Years, p.Year)
		payload.Trend.Values = append(payload.Trend.Values, p.TotalCrimes)
	}

	return kpi, payload
}

// resolveFilters normalizes raw signals against the catalog and
// boundary reference: unknown datasets fall back to the first one,
// years clamp to the dataset's range, and unknown groups/states revert
// to the unrestricted sentinels.
func (h *Handlers) resolveFilters(signals Signals) views.FilterState {
	names := h.catalog.Names()

	name := signals.Dataset
	d, ok := h.catalog.Get(name)
	if !ok && len(names) > 0 {
		name = names[0]
		d, _ = h.catalog.Get(name)
	}

	filters := views.FilterState{
		Dataset: name,
		Group:   views.AllGroups,
		State:   views.AllIndia,
	}
	if d == nil {
		return filters
	}

	years := d.Years()
	if len(years) > 0 {
		minYear, maxYear := years[0], years[len(years)-1]
		filters.YearFrom = clampYear(signals.YearFrom, minYear, maxYear, minYear)
		filters.YearTo = clampYear(signals.YearTo, minYear, maxYear, maxYear)
		if filters.YearFrom > filters.YearTo {
			filters.YearFrom, filters.YearTo = filters.YearTo, filters.YearFrom
		}
	}

	if signals.Group != "" && signals.Group != views.AllGroups {
		for _, g := range d.Groups() {
			if g == signals.Group {
				filters.Group = g
				break
			}
		}
	}
	if signals.State != "" && h.geo.Contains(signals.State) {
		filters.State = signals.State
	}
	return filters
}

func clampYear(raw string, minYear, maxYear, def int) int {
	y, err := strconv.Atoi(raw)
	if err != nil || y < minYear || y > maxYear {
		return def
	}
	return y
}

// sessionSignals restores the last-used filter selection from the
// cookie session, so a reload keeps the user's view.
func (h *Handlers) sessionSignals(r *http.Request) Signals {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return Signals{}
	}
	return Signals{
		Dataset:  sessionString(sess, "dataset"),
		YearFrom: sessionString(sess, "yearfrom"),
		YearTo:   sessionString(sess, "yearto"),
		Group:    sessionString(sess, "group"),
		State:    sessionString(sess, "state"),
	}
}

func (h *Handlers) saveSession(w http.ResponseWriter, r *http.Request, filters views.FilterState) {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return
	}
	sess.Values["dataset"] = filters.Dataset
	sess.Values["yearfrom"] = strconv.Itoa(filters.YearFrom)
	sess.Values["yearto"] = strconv.Itoa(filters.YearTo)
	sess.Values["group"] = filters.Group
	sess.Values["state"] = filters.State
	if err := sess.Save(r, w); err != nil {
		h.logger.Debug("session save failed", "error", err)
	}
}

func sessionString(sess *sessions.Session, key string) string {
	if v, ok := sess.Values[key].(string); ok {
		return v
	}
	return ""
}
