// Package stats implements the aggregation pipeline: per-state
// summaries, drilldown breakdowns, and KPI roll-ups over the loaded
// crime records. Every function is pure; the UI recomputes from scratch
// on each interaction.
package stats

import (
	"sort"

	"github.com/ShlokRathi29/India-crime-analysis/internal/dataset"
)

// Filter restricts which records contribute to an aggregation. Zero
// values mean no restriction on that dimension.
type Filter struct {
	YearFrom int
	YearTo   int
	Group    string
	State    string
}

// Matches reports whether a record passes the filter. Records without a
// year pass any year range, matching the source data's treatment of
// yearless tables.
func (f Filter) Matches(r dataset.CrimeRecord) bool {
	if f.YearFrom != 0 && r.Year != 0 && r.Year < f.YearFrom {
		return false
	}
	if f.YearTo != 0 && r.Year != 0 && r.Year > f.YearTo {
		return false
	}
	if f.Group != "" && r.Group != f.Group {
		return false
	}
	if f.State != "" && r.State != f.State {
		return false
	}
	return true
}

// StateSummary is the per-state aggregate behind the choropleth.
// RecoveryRate is the fraction of crimes with a recovery, in [0, 1].
type StateSummary struct {
	State          string
	TotalCrimes    float64
	TotalRecovered float64
	LossValue      float64
	RecoveryRate   float64
}

// Aggregate produces exactly one StateSummary per canonical state, in
// the order given. States with no matching records get an explicit
// zero-valued summary, so the map always covers the full state list.
// Records whose state is not in the canonical list are dropped from the
// join (names must match exactly).
func Aggregate(records []dataset.CrimeRecord, f Filter, states []string) []StateSummary {
	type acc struct {
		crimes    float64
		recovered float64
		loss      float64
	}

	byState := make(map[string]*acc)
	for _, r := range records {
		if !f.Matches(r) {
			continue
		}
		a := byState[r.State]
		if a == nil {
			a = &acc{}
			byState[r.State] = a
		}
		a.crimes += r.Crimes
		a.recovered += r.Recovered
		a.loss += r.LossValue
	}

	summaries := make([]StateSummary, 0, len(states))
	for _, state := range states {
		s := StateSummary{State: state}
		if a, ok := byState[state]; ok {
			s.TotalCrimes = a.crimes
			s.TotalRecovered = a.recovered
			s.LossValue = a.loss
			if a.crimes > 0 {
				s.RecoveryRate = a.recovered / a.crimes
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// GroupSlice is one bar of a sub-group breakdown.
type GroupSlice struct {
	Name        string
	TotalCrimes float64
}

// SubGroupBreakdown sums crimes per sub-group for the filtered records
// and returns the top limit slices by total, descending. Ties keep
// first-seen order. A limit of 0 returns everything.
func SubGroupBreakdown(records []dataset.CrimeRecord, f Filter, limit int) []GroupSlice {
	totals := make(map[string]float64)
	var order []string
	for _, r := range records {
		if !f.Matches(r) {
			continue
		}
		if _, ok := totals[r.SubGroup]; !ok {
			order = append(order, r.SubGroup)
		}
		totals[r.SubGroup] += r.Crimes
	}

	slices := make([]GroupSlice, 0, len(order))
	for _, name := range order {
		slices = append(slices, GroupSlice{Name: name, TotalCrimes: totals[name]})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].TotalCrimes > slices[j].TotalCrimes
	})
	if limit > 0 && len(slices) > limit {
		slices = slices[:limit]
	}
	return slices
}

// YearPoint is one point of a year-wise trend line.
type YearPoint struct {
	Year        int
	TotalCrimes float64
}

// YearTrend sums crimes per year for the filtered records, sorted by
// year ascending. Records without a year are excluded.
func YearTrend(records []dataset.CrimeRecord, f Filter) []YearPoint {
	totals := make(map[int]float64)
	for _, r := range records {
		if r.Year == 0 || !f.Matches(r) {
			continue
		}
		totals[r.Year] += r.Crimes
	}

	points := make([]YearPoint, 0, len(totals))
	for year, total := range totals {
		points = append(points, YearPoint{Year: year, TotalCrimes: total})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}
