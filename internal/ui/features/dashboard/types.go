package dashboard

// Signals mirrors the datastar signals bound to the filter controls.
// Every value arrives as a string; the handlers normalize them.
type Signals struct {
	Dataset  string `json:"dataset"`
	YearFrom string `json:"yearfrom"`
	YearTo   string `json:"yearto"`
	Group    string `json:"group"`
	State    string `json:"state"`
}

// ChartPayload is everything the frontend charts need for one filter
// selection. It is embedded in the initial page and re-sent on every
// filter change.
type ChartPayload struct {
	Map         []MapDatum  `json:"map"`
	MapMax      float64     `json:"mapMax"`
	TopStates   BarSeries   `json:"topStates"`
	TopRecovery BarSeries   `json:"topRecovery"`
	SubGroups   BarSeries   `json:"subGroups"`
	Trend       TrendSeries `json:"trend"`
	DrillTitle  string      `json:"drillTitle"`
}

// MapDatum is one choropleth region, keyed by canonical state name.
// Zero-valued states are included so the whole map always shades.
type MapDatum struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Recovery float64 `json:"recovery"` // percent
	Loss     float64 `json:"loss"`
}

// BarSeries is a label/value pairing for a bar chart.
type BarSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// TrendSeries is the year-wise crime trend line.
type TrendSeries struct {
	Years  []int     `json:"years"`
	Values []float64 `json:"values"`
}
