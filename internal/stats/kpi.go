package stats

import "sort"

// KPI holds the scalar headline metrics for the current filter scope.
type KPI struct {
	TotalCrimes    float64
	TotalRecovered float64
	// RecoveryRatePct is the aggregate recovery rate in percent:
	// total recovered over total crimes, not an average of per-state
	// rates. Zero when there are no crimes.
	RecoveryRatePct float64
}

// ComputeKPI rolls the state summaries up into headline numbers.
func ComputeKPI(summaries []StateSummary) KPI {
	var k KPI
	for _, s := range summaries {
		k.TotalCrimes += s.TotalCrimes
		k.TotalRecovered += s.TotalRecovered
	}
	if k.TotalCrimes > 0 {
		k.RecoveryRatePct = k.TotalRecovered / k.TotalCrimes * 100
	}
	return k
}

// TopByCrimes returns the n states with the highest crime totals,
// descending. Ties keep the input order.
func TopByCrimes(summaries []StateSummary, n int) []StateSummary {
	return topBy(summaries, n, func(s StateSummary) float64 { return s.TotalCrimes })
}

// TopByRecovery returns the n states with the highest recovery rates,
// descending. Ties keep the input order.
func TopByRecovery(summaries []StateSummary, n int) []StateSummary {
	return topBy(summaries, n, func(s StateSummary) float64 { return s.RecoveryRate })
}

func topBy(summaries []StateSummary, n int, metric func(StateSummary) float64) []StateSummary {
	ranked := make([]StateSummary, len(summaries))
	copy(ranked, summaries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(ranked[i]) > metric(ranked[j])
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
