package events

// RouteMetrics holds the §4.8 per-route metric set, all fractions in
// [0,1]. Percentage conversion happens only once, via
// model.ScalePercentages at the end of pipeline.Run, never here.
type RouteMetrics struct {
	Bunches        int
	Gaps           int
	Intervals      int
	TotalScheduled int
	OnTimePct      float64
	BunchedPct     float64
	GappedPct      float64
	Coverage       float64
	Health         float64
}

// ComputeMetrics derives the full §4.8 metric set for one route from
// its bunch/gap counts, its total observed intervals, and its on-time
// tally. The zero-intervals/zero-scheduled guards below only keep this
// function total; the caller (internal/pipeline) is responsible for
// recognizing those as the §7 numerical degeneracies they are and
// skipping the route's report entirely rather than calling this with
// either count at zero.
func ComputeMetrics(bunches, gaps, intervals int, onTime OnTimeResult) RouteMetrics {
	m := RouteMetrics{
		Bunches:        bunches,
		Gaps:           gaps,
		Intervals:      intervals,
		TotalScheduled: onTime.TotalScheduled,
		OnTimePct:      onTime.Pct(),
	}
	if intervals > 0 {
		m.BunchedPct = float64(bunches) / float64(intervals)
		m.GappedPct = float64(gaps) / float64(intervals)
	}
	if m.TotalScheduled > 0 {
		m.Coverage = (float64(m.TotalScheduled)*m.OnTimePct + float64(bunches)) / float64(m.TotalScheduled)
	}
	m.Health = calculateHealth(m.BunchedPct, m.GappedPct, m.OnTimePct)
	return m
}

// calculateHealth averages the three service-quality signals. Coverage
// deliberately does not feed into health: a route can have perfect
// coverage from bunched buses alone, which is not good service.
func calculateHealth(bunchedPct, gappedPct, onTimePct float64) float64 {
	return ((1 - bunchedPct) + (1 - gappedPct) + onTimePct) / 3
}
