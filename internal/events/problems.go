// Package events computes everything the event/metric stage of the
// pipeline needs from reconstructed stop-times and the schedule:
// bunch/gap detection (§4.6), on-time classification (§4.7), the
// summary metrics (§4.8), the time-series (§4.9), and the bunch
// GeoJSON feature set (§4.10). Grounded on the Python original's
// get_bunches_gaps / calculate_ontime / bunch_gap_graph /
// create_simple_geojson / calculate_health.
package events

import (
	"sort"
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

// Thresholds holds the bunch/gap duration cutoffs derived from a
// route's common scheduled interval (§4.6).
type Thresholds struct {
	Bunch time.Duration
	Gap   time.Duration
}

// ComputeThresholds derives bunch/gap thresholds from a schedule's
// common interval and the configurable multipliers (default 0.2/1.5).
func ComputeThresholds(commonIntervalMinutes, bunchMultiplier, gapMultiplier float64) Thresholds {
	base := time.Duration(commonIntervalMinutes * float64(time.Minute))
	return Thresholds{
		Bunch: time.Duration(float64(base) * bunchMultiplier),
		Gap:   time.Duration(float64(base) * gapMultiplier),
	}
}

// DetectProblems walks each stop's ascending arrival list and emits
// bunch/gap events in stop-major order (not globally time-sorted),
// exactly per §4.6. Stop iteration order is the caller-supplied
// `stops` slice so results are deterministic across runs.
func DetectProblems(st model.StopTimes, stops []string, th Thresholds) []model.Problem {
	var out []model.Problem
	for _, stop := range stops {
		arrivals := st[stop]
		if len(arrivals) < 2 {
			continue
		}
		for i := 1; i < len(arrivals); i++ {
			delta := arrivals[i].Sub(arrivals[i-1])
			switch {
			case delta <= th.Bunch:
				out = append(out, model.Problem{Kind: model.ProblemBunch, Time: arrivals[i-1], Duration: delta, Stop: stop})
			case delta >= th.Gap:
				out = append(out, model.Problem{Kind: model.ProblemGap, Time: arrivals[i-1], Duration: delta, Stop: stop})
			}
		}
	}
	return out
}

// SortedStopKeys returns the keys of st in sorted order, a convenience
// for callers that want a deterministic stop iteration order without
// threading the route's own stop list through.
func SortedStopKeys(st model.StopTimes) []string {
	keys := make([]string, 0, len(st))
	for k := range st {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
