// Package aggregate implements the §4.11 aggregator: given the
// completed per-route reports for one day, it produces one additional
// report per route type plus a system-wide "All" report, and
// rebuilds every report's route_table so each mode (and "All") shows
// its own summary row alongside its constituent routes. Grounded on
// the Python original's calculate_aggregate_report.
package aggregate

import (
	"github.com/sfmta/transitreport/internal/model"
)

// Aggregate computes mode-level and system-wide aggregate reports from
// per-route reports and prepends them to the returned list, "All"
// first. The input reports are assumed to already carry a
// single-row route_table (their own row), as produced by the
// per-route report assembler.
func Aggregate(reports []model.RouteReport) []model.RouteReport {
	if len(reports) == 0 {
		return reports
	}

	types := append(routeTypes(reports), "All")
	all := append([]model.RouteReport(nil), reports...)

	// Membership is always computed against the original, unaggregated
	// report list: aggregates are inserted into `all` as they're
	// produced, but must never feed into a later aggregate themselves.
	for _, t := range types {
		members := filterByType(reports, t)
		agg := computeAggregate(t, members)
		all = append([]model.RouteReport{agg}, all...)
	}

	rebuildRouteTables(all)
	return all
}

func routeTypes(reports []model.RouteReport) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range reports {
		if _, ok := seen[r.RouteType]; !ok {
			seen[r.RouteType] = struct{}{}
			out = append(out, r.RouteType)
		}
	}
	return out
}

func filterByType(reports []model.RouteReport, routeType string) []model.RouteReport {
	if routeType == "All" {
		return reports
	}
	var out []model.RouteReport
	for _, r := range reports {
		if r.RouteType == routeType {
			out = append(out, r)
		}
	}
	return out
}

// computeAggregate implements §4.11's weighted combination across
// members: onTimePct and coverage are scheduled-weighted, everything
// else sums.
func computeAggregate(routeType string, members []model.RouteReport) model.RouteReport {
	var scheduledSum, onTimeWeighted, bunchSum, gapSum, intervalSum float64
	for _, m := range members {
		scheduledSum += float64(m.ScheduledStops)
		onTimeWeighted += m.OnTimePercentage * float64(m.ScheduledStops)
		bunchSum += float64(m.NumBunches)
		gapSum += float64(m.NumGaps)
		intervalSum += float64(m.TotalIntervals)
	}

	var onTimePct, coverage float64
	if scheduledSum > 0 {
		onTimePct = onTimeWeighted / scheduledSum
		coverage = (onTimeWeighted + bunchSum) / scheduledSum
	}

	var bunchedPct, gappedPct float64
	if intervalSum > 0 {
		bunchedPct = bunchSum / intervalSum
		gappedPct = gapSum / intervalSum
	}
	health := calculateHealth(bunchedPct, gappedPct, onTimePct)

	chart := aggregateChart(members)
	mapData := aggregateMap(members)

	// Fields stay fraction-scaled here; model.Percent is applied once,
	// to the whole list this function's caller returns, at the end of
	// pipeline.Run (§9.2).
	report := model.RouteReport{
		RouteID:           routeType,
		RouteName:         routeType,
		RouteType:         routeType,
		OverallHealth:     health,
		NumBunches:        int(bunchSum),
		NumGaps:           int(gapSum),
		BunchedPercentage: bunchedPct,
		GappedPercentage:  gappedPct,
		TotalIntervals:    int(intervalSum),
		OnTimePercentage:  onTimePct,
		ScheduledStops:    int(scheduledSum),
		Coverage:          coverage,
		LineChart:         chart,
		MapData:           mapData,
		RouteTable: []model.RouteTableRow{{
			RouteID:           routeType,
			RouteName:         routeType,
			OverallHealth:     health,
			BunchedPercentage: bunchedPct,
			GappedPercentage:  gappedPct,
			OnTimePercentage:  onTimePct,
			Coverage:          coverage,
		}},
	}
	if len(members) > 0 {
		report.Date = members[0].Date
	}
	return report
}

// calculateHealth mirrors internal/events' unexported calculateHealth:
// duplicated rather than imported to avoid a dependency cycle back
// into the per-route metric package.
func calculateHealth(bunchedPct, gappedPct, onTimePct float64) float64 {
	return ((1 - bunchedPct) + (1 - gappedPct) + onTimePct) / 3
}

func aggregateChart(members []model.RouteReport) model.LineChart {
	if len(members) == 0 {
		return model.LineChart{}
	}
	times := members[0].LineChart.Times
	bunches := make([]int, len(times))
	gaps := make([]int, len(times))
	for _, m := range members {
		for i := range times {
			if i < len(m.LineChart.Bunches) {
				bunches[i] += m.LineChart.Bunches[i]
			}
			if i < len(m.LineChart.Gaps) {
				gaps[i] += m.LineChart.Gaps[i]
			}
		}
	}
	return model.LineChart{Times: times, Bunches: bunches, Gaps: gaps}
}

func aggregateMap(members []model.RouteReport) model.MapData {
	md := model.MapData{Type: "FeatureCollection", Bunches: []model.Feature{}}
	for _, m := range members {
		md.Bunches = append(md.Bunches, m.MapData.Bunches...)
	}
	return md
}

// rebuildRouteTables reproduces the Python original's second pass
// exactly (Part D item 4): every report in the final list — aggregate
// or per-route — contributes its own row to its mode's table, and
// (unless it is the "All" report itself) also to the "All" table.
// Each aggregate's route_table is then replaced wholesale by its
// mode's accumulated rows, which is why a mode table also contains
// that mode's own aggregate row alongside its constituent routes.
func rebuildRouteTables(all []model.RouteReport) {
	tables := make(map[string][]model.RouteTableRow)
	for _, r := range all {
		tables[r.RouteType] = append(tables[r.RouteType], r.RouteTable[0])
		if r.RouteID != "All" {
			tables["All"] = append(tables["All"], r.RouteTable[0])
		}
	}

	for i := range all {
		if rows, ok := tables[all[i].RouteID]; ok {
			all[i].RouteTable = rows
		}
	}
}
