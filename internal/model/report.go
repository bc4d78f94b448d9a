package model

import (
	"math"
	"time"

	geojson "github.com/paulmach/go.geojson"
)

// Percent converts a [0,1] fraction to a [0,100] percentage rounded to
// 2 decimals, the scale every *_percentage/coverage/overall_health
// field uses on the wire. Internal computation carries fractions
// throughout (§9.2); this conversion happens only when a report is
// assembled for output.
func Percent(fraction float64) float64 {
	return math.Round(fraction*10000) / 100
}

// ScalePercentages converts every report's fraction-scaled metric
// fields (and their nested route_table rows) to [0,100] percentages.
// It is applied once, to the complete per-route-plus-aggregate list
// that a pipeline run produces, immediately before that list is
// written or serialized — never earlier, since the aggregator still
// needs fractions to weight and sum across routes.
func ScalePercentages(reports []RouteReport) []RouteReport {
	out := make([]RouteReport, len(reports))
	for i, r := range reports {
		r.OverallHealth = Percent(r.OverallHealth)
		r.BunchedPercentage = Percent(r.BunchedPercentage)
		r.GappedPercentage = Percent(r.GappedPercentage)
		r.OnTimePercentage = Percent(r.OnTimePercentage)
		r.Coverage = Percent(r.Coverage)

		rows := make([]RouteTableRow, len(r.RouteTable))
		for j, row := range r.RouteTable {
			row.OverallHealth = Percent(row.OverallHealth)
			row.BunchedPercentage = Percent(row.BunchedPercentage)
			row.GappedPercentage = Percent(row.GappedPercentage)
			row.OnTimePercentage = Percent(row.OnTimePercentage)
			row.Coverage = Percent(row.Coverage)
			rows[j] = row
		}
		r.RouteTable = rows
		out[i] = r
	}
	return out
}

// LineChart is the per-interval bunch/gap time series (§4.9).
type LineChart struct {
	Times   []string `json:"times"`
	Bunches []int    `json:"bunches"`
	Gaps    []int    `json:"gaps"`
}

// BunchFeatureProps is the properties object attached to each bunch
// GeoJSON feature.
type BunchFeatureProps struct {
	Time   string `json:"time"`
	StopID string `json:"stopId"`
}

// RouteTableRow is one row of a route_table summary (§4.11).
type RouteTableRow struct {
	RouteID           string  `json:"route_id"`
	RouteName         string  `json:"route_name"`
	OverallHealth     float64 `json:"overall_health"`
	BunchedPercentage float64 `json:"bunched_percentage"`
	GappedPercentage  float64 `json:"gapped_percentage"`
	OnTimePercentage  float64 `json:"on_time_percentage"`
	Coverage          float64 `json:"coverage"`
}

// RouteReport is the complete per-route metrics record emitted by the
// event/metric computer, or the equivalent per-mode/system-wide
// AggregateReport produced by the aggregator (§3, §6).
type RouteReport struct {
	RouteID   string    `json:"route_id"`
	RouteName string    `json:"route_name"`
	RouteType string    `json:"route_type"`
	Date      time.Time `json:"date"`

	OverallHealth     float64 `json:"overall_health"`
	NumBunches        int     `json:"num_bunches"`
	NumGaps           int     `json:"num_gaps"`
	BunchedPercentage float64 `json:"bunched_percentage"`
	GappedPercentage  float64 `json:"gapped_percentage"`
	TotalIntervals    int     `json:"total_intervals"`
	OnTimePercentage  float64 `json:"on_time_percentage"`
	ScheduledStops    int     `json:"scheduled_stops"`
	Coverage          float64 `json:"coverage"`

	LineChart  LineChart       `json:"line_chart"`
	RouteTable []RouteTableRow `json:"route_table"`
	MapData    MapData         `json:"map_data"`
}

// MapData is the GeoJSON-shaped bunch location feed (§4.10, §6).
type MapData struct {
	Type    string    `json:"type"`
	Bunches []Feature `json:"bunches"`
}

// Feature is one bunch entry in MapData.Bunches. Geometry is the
// library's own *geojson.Geometry so its MarshalJSON does the actual
// Point serialization; only the surrounding FeatureCollection shape is
// hand-rolled, to keep the "bunches" wire key the Python original
// uses instead of GeoJSON's standard "features".
type Feature struct {
	Type       string            `json:"type"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties BunchFeatureProps `json:"properties"`
}
