package events

import (
	"math"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sfmta/transitreport/internal/model"
)

// BuildBunchMap emits the §4.10 bunch feature set: one Point feature
// per bunch event whose stop resolves against the route's stop table.
// Bunches at an unknown stop tag are silently omitted. Each feature's
// geometry is a paulmach/go.geojson Point, which serializes itself;
// only the surrounding collection is hand-rolled, since the output
// nests features under "bunches" rather than the standard "features"
// key.
func BuildBunchMap(problems []model.Problem, route *model.RouteDefinition) model.MapData {
	md := model.MapData{Type: "FeatureCollection", Bunches: []model.Feature{}}
	for _, p := range problems {
		if p.Kind != model.ProblemBunch {
			continue
		}
		stop, ok := route.Stops[p.Stop]
		if !ok {
			continue
		}
		md.Bunches = append(md.Bunches, model.Feature{
			Type:     "Feature",
			Geometry: geojson.NewPointGeometry([]float64{round4(stop.Lon), round4(stop.Lat)}),
			Properties: model.BunchFeatureProps{
				Time:   compactTime(p.Time),
				StopID: p.Stop,
			},
		})
	}
	return md
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// compactTime serializes t as HH:MM:SS[.fraction], stripping trailing
// zeros and the decimal point entirely when the sub-second component
// is zero.
func compactTime(t time.Time) string {
	s := t.Format("15:04:05.000000000")
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
