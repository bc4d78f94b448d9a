package events

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBunchMapOmitsUnknownStop(t *testing.T) {
	route := &model.RouteDefinition{
		Stops: map[string]model.Stop{
			"A": {Tag: "A", Lat: 37.12345, Lon: -122.6789},
		},
	}
	problems := []model.Problem{
		{Kind: model.ProblemBunch, Stop: "A", Time: time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC)},
		{Kind: model.ProblemBunch, Stop: "unknown", Time: time.Date(2026, 7, 30, 10, 5, 0, 0, time.UTC)},
		{Kind: model.ProblemGap, Stop: "A", Time: time.Date(2026, 7, 30, 10, 10, 0, 0, time.UTC)},
	}

	md := BuildBunchMap(problems, route)
	assert.Equal(t, "FeatureCollection", md.Type)
	require.Len(t, md.Bunches, 1)
	f := md.Bunches[0]
	assert.Equal(t, "Feature", f.Type)
	assert.EqualValues(t, "Point", f.Geometry.Type)
	require.Len(t, f.Geometry.Point, 2)
	assert.InDelta(t, -122.6789, f.Geometry.Point[0], 0.00001)
	assert.InDelta(t, 37.1235, f.Geometry.Point[1], 0.00001)
	assert.Equal(t, "A", f.Properties.StopID)
	assert.Equal(t, "10:00:00", f.Properties.Time)
}

func TestCompactTimeStripsTrailingZeros(t *testing.T) {
	assert.Equal(t, "10:00:00", compactTime(time.Date(2026, 7, 30, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "10:00:00.5", compactTime(time.Date(2026, 7, 30, 10, 0, 0, 500000000, time.UTC)))
}
