package clean

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoute() *model.RouteDefinition {
	stops := map[string]model.Stop{
		"A": {Tag: "A", Lat: 37.0000, Lon: -122.0000},
		"B": {Tag: "B", Lat: 37.0010, Lon: -122.0000},
		"C": {Tag: "C", Lat: 37.0020, Lon: -122.0000},
	}
	r := &model.RouteDefinition{
		RouteID:       "R1",
		InboundStops:  []string{"A", "B", "C"},
		OutboundStops: []string{"C", "B", "A"},
		Stops:         stops,
	}
	r.AssignStopDirections()
	return r
}

func TestCleanDropsStaleSamples(t *testing.T) {
	route := testRoute()
	samples := []model.LocationSample{
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 60, Lat: 37.0000, Lon: -122.0000, Timestamp: time.Now()},
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 59, Lat: 37.0000, Lon: -122.0000, Timestamp: time.Now()},
	}
	out := Clean(samples, route)
	require.Len(t, out, 1)
	assert.InDelta(t, 59, out[0].AgeSecs, 0.001)
}

func TestCleanDropsMissingDirection(t *testing.T) {
	route := testRoute()
	samples := []model.LocationSample{
		{VehicleID: "v1", Direction: "", AgeSecs: 1, Lat: 37.0000, Lon: -122.0000, Timestamp: time.Now()},
	}
	assert.Empty(t, Clean(samples, route))
}

func TestCleanCorrectsTimestamp(t *testing.T) {
	route := testRoute()
	now := time.Date(2026, 1, 1, 12, 0, 30, 0, time.UTC)
	samples := []model.LocationSample{
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 10, Lat: 37.0000, Lon: -122.0000, Timestamp: now},
	}
	out := Clean(samples, route)
	require.Len(t, out, 1)
	assert.Equal(t, now.Add(-10*time.Second), out[0].Timestamp)
}

func TestCleanAssignsClosestStopAndDropsFar(t *testing.T) {
	route := testRoute()
	samples := []model.LocationSample{
		// very close to A
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 1, Lat: 37.0000, Lon: -122.0000, Timestamp: time.Unix(100, 0)},
		// far from any stop
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 1, Lat: 40.0000, Lon: -130.0000, Timestamp: time.Unix(200, 0)},
	}
	out := Clean(samples, route)
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].ClosestStop)
	assert.Less(t, out[0].DistanceKM, 0.5)
}

func TestCleanSortsByTimestampThenVehicle(t *testing.T) {
	route := testRoute()
	t1 := time.Unix(100, 0)
	samples := []model.LocationSample{
		{VehicleID: "v2", Direction: "R1_0_I_", AgeSecs: 1, Lat: 37.0000, Lon: -122.0000, Timestamp: t1},
		{VehicleID: "v1", Direction: "R1_0_I_", AgeSecs: 1, Lat: 37.0000, Lon: -122.0000, Timestamp: t1},
	}
	out := Clean(samples, route)
	require.Len(t, out, 2)
	assert.Equal(t, "v1", out[0].VehicleID)
	assert.Equal(t, "v2", out[1].VehicleID)
}
