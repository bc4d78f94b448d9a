// Package clean implements the location cleaner stage (§4.4): it
// drops stale/undirected samples, corrects timestamps, assigns each
// sample to its nearest scheduled stop by FCC planar-projection
// distance, and drops samples too far from any stop. Grounded on the
// Python original's clean_locations plus the teacher's nearest-stop
// matching style in collector.go/segments.go.
package clean

import (
	"sort"
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

const (
	maxSampleAgeSecs  = 60.0 // §4.4 step 1; age == 60 is dropped, 59 kept
	maxStopDistanceKM = 0.5  // §4.4 step 7; distance == 0.5 is dropped
)

// Clean runs the full §4.4 pipeline for one route's raw samples,
// returning cleaned samples sorted by (timestamp, vehicleId).
func Clean(samples []model.LocationSample, route *model.RouteDefinition) []model.CleanedSample {
	inboundStops := stopsForDirection(route, model.DirectionInbound)
	outboundStops := stopsForDirection(route, model.DirectionOutbound)
	inboundGrid := newStopGrid(inboundStops)
	outboundGrid := newStopGrid(outboundStops)

	var out []model.CleanedSample
	for _, s := range samples {
		if s.AgeSecs >= maxSampleAgeSecs {
			continue
		}
		if s.Direction == "" {
			continue
		}

		corrected := s
		corrected.Timestamp = s.Timestamp.Add(-time.Duration(s.AgeSecs * float64(time.Second)))

		var grid *stopGrid
		var candidateCount int
		switch corrected.DirectionKind() {
		case model.DirectionInbound:
			grid, candidateCount = inboundGrid, len(inboundStops)
		case model.DirectionOutbound:
			grid, candidateCount = outboundGrid, len(outboundStops)
		default:
			continue // neither "_I_" nor "_O_": discarded (§4.4 step 4)
		}
		if candidateCount == 0 {
			continue // no candidate stops for this direction
		}

		nearest, dist := grid.Nearest(corrected.Lat, corrected.Lon)
		if dist >= maxStopDistanceKM {
			continue
		}

		out = append(out, model.CleanedSample{
			LocationSample: corrected,
			ClosestStop:    nearest.Tag,
			DistanceKM:     dist,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].VehicleID < out[j].VehicleID
	})
	return out
}

func stopsForDirection(route *model.RouteDefinition, dir model.Direction) []model.Stop {
	var tags []string
	if dir == model.DirectionInbound {
		tags = route.InboundStops
	} else {
		tags = route.OutboundStops
	}
	stops := make([]model.Stop, 0, len(tags))
	for _, tag := range tags {
		if s, ok := route.StopByTag(tag); ok {
			stops = append(stops, s)
		}
	}
	return stops
}
