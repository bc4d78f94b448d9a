// Package shape adapts the teacher's route-segment machinery
// (originally used to bucket speed samples along OTP-decoded route
// polylines) to a narrower job here: decoding an optional
// polyline-encoded shape from a route definition payload and using it
// to break geometric ties when two stops share a tag-adjacent position
// and the raw direction-list order is ambiguous.
//
// This package deliberately does NOT attempt to reconstruct a route's
// path from an unordered bag of sub-paths (the original's
// extract_path); that problem is out of scope for this pipeline
// (SPEC_FULL.md, Part E item 3) and is not needed here since routes
// arrive with their stop order already given by the direction lists.
package shape

import (
	"fmt"
	"sort"

	"github.com/sfmta/transitreport/internal/geo"
	polyline "github.com/twpayne/go-polyline"
)

// Segment is one piece of a route's decoded shape, split at roughly
// targetLengthM intervals.
type Segment struct {
	ID       string
	Index    int
	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64
	MidLat   float64
	MidLon   float64
	LengthM  float64
	Points   [][2]float64 // [lon, lat] pairs
}

// DecodePolyline decodes a Google-polyline-encoded route shape into an
// ordered list of [lon, lat] coordinate pairs.
func DecodePolyline(encoded string) ([][2]float64, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	out := make([][2]float64, len(coords))
	for i, c := range coords {
		// go-polyline decodes to [lat, lon]; this package's Segment
		// and tie-break geometry work in [lon, lat] throughout.
		out[i] = [2]float64{c[1], c[0]}
	}
	return out, nil
}

// SplitIntoSegments breaks an ordered polyline into segments of
// roughly targetLengthM meters each, same algorithm as the teacher's
// splitIntoSegments, generalized away from a route/direction key.
func SplitIntoSegments(routeKey string, coordinates [][2]float64, targetLengthM float64) []Segment {
	if len(coordinates) < 2 {
		return nil
	}

	var segments []Segment
	index := 0
	segCoords := [][2]float64{coordinates[0]}
	var segLength float64

	for i := 1; i < len(coordinates); i++ {
		prev := coordinates[i-1]
		curr := coordinates[i]
		dist := geo.HaversineMeters(prev[1], prev[0], curr[1], curr[0])

		segCoords = append(segCoords, curr)
		segLength += dist

		if segLength >= targetLengthM || i == len(coordinates)-1 {
			start := segCoords[0]
			end := segCoords[len(segCoords)-1]
			mid := segCoords[len(segCoords)/2]

			points := make([][2]float64, len(segCoords))
			copy(points, segCoords)

			segments = append(segments, Segment{
				ID:       fmt.Sprintf("%s:%d", routeKey, index),
				Index:    index,
				StartLat: start[1],
				StartLon: start[0],
				EndLat:   end[1],
				EndLon:   end[0],
				MidLat:   mid[1],
				MidLon:   mid[0],
				LengthM:  segLength,
				Points:   points,
			})

			index++
			segCoords = [][2]float64{curr}
			segLength = 0
		}
	}

	return segments
}

// OrderStopsAlongShape takes a set of candidate stop tags with known
// lat/lon and an ordered shape polyline, and returns the tags sorted
// by their nearest-point projection distance along the shape. This is
// the geometric tie-break used when a route's raw direction list
// leaves two stops' relative order ambiguous (adjacent stops at
// identical coordinates); it is never used to
// invent stop order where the direction list is already unambiguous.
func OrderStopsAlongShape(stopLatLon map[string][2]float64, shape [][2]float64) []string {
	type stopProjection struct {
		tag   string
		index int
	}
	var projections []stopProjection
	for tag, ll := range stopLatLon {
		lon, lat := ll[0], ll[1]
		bestIdx := 0
		bestDist := geo.HaversineMeters(lat, lon, shape[0][1], shape[0][0])
		for i := 1; i < len(shape); i++ {
			d := geo.HaversineMeters(lat, lon, shape[i][1], shape[i][0])
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		projections = append(projections, stopProjection{tag: tag, index: bestIdx})
	}

	sort.Slice(projections, func(i, j int) bool {
		if projections[i].index != projections[j].index {
			return projections[i].index < projections[j].index
		}
		// Stops that project to the same shape vertex (e.g. two tags
		// at the same physical position) need a deterministic
		// tiebreak; tag order is as good as any and keeps repeated
		// calls stable.
		return projections[i].tag < projections[j].tag
	})

	out := make([]string, len(projections))
	for i, p := range projections {
		out[i] = p.tag
	}
	return out
}
