// Package geo holds the two distance functions the pipeline needs: the
// FCC planar-earth projection used for stop assignment (§4.4), and a
// haversine helper used by the shape/segment-splitting code adapted
// from the teacher's route-segment machinery.
package geo

import "math"

// FCCProjectionKM computes the FCC-recommended planar-earth-projection
// distance between two lat/lon points, in kilometers (§4.4).
//
// The formula is reproduced exactly as the upstream implementation
// wrote it: the trig terms are evaluated against mean-lat and its
// multiples taken as degrees, even though math.Cos expects radians.
// That mismatch makes the resulting distance wrong in absolute terms,
// but it stays monotonic with true distance, which is all argmin
// nearest-stop assignment and the 0.5 km drop threshold rely on (see
// the open-question note in SPEC_FULL.md — this is a deliberate,
// documented faithful reproduction, not a bug left in by accident).
func FCCProjectionKM(lat1, lon1, lat2, lon2 float64) float64 {
	meanLat := (lat1 + lat2) / 2
	deltaLat := lat2 - lat1
	deltaLon := lon2 - lon1

	k1 := 111.13209 - 0.56605*math.Cos(2*meanLat) + 0.0012*math.Cos(4*meanLat)
	k2 := 111.41513*math.Cos(meanLat) - 0.09455*math.Cos(3*meanLat) + 0.00012*math.Cos(5*meanLat)

	return math.Sqrt(math.Pow(k1*deltaLat, 2) + math.Pow(k2*deltaLon, 2))
}

// HaversineMeters computes the great-circle distance between two
// lat/lon points in meters. Adapted from the teacher's haversineM,
// kept as the metrically-correct distance function for the shape
// package's segment splitting, where true distances (not just
// monotonic ones) matter for target segment lengths.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusM = 6371000.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
