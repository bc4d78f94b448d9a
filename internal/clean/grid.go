package clean

import (
	"math"

	"github.com/sfmta/transitreport/internal/geo"
	"github.com/sfmta/transitreport/internal/model"
)

// stopGrid is a uniform lat/lon bucket index over a direction
// partition's candidate stops, used to cut the O(samples*stops)
// nearest-neighbor scan down when a route has many stops (§9: "a
// quadratic scan is acceptable up to a few thousand samples per
// route; otherwise precompute a spatial index ... of ~0.5 km").
//
// Below gridActivationThreshold stops, Nearest falls back to a
// plain linear scan — building a grid has its own overhead that only
// pays off once the candidate set is large enough to matter.
const (
	cellSizeDeg            = 0.0045 // ~0.5 km at mid latitudes
	gridActivationThreshold = 40
)

type stopGrid struct {
	cells  map[[2]int][]model.Stop
	linear []model.Stop // used directly when below the activation threshold
}

func newStopGrid(stops []model.Stop) *stopGrid {
	g := &stopGrid{}
	if len(stops) < gridActivationThreshold {
		g.linear = stops
		return g
	}
	g.cells = make(map[[2]int][]model.Stop, len(stops))
	for _, s := range stops {
		key := cellKey(s.Lat, s.Lon)
		g.cells[key] = append(g.cells[key], s)
	}
	return g
}

func cellKey(lat, lon float64) [2]int {
	return [2]int{
		int(math.Floor(lat / cellSizeDeg)),
		int(math.Floor(lon / cellSizeDeg)),
	}
}

// Nearest returns the closest stop to (lat, lon) by FCC planar
// projection distance, and that distance in km.
func (g *stopGrid) Nearest(lat, lon float64) (model.Stop, float64) {
	if g.linear != nil {
		return nearestLinear(g.linear, lat, lon)
	}

	cy, cx := cellKey(lat, lon)[0], cellKey(lat, lon)[1]
	// Expand outward ring by ring until a candidate is found, then scan
	// one extra ring so a stop just across a cell boundary isn't missed.
	var best model.Stop
	bestDist := math.Inf(1)
	foundAtRadius := -1
	for radius := 0; radius < 64; radius++ {
		if foundAtRadius >= 0 && radius > foundAtRadius+1 {
			break
		}
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if radius > 0 && abs(dy) != radius && abs(dx) != radius {
					continue // only the new outer ring
				}
				for _, s := range g.cells[[2]int{cy + dy, cx + dx}] {
					d := geo.FCCProjectionKM(lat, lon, s.Lat, s.Lon)
					if d < bestDist {
						bestDist = d
						best = s
						if foundAtRadius < 0 {
							foundAtRadius = radius
						}
					}
				}
			}
		}
	}
	if foundAtRadius < 0 {
		return nearestLinear(flatten(g.cells), lat, lon)
	}
	return best, bestDist
}

func nearestLinear(stops []model.Stop, lat, lon float64) (model.Stop, float64) {
	var best model.Stop
	bestDist := math.Inf(1)
	for _, s := range stops {
		d := geo.FCCProjectionKM(lat, lon, s.Lat, s.Lon)
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best, bestDist
}

func flatten(cells map[[2]int][]model.Stop) []model.Stop {
	var out []model.Stop
	for _, v := range cells {
		out = append(out, v...)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
