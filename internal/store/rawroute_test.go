package store

import (
	"testing"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolveAmbiguousOrderReordersDuplicatePositions(t *testing.T) {
	stops := map[string]model.Stop{
		"A": {Tag: "A", Lat: 0, Lon: 0},
		"C": {Tag: "C", Lat: 0, Lon: 2}, // upstream lists C before B; both sit at the same stop pole
		"B": {Tag: "B", Lat: 0, Lon: 2},
		"D": {Tag: "D", Lat: 0, Lon: 3},
	}
	routeShape := [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}

	// B and C project to the same shape vertex, so the tiebreak is
	// alphabetical (OrderStopsAlongShape's documented tiebreak).
	out := resolveAmbiguousOrder([]string{"A", "C", "B", "D"}, stops, routeShape)
	assert.Equal(t, []string{"A", "B", "C", "D"}, out)
}

func TestResolveAmbiguousOrderLeavesUnambiguousSequenceAlone(t *testing.T) {
	stops := map[string]model.Stop{
		"A": {Tag: "A", Lat: 0, Lon: 0},
		"B": {Tag: "B", Lat: 0, Lon: 1},
		"C": {Tag: "C", Lat: 0, Lon: 2},
	}
	routeShape := [][2]float64{{0, 0}, {1, 0}, {2, 0}}

	out := resolveAmbiguousOrder([]string{"A", "B", "C"}, stops, routeShape)
	assert.Equal(t, []string{"A", "B", "C"}, out)
}

func TestResolveAmbiguousOrderNoShapeIsNoop(t *testing.T) {
	stops := map[string]model.Stop{
		"A": {Tag: "A", Lat: 0, Lon: 0},
		"B": {Tag: "B", Lat: 0, Lon: 0},
	}
	out := resolveAmbiguousOrder([]string{"B", "A"}, stops, nil)
	assert.Equal(t, []string{"B", "A"}, out)
}

func TestSamePositionHandlesMissingTag(t *testing.T) {
	stops := map[string]model.Stop{
		"A": {Tag: "A", Lat: 1, Lon: 1},
	}
	assert.False(t, samePosition(stops, "A", "missing"))
	assert.True(t, samePosition(stops, "A", "A"))
}
