package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIntoSegmentsBasic(t *testing.T) {
	coords := [][2]float64{
		{-122.41, 37.77},
		{-122.42, 37.78},
		{-122.43, 37.79},
		{-122.44, 37.80},
	}
	segs := SplitIntoSegments("R1", coords, 1000)
	require.NotEmpty(t, segs)
	for i, s := range segs {
		assert.Equal(t, i, s.Index)
		assert.Contains(t, s.ID, "R1:")
	}
}

func TestSplitIntoSegmentsTooShort(t *testing.T) {
	assert.Nil(t, SplitIntoSegments("R1", [][2]float64{{0, 0}}, 1000))
}

func TestOrderStopsAlongShape(t *testing.T) {
	shape := [][2]float64{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
	}
	stops := map[string][2]float64{
		"C": {2.1, 0},
		"A": {0.1, 0},
		"B": {1.1, 0},
	}
	ordered := OrderStopsAlongShape(stops, shape)
	assert.Equal(t, []string{"A", "B", "C"}, ordered)
}

func TestOrderStopsAlongShapeBreaksTiesAlphabetically(t *testing.T) {
	shape := [][2]float64{
		{0, 0}, {1, 0}, {2, 0},
	}
	stops := map[string][2]float64{
		"Z": {1, 0},
		"A": {1, 0}, // same position as Z: projects to the same vertex
	}
	ordered := OrderStopsAlongShape(stops, shape)
	assert.Equal(t, []string{"A", "Z"}, ordered)
}
