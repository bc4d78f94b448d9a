package events

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeSeriesCanonicalAxisOnEmptyInput(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	chart := BuildTimeSeries(nil, day, 10)

	require.Len(t, chart.Times, 144)
	assert.Equal(t, "00:00", chart.Times[0])
	assert.Equal(t, "23:50", chart.Times[143])
	for _, c := range chart.Bunches {
		assert.Equal(t, 0, c)
	}
	for _, c := range chart.Gaps {
		assert.Equal(t, 0, c)
	}
}

func TestBuildTimeSeriesBinsEvents(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	problems := []model.Problem{
		{Kind: model.ProblemBunch, Time: time.Date(2026, 7, 30, 10, 3, 0, 0, time.UTC)},
		{Kind: model.ProblemBunch, Time: time.Date(2026, 7, 30, 10, 9, 0, 0, time.UTC)},
		{Kind: model.ProblemGap, Time: time.Date(2026, 7, 30, 10, 15, 0, 0, time.UTC)},
	}
	chart := BuildTimeSeries(problems, day, 10)

	idx := 60 // 10:00 bin: (10*60)/10 = 60
	assert.Equal(t, 2, chart.Bunches[idx])
	assert.Equal(t, 0, chart.Gaps[idx])
	assert.Equal(t, 1, chart.Gaps[idx+1])
}
