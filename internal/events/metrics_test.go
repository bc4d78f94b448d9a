package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics(t *testing.T) {
	onTime := OnTimeResult{OnTimeCount: 60, TotalScheduled: 100}
	m := ComputeMetrics(2, 1, 20, onTime)

	assert.Equal(t, 0.6, m.OnTimePct)
	assert.InDelta(t, 0.1, m.BunchedPct, 1e-9)
	assert.InDelta(t, 0.05, m.GappedPct, 1e-9)
	assert.InDelta(t, (100.0*0.6+2)/100.0, m.Coverage, 1e-9)
	assert.InDelta(t, ((1-0.1)+(1-0.05)+0.6)/3, m.Health, 1e-9)
}

func TestComputeMetricsZeroIntervalsAndScheduled(t *testing.T) {
	m := ComputeMetrics(0, 0, 0, OnTimeResult{})
	assert.Equal(t, 0.0, m.BunchedPct)
	assert.Equal(t, 0.0, m.GappedPct)
	assert.Equal(t, 0.0, m.Coverage)
	assert.Equal(t, 0.0, m.OnTimePct)
}
