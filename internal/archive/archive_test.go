package archive

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRowsFlattensScalarMetrics(t *testing.T) {
	d := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	reports := []model.RouteReport{
		{RouteID: "14", RouteName: "14-Mission", RouteType: "bus", OverallHealth: 0.91, NumBunches: 3, ScheduledStops: 120},
	}

	rows := buildRows(d, reports)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-07-30", rows[0].Date)
	assert.Equal(t, "14", rows[0].RouteID)
	assert.Equal(t, int32(3), rows[0].NumBunches)
	assert.Equal(t, int32(120), rows[0].ScheduledStops)
}

func TestNewClientFromEnvReturnsNilWhenUnconfigured(t *testing.T) {
	t.Setenv("R2_ENDPOINT", "")
	t.Setenv("R2_ACCESS_KEY_ID", "")
	t.Setenv("R2_SECRET_ACCESS_KEY", "")
	assert.Nil(t, NewClientFromEnv())
}
