package events

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseClock(s string) time.Time {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

// S3: commonInterval = 10 min; stop X has arrivals [10:00, 10:01].
// delta=60s <= 120s bunch threshold -> one bunch event at 10:00,
// duration 60s.
func TestDetectProblemsBunch(t *testing.T) {
	th := ComputeThresholds(10, 0.2, 1.5)
	st := model.StopTimes{"X": {parseClock("10:00:00"), parseClock("10:01:00")}}

	problems := DetectProblems(st, []string{"X"}, th)
	require.Len(t, problems, 1)
	assert.Equal(t, model.ProblemBunch, problems[0].Kind)
	assert.Equal(t, "X", problems[0].Stop)
	assert.Equal(t, 60*time.Second, problems[0].Duration)
	assert.True(t, problems[0].Time.Equal(parseClock("10:00:00")))
}

// S4: same commonInterval; stop Y arrivals [10:00, 10:16]. delta=960s
// >= 900s gap threshold -> one gap event at 10:00, duration 960s.
func TestDetectProblemsGap(t *testing.T) {
	th := ComputeThresholds(10, 0.2, 1.5)
	st := model.StopTimes{"Y": {parseClock("10:00:00"), parseClock("10:16:00")}}

	problems := DetectProblems(st, []string{"Y"}, th)
	require.Len(t, problems, 1)
	assert.Equal(t, model.ProblemGap, problems[0].Kind)
	assert.Equal(t, "Y", problems[0].Stop)
	assert.Equal(t, 960*time.Second, problems[0].Duration)
}

func TestDetectProblemsNeitherBunchNorGap(t *testing.T) {
	th := ComputeThresholds(10, 0.2, 1.5)
	st := model.StopTimes{"Z": {parseClock("10:00:00"), parseClock("10:05:00")}}

	assert.Empty(t, DetectProblems(st, []string{"Z"}, th))
}

func TestDetectProblemsSkipsStopWithFewerThanTwoArrivals(t *testing.T) {
	th := ComputeThresholds(10, 0.2, 1.5)
	st := model.StopTimes{"Z": {parseClock("10:00:00")}}

	assert.Empty(t, DetectProblems(st, []string{"Z"}, th))
}
