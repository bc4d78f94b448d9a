package events

import (
	"testing"
	"time"

	"github.com/sfmta/transitreport/internal/model"
	"github.com/stretchr/testify/assert"
)

func mustParseTOD(s string) time.Duration {
	t, err := time.Parse("15:04", s)
	if err != nil {
		panic(err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

func mustParseClock(day time.Time, s string) time.Time {
	t, err := time.Parse("15:04", s)
	if err != nil {
		panic(err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

func scheduleFor(stopTag string, tod time.Duration) *model.Schedule {
	in := model.NewScheduleTable([]string{stopTag})
	in.Set(stopTag, 0, tod)
	out := model.NewScheduleTable(nil)
	return &model.Schedule{Inbound: in, Outbound: out}
}

func routeWith(stopTag string) *model.RouteDefinition {
	r := &model.RouteDefinition{InboundStops: []string{stopTag}}
	return r
}

// S5: scheduled 10:05 at stop Z, observed [10:02, 10:07]. First >= 10:04
// is 10:07; 10:07 <= 10:09 -> on-time.
func TestClassifyOnTimeWithinWindow(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	sched := scheduleFor("Z", mustParseTOD("10:05"))
	route := routeWith("Z")
	st := model.NewStopTimes([]string{"Z"})
	st.Append("Z", mustParseClock(day, "10:02"))
	st.Append("Z", mustParseClock(day, "10:07"))
	st.SortAll()

	result := ClassifyOnTime(st, sched, route, day)
	assert.Equal(t, 1, result.OnTimeCount)
	assert.Equal(t, 1, result.TotalScheduled)
}

// S5 continued: observed [10:02, 10:10] instead -> first >= 10:04 is
// 10:10, which is after 10:09 -> not on-time.
func TestClassifyOnTimeOutsideWindow(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	sched := scheduleFor("Z", mustParseTOD("10:05"))
	route := routeWith("Z")
	st := model.NewStopTimes([]string{"Z"})
	st.Append("Z", mustParseClock(day, "10:02"))
	st.Append("Z", mustParseClock(day, "10:10"))
	st.SortAll()

	result := ClassifyOnTime(st, sched, route, day)
	assert.Equal(t, 0, result.OnTimeCount)
	assert.Equal(t, 1, result.TotalScheduled)
}

func TestClassifyOnTimeSkipsStopAbsentFromRoute(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	sched := scheduleFor("14148", mustParseTOD("10:05"))
	route := routeWith("other-stop")
	st := model.NewStopTimes([]string{"14148"})

	result := ClassifyOnTime(st, sched, route, day)
	assert.Equal(t, 0, result.OnTimeCount)
	assert.Equal(t, 1, result.TotalScheduled)
}

func TestClassifyOnTimeNoObservationEverIsNotOnTime(t *testing.T) {
	day := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	sched := scheduleFor("Z", mustParseTOD("10:05"))
	route := routeWith("Z")
	st := model.NewStopTimes([]string{"Z"})

	result := ClassifyOnTime(st, sched, route, day)
	assert.Equal(t, 0, result.OnTimeCount)
	assert.Equal(t, 1, result.TotalScheduled)
}
