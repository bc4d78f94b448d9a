package events

import (
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

const (
	earlyWindow = 60 * time.Second
	lateWindow  = 240 * time.Second
)

// OnTimeResult holds the §4.8 on-time tally for a route.
type OnTimeResult struct {
	OnTimeCount    int
	TotalScheduled int
}

// Pct returns the on-time fraction in [0,1], or 0 if nothing was
// scheduled.
func (r OnTimeResult) Pct() float64 {
	if r.TotalScheduled == 0 {
		return 0
	}
	return float64(r.OnTimeCount) / float64(r.TotalScheduled)
}

// ClassifyOnTime implements §4.7: for every scheduled arrival in
// either direction table, find the first observed arrival at or after
// (scheduled - earlyWindow); it is on-time iff that observation exists
// and falls at or before (scheduled + lateWindow). A schedule stop tag
// absent from the route's own inbound/outbound stop sequences is
// silently skipped, matching the original's try/except around stops
// like "14148 on route 24" that appear in the schedule but not the
// route definition.
func ClassifyOnTime(st model.StopTimes, sched *model.Schedule, route *model.RouteDefinition, day time.Time) OnTimeResult {
	var result OnTimeResult
	result.OnTimeCount += classifyTable(st, sched.Inbound, route, day)
	result.OnTimeCount += classifyTable(st, sched.Outbound, route, day)
	result.TotalScheduled = sched.Inbound.Count() + sched.Outbound.Count()
	return result
}

func classifyTable(st model.StopTimes, table *model.ScheduleTable, route *model.RouteDefinition, day time.Time) int {
	count := 0
	for _, stopTag := range table.Columns {
		if !stopInRoute(route, stopTag) {
			continue
		}
		observed, ok := st[stopTag]
		if !ok {
			continue
		}
		times := table.Column(stopTag)
		for _, tod := range times {
			scheduled := dayAt(day, tod)
			earliest := scheduled.Add(-earlyWindow)
			latest := scheduled.Add(lateWindow)

			found, foundOK := firstAtOrAfter(observed, earliest)
			if !foundOK {
				continue
			}
			if !found.After(latest) {
				count++
			}
		}
	}
	return count
}

func stopInRoute(route *model.RouteDefinition, tag string) bool {
	return route.IsInbound(tag) || route.IsOutbound(tag)
}

func dayAt(day time.Time, tod time.Duration) time.Time {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return midnight.Add(tod)
}

// firstAtOrAfter returns the first time in the ascending slice times
// that is >= cutoff.
func firstAtOrAfter(times []time.Time, cutoff time.Time) (time.Time, bool) {
	for _, t := range times {
		if !t.Before(cutoff) {
			return t, true
		}
	}
	return time.Time{}, false
}
