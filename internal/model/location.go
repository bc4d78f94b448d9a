package model

import (
	"sort"
	"strings"
	"time"
)

// LocationSample is one raw vehicle ping as loaded from storage.
// Timestamp correction (subtracting Age) happens in the cleaner stage,
// not at load time (§4.4 step 3).
type LocationSample struct {
	VehicleID string
	RouteID   string
	Direction string // contains "_I_" or "_O_"
	AgeSecs   float64
	KPH       float64
	Heading   float64
	Lat       float64
	Lon       float64
	Timestamp time.Time
}

// DirectionKind classifies a raw sample's Direction string.
func (s *LocationSample) DirectionKind() Direction {
	switch {
	case strings.Contains(s.Direction, "_I_"):
		return DirectionInbound
	case strings.Contains(s.Direction, "_O_"):
		return DirectionOutbound
	default:
		return DirectionNone
	}
}

// CleanedSample is a LocationSample after stop assignment (§3).
// Invariant: DistanceKM < 0.5.
type CleanedSample struct {
	LocationSample
	ClosestStop string
	DistanceKM  float64
}

// StopTimes maps stop tag to the ascending sequence of instants at
// which a vehicle was observed or inferred to be present at that stop.
type StopTimes map[string][]time.Time

// NewStopTimes initializes an empty arrival list for every stop tag in
// tags (the union of a route's inbound and outbound stop sequences).
func NewStopTimes(tags []string) StopTimes {
	st := make(StopTimes, len(tags))
	for _, t := range tags {
		st[t] = nil
	}
	return st
}

// Append records an observed/inferred arrival at stop.
func (st StopTimes) Append(stop string, t time.Time) {
	st[stop] = append(st[stop], t)
}

// SortAll sorts every stop's arrival list ascending in place.
func (st StopTimes) SortAll() {
	for stop := range st {
		times := st[stop]
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	}
}

// TotalIntervals returns (sum of arrival counts) - (stops with any
// arrivals): the number of consecutive-arrival intervals observed
// across all stops (§4.8).
func (st StopTimes) TotalIntervals() int {
	total := 0
	stopsWithArrivals := 0
	for _, times := range st {
		total += len(times)
		if len(times) > 0 {
			stopsWithArrivals++
		}
	}
	return total - stopsWithArrivals
}

// ProblemKind distinguishes a bunch from a gap event.
type ProblemKind string

const (
	ProblemBunch ProblemKind = "bunch"
	ProblemGap   ProblemKind = "gap"
)

// Problem is a detected bunch or gap event (§3). Invariants: for a
// bunch, Duration <= bunchThreshold; for a gap, Duration >= gapThreshold.
type Problem struct {
	Kind     ProblemKind
	Time     time.Time
	Duration time.Duration
	Stop     string
}
