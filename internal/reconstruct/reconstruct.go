// Package reconstruct implements the stop-time reconstructor (§4.5):
// per vehicle, walk cleaned samples in time order and produce, per
// stop, the ordered set of timestamps at which a vehicle was observed
// or inferred (via linear interpolation across missed intermediate
// stops) to be present. Grounded on the Python original's
// get_stop_times.
package reconstruct

import (
	"sort"
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

// Reconstruct builds the StopTimes mapping for every stop in the
// route's inbound+outbound union, from one route's cleaned samples.
func Reconstruct(samples []model.CleanedSample, route *model.RouteDefinition) model.StopTimes {
	st := model.NewStopTimes(unionStops(route))

	byVehicle := groupByVehicle(samples)
	vehicleIDs := make([]string, 0, len(byVehicle))
	for v := range byVehicle {
		vehicleIDs = append(vehicleIDs, v)
	}
	sort.Strings(vehicleIDs) // deterministic processing order

	for _, vid := range vehicleIDs {
		walkVehicle(byVehicle[vid], route, st)
	}

	st.SortAll()
	return st
}

func unionStops(route *model.RouteDefinition) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range route.InboundStops {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	for _, t := range route.OutboundStops {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

func groupByVehicle(samples []model.CleanedSample) map[string][]model.CleanedSample {
	out := make(map[string][]model.CleanedSample)
	for _, s := range samples {
		out[s.VehicleID] = append(out[s.VehicleID], s)
	}
	// samples are already sorted by (timestamp, vehicleId) from the
	// cleaner stage, so each per-vehicle slice is already in ascending
	// timestamp order.
	return out
}

// walkVehicle implements the per-vehicle loop of §4.5, appending
// observed and interpolated arrivals into st.
func walkVehicle(samples []model.CleanedSample, route *model.RouteDefinition, st model.StopTimes) {
	if len(samples) == 0 {
		return
	}

	first := samples[0]
	st.Append(first.ClosestStop, first.Timestamp)

	for i := 1; i < len(samples); i++ {
		prev := samples[i-1]
		curr := samples[i]

		if curr.Direction != prev.Direction {
			// Direction change: no interpolation across it.
			st.Append(curr.ClosestStop, curr.Timestamp)
			continue
		}

		stopList := route.StopList(curr.DirectionKind())
		iCur := indexOf(stopList, curr.ClosestStop)
		iPrev := indexOf(stopList, prev.ClosestStop)
		if iCur < 0 || iPrev < 0 {
			// Closest stop not in this direction's sequence: nothing to
			// interpolate against; still record the observed arrival.
			if curr.ClosestStop != prev.ClosestStop {
				st.Append(curr.ClosestStop, curr.Timestamp)
			}
			continue
		}

		gap := iCur - iPrev
		if gap > 1 {
			delta := curr.Timestamp.Sub(prev.Timestamp) / time.Duration(gap)
			for k := 1; k < gap; k++ {
				interpolated := prev.Timestamp.Add(time.Duration(k) * delta)
				st.Append(stopList[iPrev+k], interpolated)
			}
		}

		if curr.ClosestStop != prev.ClosestStop {
			st.Append(curr.ClosestStop, curr.Timestamp)
		}
	}
}

func indexOf(list []string, tag string) int {
	for i, t := range list {
		if t == tag {
			return i
		}
	}
	return -1
}
