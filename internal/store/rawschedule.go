package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

// rawScheduleStopCell is one per-stop cell of a trip row: either a
// time-of-day string or the sentinel "--" (§4.2).
type rawScheduleStopCell struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type rawScheduleTrip struct {
	Stop []rawScheduleStopCell `json:"stop"`
}

// rawScheduleDirectionBlock is one of the two direction entries in a
// schedule payload. Tr may be a single object (one trip that day) or
// a list of objects; json.RawMessage defers that decision to
// decodeTrips (§4.2, §9: "Dynamic JSON shapes ... become a tagged
// variant at parse time").
type rawScheduleDirectionBlock struct {
	Direction    string `json:"direction"`
	ServiceClass string `json:"serviceClass"`
	Header       struct {
		Stop []struct {
			Tag string `json:"tag"`
		} `json:"stop"`
	} `json:"header"`
	Tr json.RawMessage `json:"tr"`
}

// decodeTrips normalizes the Tr field into a slice regardless of
// whether the source encoded one trip as a bare object or several as
// an array.
func decodeTrips(raw json.RawMessage) ([]rawScheduleTrip, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var asList []rawScheduleTrip
	if err := json.Unmarshal(raw, &asList); err == nil {
		return asList, nil
	}
	var asSingle rawScheduleTrip
	if err := json.Unmarshal(raw, &asSingle); err != nil {
		return nil, fmt.Errorf("decode trips: %w", err)
	}
	return []rawScheduleTrip{asSingle}, nil
}

// extractScheduleTables builds the inbound and outbound ScheduleTable
// from the two raw direction blocks, per §4.2. The block whose
// Direction equals "Inbound" becomes the inbound table; order in the
// source payload is not assumed.
func extractScheduleTables(blocks []rawScheduleDirectionBlock) (inbound, outbound *model.ScheduleTable, err error) {
	if len(blocks) != 2 {
		return nil, nil, fmt.Errorf("expected 2 schedule direction blocks, got %d", len(blocks))
	}

	inboundIdx := 0
	if blocks[0].Direction != "Inbound" {
		inboundIdx = 1
	}
	outboundIdx := 1 - inboundIdx

	inbound, err = tableFromBlock(blocks[inboundIdx])
	if err != nil {
		return nil, nil, fmt.Errorf("inbound table: %w", err)
	}
	outbound, err = tableFromBlock(blocks[outboundIdx])
	if err != nil {
		return nil, nil, fmt.Errorf("outbound table: %w", err)
	}
	return inbound, outbound, nil
}

func tableFromBlock(block rawScheduleDirectionBlock) (*model.ScheduleTable, error) {
	columns := make([]string, 0, len(block.Header.Stop))
	for _, s := range block.Header.Stop {
		columns = append(columns, s.Tag)
	}
	table := model.NewScheduleTable(columns)

	trips, err := decodeTrips(block.Tr)
	if err != nil {
		return nil, err
	}
	for tripIdx, trip := range trips {
		for _, cell := range trip.Stop {
			if cell.Content == "--" {
				continue
			}
			tod, err := parseTimeOfDay(cell.Content)
			if err != nil {
				return nil, fmt.Errorf("trip %d stop %s: %w", tripIdx, cell.Tag, err)
			}
			table.Set(cell.Tag, tripIdx, tod)
		}
	}
	return table, nil
}

// parseTimeOfDay parses an "HH:MM:SS" or "HH:MM" time-of-day string
// into a Duration since midnight.
func parseTimeOfDay(s string) (time.Duration, error) {
	layouts := []string{"15:04:05", "15:04"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("parse time of day %q: %w", s, lastErr)
}

// computeCommonIntervals computes the mean and mode (in minutes) of
// all positive per-column consecutive differences across both
// schedule tables (§4.3). If no intervals exist, ok is false and the
// route cannot be evaluated.
func computeCommonIntervals(inbound, outbound *model.ScheduleTable) (mean, mode float64, ok bool) {
	var intervals []float64

	collect := func(t *model.ScheduleTable) {
		for _, col := range t.Columns {
			times := t.Column(col)
			for i := 1; i < len(times); i++ {
				diff := (times[i] - times[i-1]).Minutes()
				if diff > 0 {
					intervals = append(intervals, diff)
				}
			}
		}
	}
	collect(inbound)
	collect(outbound)

	if len(intervals) == 0 {
		return 0, 0, false
	}

	sum := 0.0
	for _, v := range intervals {
		sum += v
	}
	mean = sum / float64(len(intervals))
	mode = modeOf(intervals)
	return mean, mode, true
}

// modeOf returns the most frequent value in vs, breaking ties by
// preferring the smallest value that reaches the maximum frequency
// (a deterministic tie-break; the source's scipy.stats.mode breaks
// ties the same way: smallest value wins).
func modeOf(vs []float64) float64 {
	counts := make(map[float64]int, len(vs))
	for _, v := range vs {
		counts[v]++
	}
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	best := keys[0]
	bestCount := counts[best]
	for _, k := range keys[1:] {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}
