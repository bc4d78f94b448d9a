package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sfmta/transitreport/internal/model"
)

// LoadSchedule fetches the schedule active on date d for routeID and
// extracts the two direction tables matching d's service class
// (§4.1, §4.2, §6). If the schedule payload has no entries for the
// resolved service class, inService is false and the route is treated
// as not-in-service for D — not an error.
func LoadSchedule(ctx context.Context, pool *pgxpool.Pool, routeID string, d time.Time) (sched *model.Schedule, inService bool, err error) {
	var content []byte
	err = pool.QueryRow(ctx, `
		SELECT content
		FROM schedules
		WHERE rid = $1 AND begin_date <= $2 AND (end_date IS NULL OR end_date >= $2)
		ORDER BY begin_date DESC
		LIMIT 1`, routeID, d).Scan(&content)
	if err != nil {
		return nil, false, fmt.Errorf("no active schedule for route %s on %s: %w", routeID, d.Format("2006-01-02"), err)
	}

	var outer struct {
		Route []rawScheduleDirectionBlock `json:"route"`
	}
	if err := json.Unmarshal(content, &outer); err != nil {
		return nil, false, fmt.Errorf("parse schedule payload for route %s: %w", routeID, err)
	}

	class := model.ClassForDate(d)
	var matched []rawScheduleDirectionBlock
	for _, block := range outer.Route {
		if model.ServiceClass(block.ServiceClass) == class {
			matched = append(matched, block)
		}
	}
	if len(matched) == 0 {
		return nil, false, nil
	}

	inbound, outbound, err := extractScheduleTables(matched)
	if err != nil {
		return nil, false, fmt.Errorf("route %s: %w", routeID, err)
	}

	mean, mode, ok := computeCommonIntervals(inbound, outbound)
	if !ok {
		return nil, false, fmt.Errorf("route %s: no schedule intervals available", routeID)
	}

	return &model.Schedule{
		RouteID:        routeID,
		Date:           d,
		Inbound:        inbound,
		Outbound:       outbound,
		MeanInterval:   mean,
		CommonInterval: mode,
	}, true, nil
}
