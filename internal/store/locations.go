package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sfmta/transitreport/internal/model"
)

// LoadLocations fetches all vehicle location samples recorded for the
// local-time window of date d, for every route at once (§6: the
// locations relation stores UTC timestamps; the local-date window is
// [D 07:00 UTC, D+1 07:00 UTC) under the fixed -7h PDT offset carried
// in cfg). Routes are filtered out downstream per-route, not here,
// mirroring the Python original's single bulk load_locations query.
func LoadLocations(ctx context.Context, pool *pgxpool.Pool, d time.Time, tzOffset time.Duration) ([]model.LocationSample, error) {
	begin := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Add(-tzOffset)
	end := begin.Add(24 * time.Hour)

	rows, err := pool.Query(ctx, `
		SELECT rid, vid, age, kph, heading, latitude, longitude, direction, timestamp
		FROM locations
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY id`, begin, end)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	var out []model.LocationSample
	for rows.Next() {
		var s model.LocationSample
		var direction *string
		if err := rows.Scan(&s.RouteID, &s.VehicleID, &s.AgeSecs, &s.KPH, &s.Heading,
			&s.Lat, &s.Lon, &direction, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		if direction != nil {
			s.Direction = *direction
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no location data found between %s and %s (UTC)", begin, end)
	}
	return out, nil
}

// SamplesForRoute filters a bulk-loaded sample set down to one route.
func SamplesForRoute(all []model.LocationSample, routeID string) []model.LocationSample {
	var out []model.LocationSample
	for _, s := range all {
		if s.RouteID == routeID {
			out = append(out, s)
		}
	}
	return out
}

// ActiveRouteIDs returns the distinct set of route ids with any
// location sample in all, sorted so route dispatch order is
// deterministic (§5: "'All' table ordering is deterministic if routes
// are sorted by routeId before dispatch").
func ActiveRouteIDs(all []model.LocationSample) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range all {
		if _, ok := seen[s.RouteID]; !ok {
			seen[s.RouteID] = struct{}{}
			ids = append(ids, s.RouteID)
		}
	}
	sort.Strings(ids)
	return ids
}
