package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sfmta/transitreport/internal/model"
)

// LoadRoute fetches the route definition active on date d for routeID
// (§6: "begin_date <= D AND (end_date IS NULL OR end_date > D)").
func LoadRoute(ctx context.Context, pool *pgxpool.Pool, routeID string, d time.Time) (*model.RouteDefinition, error) {
	var name, routeType string
	var content []byte

	err := pool.QueryRow(ctx, `
		SELECT route_name, route_type, content
		FROM routes
		WHERE rid = $1 AND begin_date <= $2 AND (end_date IS NULL OR end_date > $2)
		ORDER BY begin_date DESC
		LIMIT 1`, routeID, d).Scan(&name, &routeType, &content)
	if err != nil {
		return nil, fmt.Errorf("no active route definition for route %s on %s: %w", routeID, d.Format("2006-01-02"), err)
	}

	def, err := parseRoutePayload(routeID, name, routeType, content)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", routeID, err)
	}
	return def, nil
}
