package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sfmta/transitreport/internal/model"
)

// WriteMode selects whether WriteReports inserts a new row or updates
// an existing one (§6: the `newReport` CLI flag).
type WriteMode string

const (
	WriteInsert WriteMode = "insert"
	WriteUpdate WriteMode = "update"
)

// WriteReports persists the ordered report array for date d as a
// single row, in one commit so a failed write never leaves a partial
// report visible (§7: "no partial-report corruption").
func WriteReports(ctx context.Context, pool *pgxpool.Pool, d time.Time, reports []model.RouteReport, mode WriteMode) error {
	payload, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}

	switch mode {
	case WriteInsert:
		_, err = pool.Exec(ctx, `INSERT INTO reports (date, report) VALUES ($1, $2)`, d, payload)
	case WriteUpdate:
		_, err = pool.Exec(ctx, `UPDATE reports SET report = $2 WHERE date = $1`, d, payload)
	default:
		return fmt.Errorf("unknown write mode %q", mode)
	}
	if err != nil {
		return fmt.Errorf("write reports for %s: %w", d.Format("2006-01-02"), err)
	}
	return nil
}
