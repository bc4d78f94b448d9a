// reportgen runs one day's service-quality report pipeline and writes
// the result to Postgres. Usage:
//
//	reportgen <YYYY-MM-DD>|yesterday [--new-report=insert|update]
//
// Grounded on the teacher's main.go: os.Args dispatch, a masked
// DATABASE_URL log line, and a connectivity check before real work
// starts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/sfmta/transitreport/internal/archive"
	"github.com/sfmta/transitreport/internal/config"
	"github.com/sfmta/transitreport/internal/model"
	"github.com/sfmta/transitreport/internal/pipeline"
	"github.com/sfmta/transitreport/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: reportgen <YYYY-MM-DD>|yesterday [--new-report=insert|update]")
	}

	day, err := parseDate(os.Args[1])
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	mode := store.WriteInsert
	for _, arg := range os.Args[2:] {
		v, ok := strings.CutPrefix(arg, "--new-report=")
		if !ok {
			continue
		}
		switch store.WriteMode(v) {
		case store.WriteInsert, store.WriteUpdate:
			mode = store.WriteMode(v)
		default:
			log.Fatalf("FATAL: unknown --new-report value %q", v)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	ctx := context.Background()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL, int32(cfg.WorkerCount+1))
	if err != nil {
		log.Fatalf("FATAL: database connection failed: %v", err)
	}
	defer pool.Close()

	if err := store.Ping(ctx, pool); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	log.Println("Database connection: OK")
	log.Printf("Database: %s", maskDatabaseURL(cfg.DatabaseURL))
	log.Printf("Report date: %s (mode=%s, workers=%d)", day.Format("2006-01-02"), mode, cfg.WorkerCount)

	result, err := pipeline.Run(ctx, pool, cfg, day)
	if err != nil {
		log.Fatalf("FATAL: pipeline run failed: %v", err)
	}
	for _, f := range result.Failures {
		log.Printf("[reportgen] %v", f)
	}
	log.Printf("[reportgen] run %s: %d reports (%d route failures)", result.RunID, len(result.Reports), len(result.Failures))

	if err := store.WriteReports(ctx, pool, day, result.Reports, mode); err != nil {
		log.Fatalf("FATAL: write reports failed: %v", err)
	}

	if client := archive.NewClientFromEnv(); client != nil {
		if err := client.Archive(ctx, day, result.Reports); err != nil {
			log.Printf("[reportgen] archive failed: %v", err)
		}
	}

	printSummary(result.Reports)
}

func parseDate(arg string) (time.Time, error) {
	if arg == "yesterday" {
		return time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour), nil
	}
	d, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", arg, err)
	}
	return d, nil
}

// printSummary renders the system-wide "All" report's route_table to
// stdout: the system-wide row, one row per mode aggregate, and one row
// per route.
func printSummary(reports []model.RouteReport) {
	var all model.RouteReport
	found := false
	for _, r := range reports {
		if r.RouteID == "All" {
			all = r
			found = true
			break
		}
	}
	if !found {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Route", "Health", "On-Time %", "Bunched %", "Gapped %", "Coverage"})
	for _, row := range all.RouteTable {
		table.Append([]string{
			row.RouteID,
			fmt.Sprintf("%.2f", row.OverallHealth),
			fmt.Sprintf("%.2f", row.OnTimePercentage),
			fmt.Sprintf("%.2f", row.BunchedPercentage),
			fmt.Sprintf("%.2f", row.GappedPercentage),
			fmt.Sprintf("%.2f", row.Coverage),
		})
	}
	table.Render()
}

func maskDatabaseURL(url string) string {
	atIdx := strings.Index(url, "@")
	if atIdx == -1 {
		return url
	}
	prefix := url[:strings.Index(url, "://")+3]
	rest := url[len(prefix):]
	colonIdx := strings.Index(rest, ":")
	if colonIdx == -1 || colonIdx > strings.Index(rest, "@") {
		return url
	}
	return fmt.Sprintf("%s%s:***@%s", prefix, rest[:colonIdx], rest[strings.Index(rest, "@")+1:])
}
