// Package pipeline orchestrates one day's report run: it loads the
// day's location pings once, fans a worker out per active route
// (§5), runs each route through clean -> reconstruct -> events, and
// hands the successful reports to the aggregator. Grounded on the
// teacher's scheduled-job dispatch in main.go, generalized from
// daily-job selection to per-route parallelism via errgroup.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/sfmta/transitreport/internal/aggregate"
	"github.com/sfmta/transitreport/internal/clean"
	"github.com/sfmta/transitreport/internal/config"
	"github.com/sfmta/transitreport/internal/events"
	"github.com/sfmta/transitreport/internal/model"
	"github.com/sfmta/transitreport/internal/reconstruct"
	"github.com/sfmta/transitreport/internal/store"
)

// routeFailure records a per-route error for the §7 skip-and-log path:
// which route, which stage, and the wrapped cause.
type routeFailure struct {
	RouteID string
	Stage   string
	Err     error
}

func (f routeFailure) Error() string {
	return fmt.Sprintf("route %s at %s: %v", f.RouteID, f.Stage, f.Err)
}

// Result is one run's outcome: the final report list (aggregates
// prepended) plus the per-route failures that were logged and
// skipped.
type Result struct {
	RunID    string
	Reports  []model.RouteReport
	Failures []error
}

// Run executes the full daily pipeline for date d (§5, §7): load
// locations once, process routes concurrently up to cfg.WorkerCount,
// then aggregate whatever routes succeeded. Returns an error only for
// infrastructure-level failure (§7); per-route failures are collected
// in Result.Failures and never fail the run. If no route reported,
// Result.Reports is an empty list and a warning is logged.
func Run(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, d time.Time) (Result, error) {
	runID := uuid.New().String()

	locations, err := store.LoadLocations(ctx, pool, d, cfg.TimezoneOffset)
	if err != nil {
		return Result{}, fmt.Errorf("load locations: %w", err)
	}

	routeIDs := store.ActiveRouteIDs(locations)
	log.Printf("[pipeline] run %s: %d routes active for %s", runID, len(routeIDs), d.Format("2006-01-02"))

	var mu sync.Mutex
	var reports []model.RouteReport
	var failures []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.WorkerCount)

	for _, routeID := range routeIDs {
		routeID := routeID
		g.Go(func() error {
			samples := store.SamplesForRoute(locations, routeID)
			report, err := processRoute(gctx, pool, cfg, d, routeID, samples)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[pipeline] %v", err)
				failures = append(failures, err)
				return nil // cooperative skip, not a pipeline-wide abort (§7)
			}
			reports = append(reports, report)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("pipeline run %s: %w", runID, err)
	}

	if len(reports) == 0 {
		log.Printf("[pipeline] WARNING: no routes produced a report for %s; writing an empty report list", d.Format("2006-01-02"))
		return Result{RunID: runID, Reports: []model.RouteReport{}, Failures: failures}, nil
	}

	final := model.ScalePercentages(aggregate.Aggregate(reports))
	return Result{RunID: runID, Reports: final, Failures: failures}, nil
}

// processRoute runs stages 4.4-4.10 for a single route. Any failure
// is wrapped into a routeFailure naming the stage it occurred in.
func processRoute(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, d time.Time, routeID string, samples []model.LocationSample) (model.RouteReport, error) {
	route, err := store.LoadRoute(ctx, pool, routeID, d)
	if err != nil {
		return model.RouteReport{}, routeFailure{RouteID: routeID, Stage: "load route", Err: err}
	}

	sched, inService, err := store.LoadSchedule(ctx, pool, routeID, d)
	if err != nil {
		return model.RouteReport{}, routeFailure{RouteID: routeID, Stage: "load schedule", Err: err}
	}
	if !inService {
		return model.RouteReport{}, routeFailure{RouteID: routeID, Stage: "load schedule", Err: fmt.Errorf("route not in service on %s", d.Format("2006-01-02"))}
	}

	cleaned := clean.Clean(samples, route)
	stopTimes := reconstruct.Reconstruct(cleaned, route)

	// A route with observed arrivals but no stop with more than one
	// arrival has zero consecutive-arrival intervals: bunched/gapped
	// percentage has nothing to divide by, and the Python original
	// raises ZeroDivisionError here and drops the route rather than
	// emit a spuriously zeroed report (§7, §8).
	if stopTimes.TotalIntervals() == 0 {
		return model.RouteReport{}, routeFailure{RouteID: routeID, Stage: "compute metrics", Err: fmt.Errorf("zero reconstructed intervals")}
	}

	th := events.ComputeThresholds(sched.CommonInterval, cfg.BunchThreshold, cfg.GapThreshold)
	stopKeys := events.SortedStopKeys(stopTimes)
	problems := events.DetectProblems(stopTimes, stopKeys, th)

	onTime := events.ClassifyOnTime(stopTimes, sched, route, d)
	if onTime.TotalScheduled == 0 {
		return model.RouteReport{}, routeFailure{RouteID: routeID, Stage: "compute metrics", Err: fmt.Errorf("zero scheduled slots")}
	}
	metrics := events.ComputeMetrics(countKind(problems, model.ProblemBunch), countKind(problems, model.ProblemGap), stopTimes.TotalIntervals(), onTime)

	chart := events.BuildTimeSeries(problems, d, cfg.BinMinutes)
	mapData := events.BuildBunchMap(problems, route)

	// Metrics stay as [0,1] fractions through this struct: aggregate.Aggregate
	// weights and sums across routes in fraction space, and the
	// percentage scaling (§9.2) is applied once, to the complete
	// report+aggregate list, at the end of Run.
	report := model.RouteReport{
		RouteID:           routeID,
		RouteName:         route.Name,
		RouteType:         string(route.Type),
		Date:              d,
		OverallHealth:     metrics.Health,
		NumBunches:        metrics.Bunches,
		NumGaps:           metrics.Gaps,
		BunchedPercentage: metrics.BunchedPct,
		GappedPercentage:  metrics.GappedPct,
		TotalIntervals:    metrics.Intervals,
		OnTimePercentage:  metrics.OnTimePct,
		ScheduledStops:    metrics.TotalScheduled,
		Coverage:          metrics.Coverage,
		LineChart:         chart,
		MapData:           mapData,
		RouteTable: []model.RouteTableRow{{
			RouteID:           routeID,
			RouteName:         route.Name,
			OverallHealth:     metrics.Health,
			BunchedPercentage: metrics.BunchedPct,
			GappedPercentage:  metrics.GappedPct,
			OnTimePercentage:  metrics.OnTimePct,
			Coverage:          metrics.Coverage,
		}},
	}
	return report, nil
}

func countKind(problems []model.Problem, kind model.ProblemKind) int {
	n := 0
	for _, p := range problems {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
