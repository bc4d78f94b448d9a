// Package config reads the environment-driven knobs the report
// pipeline needs, the same way the teacher's main.go reads
// DATABASE_URL: no config files, no flags beyond what the CLI itself
// parses, environment variables with sane defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime knobs for one invocation of the report
// pipeline.
type Config struct {
	DatabaseURL string

	// TimezoneOffset is the fixed offset applied to convert UTC
	// location timestamps into the operating day's local window
	// (§6: "D 07:00 UTC" for Pacific Daylight Time). It is a
	// configuration constant, not auto-derived from a tz database,
	// exactly as the spec requires.
	TimezoneOffset time.Duration

	// BunchThreshold and GapThreshold are the §4.6 multipliers applied
	// to a route's common scheduled interval (defaults 0.2 and 1.5).
	BunchThreshold float64
	GapThreshold   float64

	// BinMinutes is the §4.9 time-series bin width in minutes.
	BinMinutes int

	// WorkerCount is the number of concurrent per-route pipeline
	// workers (§5).
	WorkerCount int
}

const (
	defaultTimezoneOffsetHours = -7 // PDT, per §6
	defaultBunchThreshold      = 0.2
	defaultGapThreshold        = 1.5
	defaultBinMinutes          = 10
)

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() (Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := Config{
		DatabaseURL:    dbURL,
		TimezoneOffset: time.Duration(defaultTimezoneOffsetHours) * time.Hour,
		BunchThreshold: defaultBunchThreshold,
		GapThreshold:   defaultGapThreshold,
		BinMinutes:     defaultBinMinutes,
		WorkerCount:    defaultWorkerCount(),
	}

	if v := os.Getenv("REPORT_TIMEZONE_OFFSET_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REPORT_TIMEZONE_OFFSET_HOURS: %w", err)
		}
		cfg.TimezoneOffset = time.Duration(hours) * time.Hour
	}
	if v := os.Getenv("REPORT_BUNCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("REPORT_BUNCH_THRESHOLD: %w", err)
		}
		cfg.BunchThreshold = f
	}
	if v := os.Getenv("REPORT_GAP_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("REPORT_GAP_THRESHOLD: %w", err)
		}
		cfg.GapThreshold = f
	}
	if v := os.Getenv("REPORT_BIN_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REPORT_BIN_MINUTES: %w", err)
		}
		cfg.BinMinutes = n
	}
	if v := os.Getenv("REPORT_WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REPORT_WORKER_COUNT: %w", err)
		}
		cfg.WorkerCount = n
	}

	return cfg, nil
}
