package config

import "time"

// Application constants shared across the pipeline and the server.
const (
	AppName    = "crimescope"
	AppVersion = "1.0.0"

	// Default directory layout, relative to the base directory
	DefaultDataDir    = "data"
	DefaultReportsDir = "data/reports"
	DefaultCacheDir   = "data/cache"
	DefaultLogsDir    = "logs"

	// Well-known output files
	ProcessedSnapshotFile = "processed_snapshot.csv"
	OverviewJSONFile      = "overview.json"
	ReportWorkbookFile    = "crime_report.xlsx"
	RunManifestFile       = "run_manifest.json"

	// Rate limiting defaults for the exhibits server
	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 25

	// Server timeouts
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
