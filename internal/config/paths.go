package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved absolute directories used by the application.
// It is the single source of truth for file placement: exporters and the
// report renderer never build paths themselves.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	CacheDir   string
	LogsDir    string
}

// ResolvePaths turns the configured (possibly relative) directories into
// absolute paths anchored at the base directory.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(abs, dir)
	}

	return &Paths{
		BaseDir:    abs,
		DataDir:    resolve(cfg.DataDir, DefaultDataDir),
		ReportsDir: resolve(cfg.ReportsDir, DefaultReportsDir),
		CacheDir:   resolve(cfg.CacheDir, DefaultCacheDir),
		LogsDir:    resolve(cfg.LogsDir, DefaultLogsDir),
	}, nil
}

// EnsureDirectories creates every directory the pipeline writes into.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ReportsDir, p.CacheDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the path of a file in the reports directory.
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetCachePath returns the path of a file in the cache directory.
func (p *Paths) GetCachePath(filename string) string {
	return filepath.Join(p.CacheDir, filename)
}

// GetLogPath returns the path of a file in the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// ProcessedSnapshotPath is the well-known location of the processed
// snapshot cache.
func (p *Paths) ProcessedSnapshotPath() string {
	return p.GetCachePath(ProcessedSnapshotFile)
}

// ReportWorkbookPath is the well-known location of the Excel report.
func (p *Paths) ReportWorkbookPath() string {
	return p.GetReportPath(ReportWorkbookFile)
}
