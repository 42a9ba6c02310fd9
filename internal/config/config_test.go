package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimescope/pkg/contracts/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.Pipeline.TopN)
	assert.Equal(t, "homicide", cfg.Pipeline.TrendCategory)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Server.RateLimit.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Pipeline.TopN)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
pipeline:
  input_path: data/snapshot.csv
  top_n: 5
  categories:
    - homicide
    - robbery
server:
  port: 9090
logging:
  level: debug
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "data/snapshot.csv", cfg.Pipeline.InputPath)
	assert.Equal(t, 5, cfg.Pipeline.TopN)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep defaults
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
pipeline:
  top_n: 5
`)
	t.Setenv("CRIMESCOPE_PIPELINE_TOP_N", "3")
	t.Setenv("CRIMESCOPE_SERVER_PORT", "7070")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.TopN)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "pipeline: [not a map")

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "top_n zero",
			mutate:  func(c *Config) { c.Pipeline.TopN = 0 },
			wantErr: "validation failed",
		},
		{
			name:    "unknown category",
			mutate:  func(c *Config) { c.Pipeline.Categories = []string{"arson"} },
			wantErr: `unknown category "arson"`,
		},
		{
			name:    "unknown trend category",
			mutate:  func(c *Config) { c.Pipeline.TrendCategory = "arson" },
			wantErr: "unknown trend category",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "validation failed",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "validation failed",
		},
		{
			name:   "category labels are accepted",
			mutate: func(c *Config) { c.Pipeline.Categories = []string{"Auto Theft", "BREAKENTER"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPipelineCategories(t *testing.T) {
	cfg := Default()

	// Empty means the full canonical set
	assert.Equal(t, domain.Categories(), cfg.PipelineCategories())

	cfg.Pipeline.Categories = []string{"Robbery", "homicide"}
	assert.Equal(t,
		[]domain.Category{domain.CategoryRobbery, domain.CategoryHomicide},
		cfg.PipelineCategories())
}

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	paths, err := ResolvePaths(PathsConfig{
		BaseDir:    base,
		DataDir:    DefaultDataDir,
		ReportsDir: DefaultReportsDir,
		CacheDir:   DefaultCacheDir,
		LogsDir:    DefaultLogsDir,
	})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, filepath.Join(base, DefaultReportsDir))

	assert.Equal(t, filepath.Join(base, DefaultReportsDir, "overview.json"), paths.GetReportPath("overview.json"))
	assert.Equal(t, filepath.Join(base, DefaultCacheDir, ProcessedSnapshotFile), paths.ProcessedSnapshotPath())
	assert.Equal(t, filepath.Join(base, DefaultReportsDir, ReportWorkbookFile), paths.ReportWorkbookPath())
}
