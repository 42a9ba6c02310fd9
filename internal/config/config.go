package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"crimescope/pkg/contracts/domain"
)

// Config represents the complete application configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
}

// PipelineConfig controls the batch aggregation run.
type PipelineConfig struct {
	// InputPath is the snapshot file to load (.csv or .xlsx).
	InputPath string `yaml:"input_path" envconfig:"INPUT_PATH"`
	// Categories restricts which categories are aggregated and ranked;
	// empty means the full canonical set.
	Categories []string `yaml:"categories" envconfig:"CATEGORIES"`
	// TopN is the ranking depth for the per-category exhibits.
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	// TrendHoodID and TrendCategory select the time-series exhibit.
	TrendHoodID   int    `yaml:"trend_hood_id" envconfig:"TREND_HOOD_ID"`
	TrendCategory string `yaml:"trend_category" envconfig:"TREND_CATEGORY"`
}

// ServerConfig contains the exhibits HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the configurable base directories.
type PathsConfig struct {
	// BaseDir anchors the data/reports/logs layout; empty means the
	// current working directory.
	BaseDir    string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	CacheDir   string `yaml:"cache_dir" envconfig:"CACHE_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			TopN:          10,
			TrendCategory: domain.CategoryHomicide.String(),
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/crimescope.log",
		},
		Paths: PathsConfig{
			DataDir:    DefaultDataDir,
			ReportsDir: DefaultReportsDir,
			CacheDir:   DefaultCacheDir,
			LogsDir:    DefaultLogsDir,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// CRIMESCOPE_* environment variables, then validates it.
func Load() (*Config, error) {
	return LoadFrom("config.yaml")
}

// LoadFrom is Load with an explicit YAML file path; a missing file is not
// an error, it simply contributes nothing.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if err := envconfig.Process("CRIMESCOPE", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks structural constraints and that every configured
// category name resolves against the canonical set.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for _, name := range c.Pipeline.Categories {
		if _, ok := domain.ParseCategory(name); !ok {
			return fmt.Errorf("config validation failed: unknown category %q", name)
		}
	}
	if c.Pipeline.TrendCategory != "" {
		if _, ok := domain.ParseCategory(c.Pipeline.TrendCategory); !ok {
			return fmt.Errorf("config validation failed: unknown trend category %q", c.Pipeline.TrendCategory)
		}
	}

	return nil
}

// PipelineCategories resolves the configured category names, defaulting to
// the full canonical set when none are configured.
func (c *Config) PipelineCategories() []domain.Category {
	if len(c.Pipeline.Categories) == 0 {
		return domain.Categories()
	}
	categories := make([]domain.Category, 0, len(c.Pipeline.Categories))
	for _, name := range c.Pipeline.Categories {
		if cat, ok := domain.ParseCategory(name); ok {
			categories = append(categories, cat)
		}
	}
	return categories
}
