package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		SnapshotDir   string   `yaml:"snapshot_dir"`
		SnapshotFiles []string `yaml:"snapshot_files"`
		Symbol        string   `yaml:"symbol"`
	} `yaml:"data_source"`
	Freshness struct {
		TickSeconds int `yaml:"tick_seconds"`
		BarSeconds  int `yaml:"bar_seconds"`
	} `yaml:"freshness"`
	Lookback struct {
		M5 int `yaml:"m5"`
		H1 int `yaml:"h1"`
		D1 int `yaml:"d1"`
	} `yaml:"lookback"`
	Signal struct {
		ClassifyThreshold float64 `yaml:"classify_threshold"`
		ADXGateThreshold  float64 `yaml:"adx_gate_threshold"`
		ADXRangingFactor  float64 `yaml:"adx_ranging_factor"`
		MinPatternConf    float64 `yaml:"min_pattern_confidence"`
	} `yaml:"signal"`
	Risk struct {
		Percent     float64 `yaml:"percent"`
		MinUnit     float64 `yaml:"min_unit"`
		StopATRMult float64 `yaml:"stop_atr_mult"`
	} `yaml:"risk"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SNAPSHOT_DIR"); v != "" {
		cfg.DataSource.SnapshotDir = v
	}
	if v := os.Getenv("SNAPSHOT_FILES"); v != "" {
		cfg.DataSource.SnapshotFiles = strings.Split(v, ",")
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("TICK_FRESHNESS_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Freshness.TickSeconds = n
		}
	}
	if v := os.Getenv("RISK_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Risk.Percent = f
		}
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "XAUEUR"
	}
	if len(cfg.DataSource.SnapshotFiles) == 0 {
		cfg.DataSource.SnapshotFiles = []string{
			"xaueur_stream.json", "xaueur_live.json", "xaueur_data.json",
		}
	}
	if cfg.Freshness.TickSeconds == 0 {
		cfg.Freshness.TickSeconds = 30
	}
	if cfg.Freshness.BarSeconds == 0 {
		cfg.Freshness.BarSeconds = 300
	}
	if cfg.Lookback.M5 == 0 {
		cfg.Lookback.M5 = 200
	}
	if cfg.Lookback.H1 == 0 {
		cfg.Lookback.H1 = 120
	}
	if cfg.Lookback.D1 == 0 {
		cfg.Lookback.D1 = 60
	}
	if cfg.Signal.ClassifyThreshold == 0 {
		cfg.Signal.ClassifyThreshold = 35
	}
	if cfg.Signal.ADXGateThreshold == 0 {
		cfg.Signal.ADXGateThreshold = 20
	}
	if cfg.Signal.ADXRangingFactor == 0 {
		cfg.Signal.ADXRangingFactor = 0.5
	}
	if cfg.Signal.MinPatternConf == 0 {
		cfg.Signal.MinPatternConf = 0.3
	}
	if cfg.Risk.Percent == 0 {
		cfg.Risk.Percent = 0.01
	}
	if cfg.Risk.MinUnit == 0 {
		cfg.Risk.MinUnit = 0.01
	}
	if cfg.Risk.StopATRMult == 0 {
		cfg.Risk.StopATRMult = 2.0
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "*/30 * * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and coherent.
func (c *Config) Validate() error {
	if c.DataSource.SnapshotDir == "" {
		return fmt.Errorf("data_source.snapshot_dir is required")
	}
	if c.DataSource.Symbol == "" {
		return fmt.Errorf("data_source.symbol is required")
	}
	if c.Signal.ClassifyThreshold <= 0 {
		return fmt.Errorf("signal.classify_threshold must be positive")
	}
	if c.Signal.ADXRangingFactor <= 0 || c.Signal.ADXRangingFactor > 1 {
		return fmt.Errorf("signal.adx_ranging_factor must be in (0,1]")
	}
	if c.Risk.Percent <= 0 || c.Risk.Percent >= 1 {
		return fmt.Errorf("risk.percent must be in (0,1)")
	}
	return nil
}
