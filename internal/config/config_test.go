package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Symbol != "XAUEUR" {
		t.Errorf("symbol = %q", cfg.DataSource.Symbol)
	}
	if len(cfg.DataSource.SnapshotFiles) != 3 || cfg.DataSource.SnapshotFiles[0] != "xaueur_stream.json" {
		t.Errorf("snapshot files = %v", cfg.DataSource.SnapshotFiles)
	}
	if cfg.Freshness.TickSeconds != 30 || cfg.Freshness.BarSeconds != 300 {
		t.Errorf("freshness = %d/%d", cfg.Freshness.TickSeconds, cfg.Freshness.BarSeconds)
	}
	if cfg.Signal.ClassifyThreshold != 35 {
		t.Errorf("classify threshold = %.1f", cfg.Signal.ClassifyThreshold)
	}
	if cfg.Risk.Percent != 0.01 {
		t.Errorf("risk percent = %.4f", cfg.Risk.Percent)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_source:
  snapshot_dir: /var/mt5
  symbol: XAUUSD
signal:
  classify_threshold: 40
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.SnapshotDir != "/var/mt5" {
		t.Errorf("snapshot dir = %q", cfg.DataSource.SnapshotDir)
	}
	if cfg.DataSource.Symbol != "XAUUSD" {
		t.Errorf("symbol = %q", cfg.DataSource.Symbol)
	}
	if cfg.Signal.ClassifyThreshold != 40 {
		t.Errorf("classify threshold = %.1f", cfg.Signal.ClassifyThreshold)
	}
	// Unset fields still get defaults.
	if cfg.Risk.MinUnit != 0.01 {
		t.Errorf("min unit = %.4f", cfg.Risk.MinUnit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SNAPSHOT_DIR", "/data/exports")
	t.Setenv("SYMBOL", "XAGEUR")
	t.Setenv("TICK_FRESHNESS_SECONDS", "60")
	t.Setenv("REFRESH_CRON", "0 * * * * *")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.SnapshotDir != "/data/exports" {
		t.Errorf("snapshot dir = %q", cfg.DataSource.SnapshotDir)
	}
	if cfg.DataSource.Symbol != "XAGEUR" {
		t.Errorf("symbol = %q", cfg.DataSource.Symbol)
	}
	if cfg.Freshness.TickSeconds != 60 {
		t.Errorf("tick seconds = %d", cfg.Freshness.TickSeconds)
	}
	if cfg.Schedule.RefreshCron != "0 * * * * *" {
		t.Errorf("refresh cron = %q", cfg.Schedule.RefreshCron)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without a snapshot dir")
	}
	cfg.DataSource.SnapshotDir = "/var/mt5"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Risk.Percent = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for out-of-range risk percent")
	}
}
