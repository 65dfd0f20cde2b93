package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/cache"
	"github.com/berelzbeheer/BerelzDashboard/internal/config"
	"github.com/berelzbeheer/BerelzDashboard/internal/pipeline"
	"github.com/berelzbeheer/BerelzDashboard/internal/recorder"
	"github.com/berelzbeheer/BerelzDashboard/internal/scheduler"
	"github.com/berelzbeheer/BerelzDashboard/internal/snapshot"
)

const syntheticBasePrice = 2400.0

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] BerelzDashboard engine starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init snapshot reader and synthetic fallback
	reader := snapshot.NewReader(
		cfg.DataSource.SnapshotDir,
		cfg.DataSource.SnapshotFiles,
		time.Duration(cfg.Freshness.TickSeconds)*time.Second,
		time.Duration(cfg.Freshness.BarSeconds)*time.Second,
	)
	gen := snapshot.NewGenerator(cfg.DataSource.Symbol, syntheticBasePrice, cfg.Lookback.M5)
	log.Printf("[INFO] watching %s for %v", cfg.DataSource.SnapshotDir, cfg.DataSource.SnapshotFiles)

	// Init pipeline and result cache
	pipe := pipeline.New(reader, gen, cfg)
	store := cache.New(time.Duration(cfg.Freshness.TickSeconds) * time.Second)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init scheduler
	sched := scheduler.NewScheduler(pipe, store, rec)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: compute immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, computing signal now")
		go sched.RunNow()
	}

	log.Println("[INFO] engine is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] engine stopped")
}
