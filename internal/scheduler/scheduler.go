package scheduler

import (
	"fmt"
	"log"

	"github.com/berelzbeheer/BerelzDashboard/internal/cache"
	"github.com/berelzbeheer/BerelzDashboard/internal/pipeline"
	"github.com/berelzbeheer/BerelzDashboard/internal/recorder"
	"github.com/berelzbeheer/BerelzDashboard/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic signal refresh.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Cache    *cache.Cache
	Recorder recorder.Recorder
}

// NewScheduler creates a new Scheduler.
func NewScheduler(p *pipeline.Pipeline, c *cache.Cache, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Cache:    c,
		Recorder: rec,
	}
}

// Register registers the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	res := s.Cache.Refresh(s.Pipeline.Pass)
	if res == nil {
		log.Println("[ERROR] refresh produced no result")
		return
	}

	log.Printf("[INFO] refresh complete\n%s", report.FormatSignal(res))

	if err := s.Recorder.RecordSignal(recorder.NewSignalRecord(res)); err != nil {
		log.Printf("[ERROR] record signal: %v", err)
	}
}
