// Package scheduler triggers the daily expiry alert scan in-process.
// Deployments with a platform scheduler should disable it and run
// cmd/alertscan instead; both paths share the same engine entry point.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/logger"
)

// scanTimeout bounds a whole scan, including its mail sends.
const scanTimeout = 15 * time.Minute

// Scheduler runs the alert engine once per day at a fixed hour.
type Scheduler struct {
	cron   *cron.Cron
	engine domain.AlertEngine
}

// New creates a scheduler firing daily at the given local hour.
func New(hour int, engine domain.AlertEngine) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		engine: engine,
	}

	spec := fmt.Sprintf("0 %d * * *", hour)
	if _, err := s.cron.AddFunc(spec, s.runScan); err != nil {
		return nil, fmt.Errorf("failed to schedule alert scan: %w", err)
	}
	return s, nil
}

func (s *Scheduler) runScan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	if _, err := s.engine.Scan(ctx, time.Now()); err != nil {
		logger.Error("Scheduled alert scan failed", "error", err)
	}
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Alert scheduler started")
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Alert scheduler stopped")
}
