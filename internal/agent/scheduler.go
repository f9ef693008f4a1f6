package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler drives a recurring job on a fixed interval. It replaces the
// usual global interval handle with an owned object so start/stop state
// is testable and scoped.
//
// Stop only prevents future ticks; a run already in flight is not
// aborted.
type Scheduler struct {
	interval time.Duration
	job      func(ctx context.Context)
	logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewScheduler creates a scheduler for the given job.
func NewScheduler(interval time.Duration, job func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		logger:   slog.Default(),
	}
}

// Start begins the ticker loop. Starting a running scheduler restarts it.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	go s.loop(ctx)
	s.logger.Info("scheduler started", "interval", s.interval)
}

// Stop prevents future ticks. Safe to call when not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cancel()
	s.running = false
	s.logger.Info("scheduler stopped")
}

// IsRunning reports whether the ticker loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.job(ctx)
		}
	}
}
