package agent

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_StartStop(t *testing.T) {
	var ticks atomic.Int64
	s := NewScheduler(5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})

	if s.IsRunning() {
		t.Fatal("fresh scheduler must not be running")
	}

	s.Start()
	if !s.IsRunning() {
		t.Fatal("scheduler not running after Start")
	}

	deadline := time.After(time.Second)
	for ticks.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("scheduler never ticked")
		case <-time.After(time.Millisecond):
		}
	}

	s.Stop()
	if s.IsRunning() {
		t.Fatal("scheduler still running after Stop")
	}

	stopped := ticks.Load()
	time.Sleep(25 * time.Millisecond)
	if ticks.Load() > stopped+1 {
		t.Error("ticks continued after Stop")
	}
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := NewScheduler(time.Minute, func(ctx context.Context) {})
	s.Stop()
	s.Stop()
	if s.IsRunning() {
		t.Fatal("stopped scheduler reports running")
	}
}

func TestScheduler_RestartOnDoubleStart(t *testing.T) {
	s := NewScheduler(time.Minute, func(ctx context.Context) {})
	s.Start()
	s.Start()
	if !s.IsRunning() {
		t.Fatal("scheduler not running after restart")
	}
	s.Stop()
}
