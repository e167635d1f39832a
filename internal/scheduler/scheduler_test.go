package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAddEveryRunsJob(t *testing.T) {
	s := New()
	defer s.Stop()

	var runs atomic.Int32
	if err := s.AddEvery("tick", 10*time.Millisecond, func() {
		runs.Add(1)
	}); err != nil {
		t.Fatalf("AddEvery: %v", err)
	}
	s.Start()

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if runs.Load() == 0 {
		t.Fatal("job never ran")
	}
}

func TestAddSpecRejectsInvalidExpression(t *testing.T) {
	s := New()
	if err := s.AddSpec("bad", "not a cron spec", func() {}); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestStopWaitsForRunningJob(t *testing.T) {
	s := New()

	started := make(chan struct{})
	var finished atomic.Bool
	s.AddEvery("slow", 10*time.Millisecond, func() {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
	})
	s.Start()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}
	s.Stop()
	if !finished.Load() {
		t.Error("Stop returned before the running job finished")
	}
}
