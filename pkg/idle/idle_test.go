package idle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestBudget(t *testing.T) {
	b := NewBudget(2)
	if b.TimeRemaining() <= 0 {
		t.Fatal("first check should have time")
	}
	if b.TimeRemaining() <= 0 {
		t.Fatal("second check should have time")
	}
	if got := b.TimeRemaining(); got != 0 {
		t.Errorf("TimeRemaining() = %v after budget, want 0", got)
	}
}

func TestClockDeadline(t *testing.T) {
	now := time.Unix(100, 0)
	d := ClockDeadline{End: now.Add(5 * time.Millisecond), Now: func() time.Time { return now }}
	if got := d.TimeRemaining(); got != 5*time.Millisecond {
		t.Errorf("TimeRemaining() = %v, want 5ms", got)
	}
	now = now.Add(time.Second)
	if got := d.TimeRemaining(); got != 0 {
		t.Errorf("TimeRemaining() past end = %v, want 0", got)
	}
}

func TestManualDefersReRegistration(t *testing.T) {
	m := NewManual()
	runs := 0
	var cb Callback
	cb = func(Deadline) {
		runs++
		m.RequestIdleCallback(cb)
	}
	m.RequestIdleCallback(cb)

	if n := m.Step(Unbounded{}); n != 1 {
		t.Fatalf("Step ran %d callbacks, want 1", n)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}

	m.StepN(3, func() Deadline { return Unbounded{} })
	if runs != 4 {
		t.Errorf("runs = %d, want 4", runs)
	}
}

func TestLoopRunsTasksAndIdle(t *testing.T) {
	l := NewLoop(LoopConfig{FrameInterval: time.Millisecond, Slice: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	var idleRuns atomic.Int32
	ran := make(chan struct{})
	if err := l.Submit(func() {
		l.RequestIdleCallback(func(d Deadline) {
			if d.TimeRemaining() > time.Millisecond {
				t.Errorf("slice larger than configured: %v", d.TimeRemaining())
			}
			idleRuns.Add(1)
			close(ran)
		})
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("idle callback never ran")
	}

	called := false
	if err := l.Do(ctx, func() { called = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !called {
		t.Error("Do returned before running fn")
	}

	cancel()
	if err := <-errc; err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	if err := l.Submit(func() {}); err != ErrLoopStopped {
		t.Errorf("Submit after stop = %v, want ErrLoopStopped", err)
	}
	if idleRuns.Load() != 1 {
		t.Errorf("idle ran %d times, want 1", idleRuns.Load())
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	l := NewLoop(LoopConfig{FrameInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	_ = l.Submit(func() { panic("boom") })
	ok := false
	if err := l.Do(ctx, func() { ok = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ok {
		t.Error("loop stopped after a panicking task")
	}
}
