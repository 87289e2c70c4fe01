package idle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	// ErrLoopRunning is returned when Run is called on a running loop.
	ErrLoopRunning = errors.New("idle: loop is already running")

	// ErrLoopStopped is returned by Submit after the loop has exited.
	ErrLoopStopped = errors.New("idle: loop has stopped")
)

const (
	// DefaultFrameInterval is the tick at which idle callbacks run when no
	// task wakes the loop earlier.
	DefaultFrameInterval = 16 * time.Millisecond

	// DefaultSlice is the time budget handed to idle callbacks.
	DefaultSlice = 12 * time.Millisecond
)

// LoopConfig configures a Loop.
type LoopConfig struct {
	// FrameInterval is the idle tick. Default: DefaultFrameInterval.
	FrameInterval time.Duration

	// Slice is the budget of each idle invocation. Default: DefaultSlice.
	Slice time.Duration

	// Logger receives task panics. Default: slog.Default().
	Logger *slog.Logger
}

// Loop runs submitted tasks and idle callbacks on a single goroutine.
//
// Each iteration drains the task queue, then runs the idle callbacks that
// were registered before the iteration began, then sleeps until the next
// frame tick or until a task is submitted. A callback that re-registers
// itself therefore runs at most once per iteration.
type Loop struct {
	cfg LoopConfig

	mu      sync.Mutex
	tasks   []func()
	idle    []Callback
	running bool
	stopped bool

	wake chan struct{}
	now  func() time.Time
}

// NewLoop creates a loop. It does nothing until Run is called.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if cfg.Slice <= 0 {
		cfg.Slice = DefaultSlice
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loop{
		cfg:  cfg,
		wake: make(chan struct{}, 1),
		now:  time.Now,
	}
}

// RequestIdleCallback implements Scheduler. It may be called from any
// goroutine.
func (l *Loop) RequestIdleCallback(cb Callback) {
	l.mu.Lock()
	l.idle = append(l.idle, cb)
	l.mu.Unlock()
}

// Submit queues fn to run on the loop goroutine and wakes the loop.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrLoopStopped
	}
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Submit(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the loop until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.stopped = true
		l.tasks = nil
		l.mu.Unlock()
	}()

	ticker := time.NewTicker(l.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		l.runTasks()
		l.runIdle()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-l.wake:
		}
	}
}

func (l *Loop) runTasks() {
	l.mu.Lock()
	tasks := l.tasks
	l.tasks = nil
	l.mu.Unlock()

	for _, t := range tasks {
		l.safely("task", func() { t() })
	}
}

func (l *Loop) runIdle() {
	l.mu.Lock()
	batch := l.idle
	l.idle = nil
	l.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	d := ClockDeadline{End: l.now().Add(l.cfg.Slice), Now: l.now}
	for _, cb := range batch {
		l.safely("idle callback", func() { cb(d) })
	}
}

func (l *Loop) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.cfg.Logger.Error("idle loop recovered panic", "in", what, "panic", r)
		}
	}()
	fn()
}
