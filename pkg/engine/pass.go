package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Triggers name what started a pass.
const (
	TriggerRender = "render"
	TriggerState  = "state"
)

// Pass is a handle on one render pass. It finishes exactly once: with a nil
// error when its tree was committed, otherwise with the reason it was not.
type Pass struct {
	id      uint64
	trigger string
	started time.Time
	units   int

	ctx  context.Context
	span trace.Span

	done chan struct{}
	err  error
}

func newPass(id uint64, trigger string) *Pass {
	return &Pass{
		id:      id,
		trigger: trigger,
		started: time.Now(),
		done:    make(chan struct{}),
	}
}

// ID returns the pass number. Passes of one engine are numbered from 1.
func (p *Pass) ID() uint64 { return p.id }

// Trigger returns TriggerRender or TriggerState.
func (p *Pass) Trigger() string { return p.trigger }

// Done is closed when the pass finishes.
func (p *Pass) Done() <-chan struct{} { return p.done }

// Err returns the pass result, or nil while it is still running.
func (p *Pass) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Finished reports whether the pass has finished.
func (p *Pass) Finished() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the pass finishes or ctx is done.
func (p *Pass) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pass) finish(err error) {
	if p.Finished() {
		return
	}
	p.err = err
	close(p.done)
}
