package engine

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// DefaultYieldThreshold is the minimum idle time required to start another
// unit of work.
const DefaultYieldThreshold = time.Millisecond

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithYieldThreshold sets the remaining-time threshold below which the
// work loop yields. Default: DefaultYieldThreshold.
func WithYieldThreshold(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.yieldThreshold = d
		}
	}
}

// WithLenientHooks logs hook order violations instead of failing the pass.
func WithLenientHooks(lenient bool) Option {
	return func(e *Engine) {
		e.lenient = lenient
	}
}

// WithRegisterer registers engine metrics with reg. Without it no metrics
// are recorded.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.metrics = newMetrics(reg)
	}
}

// WithTracer sets the tracer for pass and commit spans. Default: the
// global provider's "viridian" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tracer = t
		}
	}
}
