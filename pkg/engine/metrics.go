package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the engine's Prometheus collectors. A nil *metrics records
// nothing.
type metrics struct {
	units          prometheus.Counter
	yields         prometheus.Counter
	passes         *prometheus.CounterVec
	aborted        *prometheus.CounterVec
	commits        prometheus.Counter
	commitOps      *prometheus.CounterVec
	commitDuration prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	const ns, sub = "viridian", "engine"

	return &metrics{
		units: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "units_total",
			Help:      "Units of work performed",
		}),
		yields: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "yields_total",
			Help:      "Times the work loop yielded with work remaining",
		}),
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "passes_total",
			Help:      "Render passes started",
		}, []string{"trigger"}),
		aborted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "aborted_passes_total",
			Help:      "Render passes that finished without committing",
		}, []string{"reason"}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "commits_total",
			Help:      "Render passes committed to the host",
		}),
		commitOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "commit_ops_total",
			Help:      "Fiber effects applied during commit",
		}, []string{"op"}),
		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "commit_duration_seconds",
			Help:      "Time spent applying a commit",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}

func (m *metrics) unit() {
	if m == nil {
		return
	}
	m.units.Inc()
}

func (m *metrics) yield() {
	if m == nil {
		return
	}
	m.yields.Inc()
}

func (m *metrics) passStarted(trigger string) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(trigger).Inc()
}

func (m *metrics) passAborted(reason string) {
	if m == nil {
		return
	}
	m.aborted.WithLabelValues(reason).Inc()
}

func (m *metrics) committed(s CommitStats) {
	if m == nil {
		return
	}
	m.commits.Inc()
	m.commitOps.WithLabelValues("place").Add(float64(s.Placed))
	m.commitOps.WithLabelValues("update").Add(float64(s.Updated))
	m.commitOps.WithLabelValues("delete").Add(float64(s.Deleted))
	m.commitDuration.Observe(s.Duration.Seconds())
}
