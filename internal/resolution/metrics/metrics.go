package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for DID resolution.
type Metrics struct {
	// Resolution outcomes: "cache_hit", "resolved", "did_not_found", "failed", "not_configured"
	Outcomes *prometheus.CounterVec

	// Per-pool identifier query latency by outcome: "found", "not_found", "failed"
	PoolQueryLatency *prometheus.HistogramVec

	// Cache lookups: "hit", "miss", "stale", "error"
	CacheLookups *prometheus.CounterVec

	// Why the winning pool won: "self_certified", "production", "non_production"
	Selections *prometheus.CounterVec
}

// New registers the resolution metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the resolution metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_resolution_outcomes_total",
			Help: "DID resolutions by outcome",
		}, []string{"outcome"}),
		PoolQueryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "didpool_resolution_pool_query_duration_seconds",
			Help:    "Duration of identifier queries against a single pool",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"pool", "outcome"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_resolution_cache_lookups_total",
			Help: "Resolution cache lookups by result",
		}, []string{"result"}),
		Selections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_resolution_selections_total",
			Help: "Winning pool selections by preference rule",
		}, []string{"reason"}),
	}
}

func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObservePoolQuery(poolID, outcome string, d time.Duration) {
	if m != nil {
		m.PoolQueryLatency.WithLabelValues(poolID, outcome).Observe(d.Seconds())
	}
}

func (m *Metrics) RecordCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) RecordSelection(reason string) {
	if m != nil {
		m.Selections.WithLabelValues(reason).Inc()
	}
}
