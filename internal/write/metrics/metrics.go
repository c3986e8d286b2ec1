package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the write path.
type Metrics struct {
	// Write outcomes: "submitted", "taa_configuration_required", "taa_mismatch", "failed"
	Writes *prometheus.CounterVec

	WriteLatency *prometheus.HistogramVec

	// Agreement fetches: "present", "absent", "failed"
	TAAFetches *prometheus.CounterVec

	AuditPublishFailures prometheus.Counter
}

// New registers the write metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the write metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_write_submissions_total",
			Help: "Ledger write submissions by pool and outcome",
		}, []string{"pool", "outcome"}),
		WriteLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "didpool_write_duration_seconds",
			Help:    "Duration of ledger write submissions including agreement checks",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"pool"}),
		TAAFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_write_taa_fetches_total",
			Help: "Transaction author agreement fetches by pool and outcome",
		}, []string{"pool", "outcome"}),
		AuditPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "didpool_write_audit_publish_failures_total",
			Help: "TAA acceptance audit events that could not be published",
		}),
	}
}

func (m *Metrics) RecordWrite(poolID, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(poolID, outcome).Inc()
	m.WriteLatency.WithLabelValues(poolID).Observe(d.Seconds())
}

func (m *Metrics) RecordTAAFetch(poolID, outcome string) {
	if m != nil {
		m.TAAFetches.WithLabelValues(poolID, outcome).Inc()
	}
}

func (m *Metrics) IncAuditPublishFailure() {
	if m != nil {
		m.AuditPublishFailures.Inc()
	}
}
