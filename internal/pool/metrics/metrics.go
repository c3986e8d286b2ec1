package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the pool connection lifecycle.
type Metrics struct {
	ConnectAttempts *prometheus.CounterVec
	ConnectedPools  prometheus.Gauge
}

// New registers the pool metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the pool metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConnectAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "didpool_pool_connect_attempts_total",
			Help: "Pool connection attempts by pool and outcome",
		}, []string{"pool", "outcome"}), // outcome: "connected", "failed"
		ConnectedPools: factory.NewGauge(prometheus.GaugeOpts{
			Name: "didpool_pool_connected",
			Help: "Number of pools holding an open connection",
		}),
	}
}

func (m *Metrics) RecordConnect(poolID string, err error) {
	if m == nil {
		return
	}
	outcome := "connected"
	if err != nil {
		outcome = "failed"
	}
	m.ConnectAttempts.WithLabelValues(poolID, outcome).Inc()
}

func (m *Metrics) SetConnectedPools(count int) {
	if m != nil {
		m.ConnectedPools.Set(float64(count))
	}
}
