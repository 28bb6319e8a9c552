package bench

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects per-phase timings on a private registry so several
// runners can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	phaseSeconds  *prometheus.HistogramVec
	verifications *prometheus.CounterVec
}

// NewMetrics creates the benchmark collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		phaseSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blsms_phase_duration_seconds",
			Help:    "Duration of each multi-signature phase.",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
		}, []string{"scheme", "phase"}),
		verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blsms_verifications_total",
			Help: "Verification outcomes by scheme.",
		}, []string{"scheme", "result"}),
	}
}

// Observe records one phase duration
func (m *Metrics) Observe(scheme string, phase Phase, d time.Duration) {
	m.phaseSeconds.WithLabelValues(scheme, string(phase)).Observe(d.Seconds())
}

// RecordVerification counts a verification outcome
func (m *Metrics) RecordVerification(scheme string, valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.verifications.WithLabelValues(scheme, result).Inc()
}

// Registry exposes the underlying registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all collected metrics in the Prometheus text format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
