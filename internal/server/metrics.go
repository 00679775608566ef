package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics owns a private prometheus registry so two servers in one process
// never collide on metric registration.
type metrics struct {
	registry    *prometheus.Registry
	validations *prometheus.CounterVec
	duration    prometheus.Histogram
	reloads     *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	m := &metrics{
		registry: reg,
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_validations_total",
				Help: "Total number of validation requests by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sieve_validation_duration_seconds",
				Help:    "Validation request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sieve_schema_reloads_total",
				Help: "Total number of schema reloads by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.validations, m.duration, m.reloads)
	reg.MustRegister(prometheus.NewGoCollector())
	return m
}

func (m *metrics) record(outcome string, elapsed time.Duration) {
	m.validations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// handler returns the HTTP handler for the /metrics endpoint.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
