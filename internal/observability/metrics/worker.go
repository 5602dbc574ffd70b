package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	intakeTotal    *prometheus.CounterVec
	intakeDuration *prometheus.HistogramVec
	intakeInFlight prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	intakeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ten99",
			Subsystem: "worker",
			Name:      "proposal_intake_total",
			Help:      "Total processed appointment proposals by status.",
		},
		[]string{"service", "status"},
	)
	intakeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ten99",
			Subsystem: "worker",
			Name:      "proposal_intake_duration_seconds",
			Help:      "Proposal intake duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	intakeInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ten99",
			Subsystem: "worker",
			Name:      "proposal_intake_in_flight",
			Help:      "Number of in-flight proposal intake tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(intakeTotal, intakeDuration, intakeInFlight)

	return &WorkerMetrics{
		registry:       registry,
		intakeTotal:    intakeTotal,
		intakeDuration: intakeDuration,
		intakeInFlight: intakeInFlight,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartIntake() {
	m.intakeInFlight.Inc()
}

func (m *WorkerMetrics) FinishIntake(service string, duration time.Duration, err error) {
	m.intakeInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.intakeTotal.WithLabelValues(service, status).Inc()
	m.intakeDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}
