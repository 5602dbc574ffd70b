package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	shareLinksTotal    *prometheus.CounterVec
	shareEmailsTotal   *prometheus.CounterVec
	prefillTotal       *prometheus.CounterVec
	prefillDuration    *prometheus.HistogramVec
	watchStreamsActive *prometheus.GaugeVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ten99",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ten99",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ten99",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	shareLinksTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ten99",
			Subsystem: "share",
			Name:      "links_created_total",
			Help:      "Total public share links created.",
		},
		[]string{"service"},
	)
	shareEmailsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ten99",
			Subsystem: "share",
			Name:      "emails_total",
			Help:      "Total share notification emails by outcome.",
		},
		[]string{"service", "status"},
	)
	prefillTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ten99",
			Subsystem: "prefill",
			Name:      "requests_total",
			Help:      "Total appointment prefill requests by outcome.",
		},
		[]string{"service", "status"},
	)
	prefillDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ten99",
			Subsystem: "prefill",
			Name:      "duration_seconds",
			Help:      "Appointment prefill duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	watchStreamsActive := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "ten99",
			Subsystem: "watch",
			Name:      "streams_active",
			Help:      "Number of open change-stream connections by collection.",
		},
		[]string{"service", "collection"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		shareLinksTotal,
		shareEmailsTotal,
		prefillTotal,
		prefillDuration,
		watchStreamsActive,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		shareLinksTotal:    shareLinksTotal,
		shareEmailsTotal:   shareEmailsTotal,
		prefillTotal:       prefillTotal,
		prefillDuration:    prefillDuration,
		watchStreamsActive: watchStreamsActive,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses record IDs so metric cardinality stays bounded.
func normalizePath(path string) string {
	for _, collection := range []string{"clients", "contacts", "job-files", "appointments", "certifications", "inbox"} {
		prefix := "/v1/" + collection + "/"
		if strings.HasPrefix(path, prefix) {
			rest := strings.TrimPrefix(path, prefix)
			if idx := strings.Index(rest, "/"); idx >= 0 {
				return prefix + "{id}/" + rest[idx+1:]
			}
			return prefix + "{id}"
		}
	}
	if strings.HasPrefix(path, "/v1/public/job-files/") {
		return "/v1/public/job-files/{id}"
	}
	return path
}

func (m *HTTPServerMetrics) RecordShareLink(service string) {
	m.shareLinksTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordShareEmail(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.shareEmailsTotal.WithLabelValues(service, status).Inc()
}

func (m *HTTPServerMetrics) RecordPrefill(service string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.prefillTotal.WithLabelValues(service, status).Inc()
	m.prefillDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) WatchStreamOpened(service, collection string) {
	m.watchStreamsActive.WithLabelValues(service, collection).Inc()
}

func (m *HTTPServerMetrics) WatchStreamClosed(service, collection string) {
	m.watchStreamsActive.WithLabelValues(service, collection).Dec()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
