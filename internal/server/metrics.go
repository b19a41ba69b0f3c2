package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. Each instance owns its
// registry, so several servers (or tests) can coexist in one process.
type Metrics struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestsTotal      *prometheus.CounterVec
	activeRequests     prometheus.Gauge
	generationDuration *prometheus.HistogramVec
	termsGenerated     prometheus.Counter
}

// NewMetrics creates and registers every collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fibseq_requests_total",
			Help: "HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fibseq_active_requests",
			Help: "HTTP requests currently in flight.",
		}),
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibseq_generation_duration_seconds",
			Help:    "Time spent generating a sequence, by generator.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"generator"}),
		termsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fibseq_terms_generated_total",
			Help: "Fibonacci terms returned to clients.",
		}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.activeRequests,
		m.generationDuration,
		m.termsGenerated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(path string, code int) {
	m.requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// RecordGeneration observes one generator run.
func (m *Metrics) RecordGeneration(generator string, d time.Duration) {
	m.generationDuration.WithLabelValues(generator).Observe(d.Seconds())
}

// AddTerms counts terms returned to a client.
func (m *Metrics) AddTerms(n int) { m.termsGenerated.Add(float64(n)) }

// WritePrometheus serves the exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
