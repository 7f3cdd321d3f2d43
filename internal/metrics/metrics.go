// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the analysis pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the process's metric vectors. One instance is created at
// startup; a fresh registry per instance keeps tests independent.
type Collector struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	analysesTotal *prometheus.CounterVec
	analysisFails *prometheus.CounterVec
	activeUsers   prometheus.Gauge
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curevox_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "curevox_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curevox_analyses_total",
			Help: "Completed analyses by diagnosis type.",
		}, []string{"type"}),
		analysisFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "curevox_analysis_failures_total",
			Help: "Failed analyses by diagnosis type.",
		}, []string{"type"}),
		activeUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "curevox_active_sessions",
			Help: "Sessions currently marked active.",
		}),
	}

	registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.analysesTotal,
		c.analysisFails,
		c.activeUsers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveRequest records one finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AnalysisCompleted counts one successful analysis of the given type.
func (c *Collector) AnalysisCompleted(diagnosisType string) {
	c.analysesTotal.WithLabelValues(diagnosisType).Inc()
}

// AnalysisFailed counts one failed analysis of the given type.
func (c *Collector) AnalysisFailed(diagnosisType string) {
	c.analysisFails.WithLabelValues(diagnosisType).Inc()
}

// SetActiveSessions updates the active session gauge.
func (c *Collector) SetActiveSessions(n int64) {
	c.activeUsers.Set(float64(n))
}

// Handler serves the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
