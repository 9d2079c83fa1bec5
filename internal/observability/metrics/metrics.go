// Package metrics exposes prometheus instruments for the HTTP layer and the
// metering pass.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics captures request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reachloop_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reachloop_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// GinMiddleware records request metrics after each handler.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// MeteringMetrics captures usage-metering pass health signals.
type MeteringMetrics struct {
	passRuns       prometheus.Counter
	passDuration   prometheus.Histogram
	tenantsVisited prometheus.Counter
	tenantErrors   prometheus.Counter
	recordsWritten prometheus.Counter
}

func NewMeteringMetrics() *MeteringMetrics {
	return &MeteringMetrics{
		passRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reachloop_metering_pass_runs_total",
			Help: "Completed metering passes.",
		}),
		passDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "reachloop_metering_pass_duration_seconds",
			Help:    "Wall time of a full metering pass.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		tenantsVisited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reachloop_metering_tenants_visited_total",
			Help: "Tenants visited across all metering passes.",
		}),
		tenantErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reachloop_metering_tenant_errors_total",
			Help: "Tenants whose metering step failed.",
		}),
		recordsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reachloop_metering_usage_records_total",
			Help: "Usage log records written by the metering pass.",
		}),
	}
}

func (m *MeteringMetrics) ObservePass(d time.Duration) {
	if m == nil {
		return
	}
	m.passRuns.Inc()
	m.passDuration.Observe(d.Seconds())
}

func (m *MeteringMetrics) IncTenant() {
	if m == nil {
		return
	}
	m.tenantsVisited.Inc()
}

func (m *MeteringMetrics) IncTenantError() {
	if m == nil {
		return
	}
	m.tenantErrors.Inc()
}

func (m *MeteringMetrics) AddRecords(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsWritten.Add(float64(n))
}
