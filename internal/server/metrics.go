package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ccollicutt/notemap/pkg/analyzer"
)

// Metrics holds the Prometheus collectors for the HTTP API.
//
// All metrics are prefixed with "notemap_":
//   - notemap_http_requests_total{route,method,status}
//   - notemap_http_request_duration_seconds{route}
//   - notemap_analyzed_lines_total
//   - notemap_category_assignments_total{category}
type Metrics struct {
	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	AnalyzedLinesTotal  prometheus.Counter
	CategoryAssignments *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notemap_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notemap_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		AnalyzedLinesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notemap_analyzed_lines_total",
				Help: "Total number of note lines analyzed",
			},
		),
		CategoryAssignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notemap_category_assignments_total",
				Help: "Total number of lines assigned to each category",
			},
			[]string{"category"},
		),
	}
}

// Middleware records request counts and latencies by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveAnalysis counts analyzed lines and their category assignments.
func (m *Metrics) ObserveAnalysis(a *analyzer.Analysis) {
	m.AnalyzedLinesTotal.Add(float64(len(a.Notes)))
	for _, n := range a.Notes {
		m.CategoryAssignments.WithLabelValues(string(n.Category)).Inc()
	}
}
