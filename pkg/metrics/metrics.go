// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ReportQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_query_duration_seconds",
			Help:    "Time spent waiting on the database per report",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"report"},
	)

	ReportQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_query_errors_total",
			Help: "Failed report queries",
		},
		[]string{"report"},
	)
)

// ObserveQuery records one report query.
func ObserveQuery(report string, start time.Time, err error) {
	ReportQueryDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
	if err != nil {
		ReportQueryErrors.WithLabelValues(report).Inc()
	}
}

// Middleware records request counts and latency labelled by the chi route
// pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
