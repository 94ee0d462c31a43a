// Package metrics exposes Prometheus collectors for the HTTP API, LLM
// fallbacks and graded answers.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. Create one per registry.
type Metrics struct {
	gatherer prometheus.Gatherer

	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	fallbacks *prometheus.CounterVec
	answers   *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathbuddy_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mathbuddy_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathbuddy_llm_fallbacks_total",
				Help: "LLM steps that were replaced by a fixed reply",
			},
			[]string{"component", "reason"},
		),
		answers: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mathbuddy_answers_graded_total",
				Help: "Graded answer submissions by verdict",
			},
			[]string{"verdict"},
		),
	}
}

// RecordFallback counts a fallback for component with the given reason.
func (m *Metrics) RecordFallback(component, reason string) {
	m.fallbacks.WithLabelValues(component, reason).Inc()
}

// RecordGrade counts a graded answer.
func (m *Metrics) RecordGrade(isCorrect bool) {
	verdict := "incorrect"
	if isCorrect {
		verdict = "correct"
	}
	m.answers.WithLabelValues(verdict).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies labelled with the chi
// route pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

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

		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
