package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/mathbuddy/internal/metrics"
	"github.com/abhisek/mathbuddy/internal/middleware"
)

// RouterOptions configures NewRouter. Nil Metrics disables /metrics and
// request instrumentation; nil SPA disables the frontend catch-all.
type RouterOptions struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	SPA            http.Handler
	RequestLog     bool
}

// NewRouter wires the API handlers and global middleware.
func NewRouter(problems *ProblemHandler, health *HealthHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.RequestLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	health.RegisterHealth(r)
	problems.RegisterRoutes(r)

	if opts.SPA != nil {
		r.Handle("/*", opts.SPA)
	}
	return r
}
