package cmd

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/abhisek/mathbuddy/internal/api"
	"github.com/abhisek/mathbuddy/internal/config"
	"github.com/abhisek/mathbuddy/internal/grading"
	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/metrics"
	"github.com/abhisek/mathbuddy/internal/problemgen"
	"github.com/abhisek/mathbuddy/internal/stats"
	"github.com/abhisek/mathbuddy/internal/store"
	"github.com/abhisek/mathbuddy/internal/tutor"
	"github.com/abhisek/mathbuddy/web"
)

// buildHandler wires the store, LLM provider and services into the HTTP
// router. A missing LLM configuration is not fatal: every generative step
// then serves its fixed fallback.
func buildHandler(ctx context.Context, st *store.Store, cfg *config.Config, logger *slog.Logger) http.Handler {
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		logger.Warn("LLM provider not configured, AI features will use fallbacks", "error", err)
		provider = llm.NewDisabledProvider(err)
	} else {
		logger.Info("LLM provider ready", "model", provider.ModelID())
	}

	m := metrics.New(prometheus.NewRegistry())
	repo := st.ProblemRepo()

	tut := tutor.NewService(provider, tutor.DefaultConfig(),
		tutor.WithLogger(logger),
		tutor.WithFallbackRecorder(m))
	problems := problemgen.NewService(problemgen.New(provider, problemgen.DefaultConfig()), repo,
		problemgen.WithLogger(logger),
		problemgen.WithFallbackRecorder(m))
	grader := grading.NewService(repo, tut,
		grading.WithLogger(logger),
		grading.WithGradeRecorder(m))

	handler := api.NewProblemHandler(problems, grader, tut, stats.NewService(repo), logger)
	return api.NewRouter(handler, api.NewHealthHandler(st, cfg.HealthTimeout), api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        m,
		SPA:            web.SPAHandler(),
		RequestLog:     cfg.IsDevelopment(),
	})
}
