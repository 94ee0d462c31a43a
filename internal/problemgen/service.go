package problemgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/store"
)

// FallbackRecorder is notified whenever a canned value replaces an LLM
// result.
type FallbackRecorder interface {
	RecordFallback(component, reason string)
}

// Service creates problem sessions: it asks the Generator for a problem,
// degrades to the canned problem on any generation failure, and persists
// the result.
type Service struct {
	gen      Generator
	repo     store.ProblemRepo
	logger   *slog.Logger
	recorder FallbackRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithFallbackRecorder sets the hook notified on fallbacks.
func WithFallbackRecorder(r FallbackRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a Service.
func NewService(gen Generator, repo store.ProblemRepo, opts ...Option) *Service {
	s := &Service{gen: gen, repo: repo, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Created is the result of a successful Create.
type Created struct {
	SessionID   string
	ProblemText string
	Fallback    bool
}

// Create validates the requested enums, generates a problem and stores it
// as a new session. Only invalid input and storage failures are returned
// as errors.
func (s *Service) Create(ctx context.Context, difficulty, problemType string) (*Created, error) {
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	pt, err := ParseProblemType(problemType)
	if err != nil {
		return nil, err
	}
	input := GenerateInput{Difficulty: d, ProblemType: pt}

	p, err := s.gen.Generate(ctx, input)
	if err != nil {
		s.logger.Warn("problem generation failed, serving fallback problem",
			"difficulty", d,
			"problem_type", pt,
			"kind", llm.Kind(err),
			"error", err)
		if s.recorder != nil {
			s.recorder.RecordFallback(llm.PurposeProblemGen, llm.Kind(err))
		}
		p = FallbackProblem(input)
	}

	sess := &store.Session{
		ProblemText:   p.Text,
		CorrectAnswer: p.Answer,
		Difficulty:    string(d),
		ProblemType:   string(pt),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("save problem session: %w", err)
	}

	return &Created{SessionID: sess.ID, ProblemText: p.Text, Fallback: p.Fallback}, nil
}
