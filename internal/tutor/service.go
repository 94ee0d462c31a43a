package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mathbuddy/internal/llm"
)

// FallbackRecorder is notified whenever a fixed reply replaces an LLM
// result.
type FallbackRecorder interface {
	RecordFallback(component, reason string)
}

// Service produces hints, solution steps and answer feedback. Its public
// methods never fail: every LLM error is logged, recorded and replaced by
// the matching fixed reply.
type Service struct {
	provider llm.Provider
	cfg      Config
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

// NewService creates a tutoring service.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{provider: provider, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hint returns a short hint for the problem.
func (s *Service) Hint(ctx context.Context, pc ProblemContext) string {
	hint, err := s.generateHint(ctx, pc)
	if err != nil {
		s.fallback(llm.PurposeHint, err)
		return FallbackHint
	}
	return hint
}

// SolutionSteps returns the worked solution as ordered steps.
func (s *Service) SolutionSteps(ctx context.Context, pc ProblemContext) []string {
	steps, err := s.generateSteps(ctx, pc)
	if err != nil {
		s.fallback(llm.PurposeSolutionSteps, err)
		return FallbackSteps()
	}
	return steps
}

// Feedback returns encouraging feedback for a graded answer.
func (s *Service) Feedback(ctx context.Context, in FeedbackInput) string {
	fb, err := s.generateFeedback(ctx, in)
	if err != nil {
		s.fallback(llm.PurposeFeedback, err)
		return FallbackFeedback(in.IsCorrect)
	}
	return fb
}

func (s *Service) fallback(purpose string, err error) {
	kind := llm.Kind(err)
	s.logger.Warn("llm step failed, using fallback", "purpose", purpose, "kind", kind, "error", err)
	if s.recorder != nil {
		s.recorder.RecordFallback(purpose, kind)
	}
}

func (s *Service) generateHint(ctx context.Context, pc ProblemContext) (string, error) {
	msg, err := render(hintTemplate, pc)
	if err != nil {
		return "", fmt.Errorf("build hint prompt: %w", err)
	}
	text, err := s.complete(llm.WithPurpose(ctx, llm.PurposeHint), msg, s.cfg.HintMaxTokens)
	if err != nil {
		return "", fmt.Errorf("hint generation: %w", err)
	}
	return text, nil
}

func (s *Service) generateSteps(ctx context.Context, pc ProblemContext) ([]string, error) {
	msg, err := render(stepsTemplate, pc)
	if err != nil {
		return nil, fmt.Errorf("build steps prompt: %w", err)
	}
	text, err := s.complete(llm.WithPurpose(ctx, llm.PurposeSolutionSteps), msg, s.cfg.StepsMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("steps generation: %w", err)
	}
	return parseSteps(text)
}

func (s *Service) generateFeedback(ctx context.Context, in FeedbackInput) (string, error) {
	msg, err := render(feedbackTemplate, in)
	if err != nil {
		return "", fmt.Errorf("build feedback prompt: %w", err)
	}
	text, err := s.complete(llm.WithPurpose(ctx, llm.PurposeFeedback), msg, s.cfg.FeedbackMaxTokens)
	if err != nil {
		return "", fmt.Errorf("feedback generation: %w", err)
	}
	return text, nil
}

// complete sends a single-turn text request and returns the trimmed reply.
// A blank reply is an error.
func (s *Service) complete(ctx context.Context, msg string, maxTokens int) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      tutorSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		MaxTokens:   maxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", &llm.ErrInvalidResponse{Err: llm.ErrEmptyResponse}
	}
	return text, nil
}

// parseSteps reads a JSON array of strings, optionally fenced. Output that
// is not an array is split into non-empty lines.
func parseSteps(text string) ([]string, error) {
	cleaned := llm.StripCodeFences(text)
	raw := json.RawMessage(cleaned)

	var steps []string
	var probe []any
	if json.Unmarshal(raw, &probe) == nil {
		if err := llm.ValidateJSON(StepsSchema, raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &steps); err != nil {
			return nil, &llm.ErrInvalidResponse{Content: raw, Err: err}
		}
	} else {
		steps = strings.Split(cleaned, "\n")
	}

	out := steps[:0]
	for _, step := range steps {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	if len(out) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: llm.ErrEmptyResponse}
	}
	return out, nil
}
