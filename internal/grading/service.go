// Package grading evaluates submitted answers against stored problem
// sessions and records each attempt.
package grading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mathbuddy/internal/store"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// FeedbackWriter produces feedback text for a graded answer. It must not
// fail; implementations degrade to fixed text themselves.
type FeedbackWriter interface {
	Feedback(ctx context.Context, in tutor.FeedbackInput) string
}

// GradeRecorder is notified of every persisted verdict.
type GradeRecorder interface {
	RecordGrade(isCorrect bool)
}

// SubmitInput is an answer submission. UserAnswer is the raw text the
// student entered.
type SubmitInput struct {
	SessionID  string
	UserAnswer string
	Difficulty string
}

// Result is the outcome of a submission.
type Result struct {
	IsCorrect bool
	Feedback  string
	Score     int
}

// Service grades submissions.
type Service struct {
	repo     store.ProblemRepo
	feedback FeedbackWriter
	scorer   Scorer
	recorder GradeRecorder
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithScorer replaces the default flat scorer.
func WithScorer(sc Scorer) Option {
	return func(s *Service) { s.scorer = sc }
}

// WithGradeRecorder sets the hook notified after each graded answer.
func WithGradeRecorder(r GradeRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a grading Service.
func NewService(repo store.ProblemRepo, feedback FeedbackWriter, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		feedback: feedback,
		scorer:   DefaultScorer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit grades one answer and persists it. Nothing is written when the
// input is invalid or the session does not exist.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" || strings.TrimSpace(in.UserAnswer) == "" {
		return nil, fmt.Errorf("%w: missing session_id or user_answer", ErrInvalidInput)
	}

	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		s.logger.Error("session lookup failed", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	answer, err := ParseAnswer(in.UserAnswer)
	if err != nil {
		return nil, err
	}

	correct := IsCorrect(answer, sess.CorrectAnswer)
	feedback := s.feedback.Feedback(ctx, tutor.FeedbackInput{
		ProblemText:   sess.ProblemText,
		UserAnswer:    answer,
		CorrectAnswer: sess.CorrectAnswer,
		IsCorrect:     correct,
	})
	score := s.scorer.Score(sess.ProblemText, correct)

	sub := &store.Submission{
		SessionID:  sess.ID,
		UserAnswer: answer,
		IsCorrect:  correct,
		Feedback:   feedback,
		Difficulty: strings.TrimSpace(in.Difficulty),
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		s.logger.Error("save submission failed", "session_id", sess.ID, "error", err)
		return nil, fmt.Errorf("%w: save submission: %w", ErrStorage, err)
	}

	if s.recorder != nil {
		s.recorder.RecordGrade(correct)
	}
	s.logger.Info("answer graded",
		"session_id", sess.ID,
		"submission_id", sub.ID,
		"is_correct", correct,
		"score", score)

	return &Result{IsCorrect: correct, Feedback: feedback, Score: score}, nil
}
