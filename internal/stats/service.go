package stats

import (
	"context"
	"fmt"

	"github.com/abhisek/mathbuddy/internal/store"
)

// Service reads submissions from the store and summarizes them.
type Service struct {
	repo store.ProblemRepo
}

// NewService creates a stats Service.
func NewService(repo store.ProblemRepo) *Service {
	return &Service{repo: repo}
}

// History returns the latest submissions with global statistics.
func (s *Service) History(ctx context.Context) (*Report, error) {
	listing, err := s.repo.RecentSubmissions(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	total, err := s.repo.CountSubmissions(ctx, store.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	correct, err := s.countCorrect(ctx)
	if err != nil {
		return nil, err
	}
	report := Compute(listing, total, correct)
	return &report, nil
}

// Score returns the running score over all submissions.
func (s *Service) Score(ctx context.Context) (*ScoreSummary, error) {
	correct, err := s.countCorrect(ctx)
	if err != nil {
		return nil, err
	}
	return &ScoreSummary{TotalScore: TotalScore(correct), CorrectAnswers: correct}, nil
}

func (s *Service) countCorrect(ctx context.Context) (int, error) {
	yes := true
	n, err := s.repo.CountSubmissions(ctx, store.SubmissionFilter{Correct: &yes})
	if err != nil {
		return 0, fmt.Errorf("count correct submissions: %w", err)
	}
	return n, nil
}
