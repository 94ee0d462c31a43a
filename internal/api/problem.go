package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathbuddy/internal/grading"
	"github.com/abhisek/mathbuddy/internal/problemgen"
	"github.com/abhisek/mathbuddy/internal/stats"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// ProblemCreator generates and stores a new problem session.
type ProblemCreator interface {
	Create(ctx context.Context, difficulty, problemType string) (*problemgen.Created, error)
}

// Grader grades a submitted answer.
type Grader interface {
	Submit(ctx context.Context, in grading.SubmitInput) (*grading.Result, error)
}

// Tutor produces hints and worked solutions. Both never fail.
type Tutor interface {
	Hint(ctx context.Context, pc tutor.ProblemContext) string
	SolutionSteps(ctx context.Context, pc tutor.ProblemContext) []string
}

// StatsReader summarizes past submissions.
type StatsReader interface {
	History(ctx context.Context) (*stats.Report, error)
	Score(ctx context.Context) (*stats.ScoreSummary, error)
}

// ProblemHandler serves the /api/math-problem endpoints.
type ProblemHandler struct {
	problems ProblemCreator
	grader   Grader
	tutor    Tutor
	stats    StatsReader
	logger   *slog.Logger
}

// NewProblemHandler creates a ProblemHandler.
func NewProblemHandler(problems ProblemCreator, grader Grader, tutor Tutor, stats StatsReader, logger *slog.Logger) *ProblemHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProblemHandler{
		problems: problems,
		grader:   grader,
		tutor:    tutor,
		stats:    stats,
		logger:   logger,
	}
}

// RegisterRoutes registers the problem routes.
func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/math-problem", func(r chi.Router) {
		r.Post("/", h.CreateProblem)
		r.Post("/submit", h.SubmitAnswer)
		r.Post("/hint", h.Hint)
		r.Post("/solution-steps", h.SolutionSteps)
		r.Get("/history", h.History)
		r.Get("/score", h.Score)
	})
}

type createProblemRequest struct {
	Difficulty  string `json:"difficulty"`
	ProblemType string `json:"problem_type"`
}

type createProblemResponse struct {
	SessionID   string `json:"session_id"`
	ProblemText string `json:"problem_text"`
}

// CreateProblem generates a new problem and opens a session for it.
func (h *ProblemHandler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var req createProblemRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.problems.Create(r.Context(), req.Difficulty, req.ProblemType)
	if err != nil {
		if errors.Is(err, problemgen.ErrInvalidInput) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("create problem failed", "error", err)
		Error(w, http.StatusInternalServerError, "Failed to generate problem")
		return
	}

	JSON(w, http.StatusOK, createProblemResponse{
		SessionID:   created.SessionID,
		ProblemText: created.ProblemText,
	})
}

type submitRequest struct {
	SessionID  string      `json:"session_id"`
	UserAnswer answerValue `json:"user_answer"`
	Difficulty string      `json:"difficulty"`
}

type submitResponse struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
	Score     int    `json:"score"`
}

// SubmitAnswer grades an answer for an existing session.
func (h *ProblemHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decode(w, r, &req); err != nil {
		if errors.Is(err, errAnswerType) {
			Error(w, http.StatusBadRequest, "Invalid user answer")
			return
		}
		Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.grader.Submit(r.Context(), grading.SubmitInput{
		SessionID:  req.SessionID,
		UserAnswer: string(req.UserAnswer),
		Difficulty: req.Difficulty,
	})
	switch {
	case err == nil:
	case errors.Is(err, grading.ErrNotFound):
		Error(w, http.StatusNotFound, "Problem session not found")
		return
	case errors.Is(err, grading.ErrInvalidInput):
		Error(w, http.StatusBadRequest, invalidSubmitMessage(req))
		return
	default:
		h.logger.Error("submit answer failed", "session_id", req.SessionID, "error", err)
		Error(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	JSON(w, http.StatusOK, submitResponse{
		IsCorrect: res.IsCorrect,
		Feedback:  res.Feedback,
		Score:     res.Score,
	})
}

func invalidSubmitMessage(req submitRequest) string {
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(string(req.UserAnswer)) == "" {
		return "Missing session_id or user_answer"
	}
	return "Invalid user answer"
}

type problemContextRequest struct {
	ProblemText string `json:"problem_text"`
	ProblemType string `json:"problem_type"`
	Difficulty  string `json:"difficulty"`
}

func (p problemContextRequest) context() tutor.ProblemContext {
	return tutor.ProblemContext{
		ProblemText: strings.TrimSpace(p.ProblemText),
		ProblemType: strings.TrimSpace(p.ProblemType),
		Difficulty:  strings.TrimSpace(p.Difficulty),
	}
}

// Hint returns a hint for the given problem text. Apart from a missing
// problem text it always answers 200.
func (h *ProblemHandler) Hint(w http.ResponseWriter, r *http.Request) {
	var req problemContextRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Warn("unreadable hint request", "error", err)
		JSON(w, http.StatusOK, map[string]string{"hint": tutor.FallbackHintGeneric})
		return
	}
	pc := req.context()
	if pc.ProblemText == "" {
		Error(w, http.StatusBadRequest, "Missing problem text")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"hint": h.tutor.Hint(r.Context(), pc)})
}

// SolutionSteps returns the worked solution for the given problem text.
// Apart from a missing problem text it always answers 200.
func (h *ProblemHandler) SolutionSteps(w http.ResponseWriter, r *http.Request) {
	var req problemContextRequest
	if err := decode(w, r, &req); err != nil {
		h.logger.Warn("unreadable solution-steps request", "error", err)
		JSON(w, http.StatusOK, map[string][]string{"steps": tutor.FallbackSteps()})
		return
	}
	pc := req.context()
	if pc.ProblemText == "" {
		Error(w, http.StatusBadRequest, "Missing problem text")
		return
	}

	JSON(w, http.StatusOK, map[string][]string{"steps": h.tutor.SolutionSteps(r.Context(), pc)})
}

// History returns the latest submissions with global statistics.
func (h *ProblemHandler) History(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	report, err := h.stats.History(r.Context())
	if err != nil {
		h.logger.Error("fetch history failed", "error", err)
		Error(w, http.StatusInternalServerError, "Failed to fetch problem history")
		return
	}
	JSON(w, http.StatusOK, report)
}

// Score returns the running score.
func (h *ProblemHandler) Score(w http.ResponseWriter, r *http.Request) {
	noCache(w)
	score, err := h.stats.Score(r.Context())
	if err != nil {
		h.logger.Error("fetch score failed", "error", err)
		Error(w, http.StatusInternalServerError, "Failed to fetch score")
		return
	}
	JSON(w, http.StatusOK, score)
}
