package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathbuddy/internal/grading"
	"github.com/abhisek/mathbuddy/internal/llm"
	"github.com/abhisek/mathbuddy/internal/metrics"
	"github.com/abhisek/mathbuddy/internal/problemgen"
	"github.com/abhisek/mathbuddy/internal/stats"
	"github.com/abhisek/mathbuddy/internal/store"
	"github.com/abhisek/mathbuddy/internal/tutor"
)

// newStack wires real services over an in-memory store and a scripted LLM.
func newStack(t *testing.T, mock *llm.MockProvider) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	repo := st.ProblemRepo()

	tut := tutor.NewService(mock, tutor.DefaultConfig(), tutor.WithLogger(logger), tutor.WithFallbackRecorder(m))
	problems := problemgen.NewService(problemgen.New(mock, problemgen.DefaultConfig()), repo,
		problemgen.WithLogger(logger), problemgen.WithFallbackRecorder(m))
	grader := grading.NewService(repo, tut, grading.WithLogger(logger), grading.WithGradeRecorder(m))

	h := NewProblemHandler(problems, grader, tut, stats.NewService(repo), logger)
	return NewRouter(h, NewHealthHandler(st, 0), RouterOptions{AllowedOrigins: []string{"*"}, Metrics: m}), st
}

func TestFlow_GenerateSubmitHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse("```json\n{\"problem_text\": \"Mia has 8 pencils and gets 5 more. How many pencils does she have?\", \"final_answer\": 13}\n```"),
		llm.TextResponse("Well done! You added 8 and 5 correctly."),
		llm.ErrorResponse(&llm.ErrProviderUnavailable{}),
	)
	srv, _ := newStack(t, mock)

	w := do(t, srv, http.MethodPost, "/api/math-problem", `{"difficulty":"easy","problem_type":"addition"}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)
	sessionID := created["session_id"].(string)
	assert.Contains(t, created["problem_text"], "Mia has 8 pencils")

	w = do(t, srv, http.MethodPost, "/api/math-problem/submit", `{"session_id":"`+sessionID+`","user_answer":"13.0004"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeBody(t, w)
	assert.Equal(t, true, res["is_correct"])
	assert.Equal(t, float64(10), res["score"])
	assert.Equal(t, "Well done! You added 8 and 5 correctly.", res["feedback"])

	// Feedback LLM fails on the second attempt; the incorrect fallback is used.
	w = do(t, srv, http.MethodPost, "/api/math-problem/submit", `{"session_id":"`+sessionID+`","user_answer":12}`)
	require.Equal(t, http.StatusOK, w.Code)
	res = decodeBody(t, w)
	assert.Equal(t, false, res["is_correct"])
	assert.Equal(t, float64(0), res["score"])
	assert.Equal(t, tutor.FallbackFeedbackIncorrect, res["feedback"])

	w = do(t, srv, http.MethodGet, "/api/math-problem/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	history := body["history"].([]any)
	require.Len(t, history, 2)
	newest := history[0].(map[string]any)
	assert.Equal(t, false, newest["is_correct"])
	assert.Equal(t, float64(13), newest["correct_answer"])
	assert.Equal(t, float64(12), newest["user_answer"])

	st := body["statistics"].(map[string]any)
	assert.Equal(t, float64(2), st["total_problems"])
	assert.Equal(t, float64(1), st["correct_answers"])
	assert.Equal(t, float64(50), st["accuracy"])
	assert.Equal(t, float64(10), st["total_score"])
	assert.Equal(t, float64(0), st["current_streak"])

	w = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `mathbuddy_llm_fallbacks_total{component="feedback",reason="unavailable"} 1`)
	assert.Contains(t, w.Body.String(), `mathbuddy_answers_graded_total{verdict="correct"} 1`)
}

func TestFlow_GenerationFallbackStillCreatesSession(t *testing.T) {
	srv, st := newStack(t, llm.NewMockProvider(llm.TextResponse("I cannot do that")))

	w := do(t, srv, http.MethodPost, "/api/math-problem", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, problemgen.FallbackProblemText, created["problem_text"])

	sess, err := st.ProblemRepo().GetSession(context.Background(), created["session_id"].(string))
	require.NoError(t, err)
	assert.Equal(t, problemgen.FallbackAnswer, sess.CorrectAnswer)
}

func TestFlow_UnknownSessionWritesNothing(t *testing.T) {
	srv, st := newStack(t, llm.NewMockProvider())

	w := do(t, srv, http.MethodPost, "/api/math-problem/submit", `{"session_id":"does-not-exist","user_answer":"1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	n, err := st.ProblemRepo().CountSubmissions(context.Background(), store.SubmissionFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFlow_InvalidEnumRejected(t *testing.T) {
	mock := llm.NewMockProvider()
	srv, _ := newStack(t, mock)

	w := do(t, srv, http.MethodPost, "/api/math-problem", `{"problem_type":"exponent"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mock.CallCount())
}

// With no LLM at all, the canned problem (answer 42) drives the whole flow.
func TestFlow_CannedProblemScoring(t *testing.T) {
	srv, _ := newStack(t, llm.NewMockProvider())

	w := do(t, srv, http.MethodPost, "/api/math-problem", `{"difficulty":"medium"}`)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := decodeBody(t, w)["session_id"].(string)

	for _, tc := range []struct {
		answer  string
		correct bool
		score   float64
	}{
		{`"42"`, true, 10},
		{`"42.0005"`, true, 10},
		{`"42.0011"`, false, 0},
		{`41`, false, 0},
	} {
		w = do(t, srv, http.MethodPost, "/api/math-problem/submit", `{"session_id":"`+sessionID+`","user_answer":`+tc.answer+`}`)
		require.Equal(t, http.StatusOK, w.Code, tc.answer)
		res := decodeBody(t, w)
		assert.Equal(t, tc.correct, res["is_correct"], tc.answer)
		assert.Equal(t, tc.score, res["score"], tc.answer)
	}

	w = do(t, srv, http.MethodGet, "/api/math-problem/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	st := decodeBody(t, w)["statistics"].(map[string]any)
	assert.Equal(t, float64(4), st["total_problems"])
	assert.Equal(t, float64(2), st["correct_answers"])
	assert.Equal(t, float64(50), st["accuracy"])
	assert.Equal(t, float64(20), st["total_score"])
	assert.Equal(t, float64(0), st["current_streak"])

	w = do(t, srv, http.MethodGet, "/api/math-problem/score", "")
	require.Equal(t, http.StatusOK, w.Code)
	score := decodeBody(t, w)
	assert.Equal(t, float64(20), score["total_score"])
	assert.Equal(t, float64(2), score["correct_answers"])
}
