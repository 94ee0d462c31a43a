package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathbuddy/internal/llm"
)

type recorder struct {
	calls []string
}

func (r *recorder) RecordFallback(component, reason string) {
	r.calls = append(r.calls, component+":"+reason)
}

var apples = ProblemContext{
	ProblemText: "Sam has 12 apples and gives away 5. How many are left?",
	ProblemType: "subtraction",
	Difficulty:  "easy",
}

func newService(mock *llm.MockProvider, rec *recorder) *Service {
	return NewService(mock, DefaultConfig(), WithFallbackRecorder(rec))
}

func TestHint_ReturnsModelText(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("  Start with how many apples Sam had.\n"))
	rec := &recorder{}

	hint := newService(mock, rec).Hint(context.Background(), apples)
	assert.Equal(t, "Start with how many apples Sam had.", hint)
	assert.Empty(t, rec.calls)

	req, ok := mock.LastCall()
	require.True(t, ok)
	require.Len(t, req.Messages, 1)
	assert.Nil(t, req.Schema)
	assert.Equal(t, DefaultConfig().HintMaxTokens, req.MaxTokens)
	assert.Contains(t, req.Messages[0].Content, apples.ProblemText)
	assert.Contains(t, req.Messages[0].Content, "Operation: subtraction")
	assert.Contains(t, req.Messages[0].Content, "do NOT give the answer")
}

func TestHint_DefaultsMissingLabelsToRandom(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Look at the numbers."))
	newService(mock, &recorder{}).Hint(context.Background(), ProblemContext{ProblemText: "What is 3 + 4?"})

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "Operation: random")
	assert.Contains(t, req.Messages[0].Content, "Difficulty: random")
}

func TestHint_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		resp   llm.MockResponse
		reason string
	}{
		{"provider error", llm.ErrorResponse(&llm.ErrProviderUnavailable{}), "unavailable"},
		{"blank reply", llm.TextResponse("   "), "empty"},
		{"timeout", llm.ErrorResponse(context.DeadlineExceeded), "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			hint := newService(llm.NewMockProvider(tt.resp), rec).Hint(context.Background(), apples)
			assert.Equal(t, FallbackHint, hint)
			assert.Equal(t, []string{llm.PurposeHint + ":" + tt.reason}, rec.calls)
		})
	}
}

func TestSolutionSteps_ParsesJSONArray(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("```json\n[\"Start with 12 apples.\", \"Take away 5.\", \"12 - 5 = 7.\"]\n```"))
	rec := &recorder{}

	steps := newService(mock, rec).SolutionSteps(context.Background(), apples)
	assert.Equal(t, []string{"Start with 12 apples.", "Take away 5.", "12 - 5 = 7."}, steps)
	assert.Empty(t, rec.calls)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Messages[0].Content, "JSON array of strings")
}

func TestSolutionSteps_SplitsPlainText(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Start with 12 apples.\n\n  Take away 5.  \n12 - 5 = 7."))
	steps := newService(mock, &recorder{}).SolutionSteps(context.Background(), apples)
	assert.Equal(t, []string{"Start with 12 apples.", "Take away 5.", "12 - 5 = 7."}, steps)
}

func TestSolutionSteps_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		resp   llm.MockResponse
		reason string
	}{
		{"provider error", llm.ErrorResponse(&llm.ErrRateLimit{}), "rate_limit"},
		{"empty array", llm.TextResponse("[]"), "invalid_response"},
		{"non-string items", llm.TextResponse("[1, 2, 3]"), "invalid_response"},
		{"blank items", llm.TextResponse(`["  ", ""]`), "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			steps := newService(llm.NewMockProvider(tt.resp), rec).SolutionSteps(context.Background(), apples)
			assert.Equal(t, FallbackSteps(), steps)
			assert.Equal(t, []string{llm.PurposeSolutionSteps + ":" + tt.reason}, rec.calls)
		})
	}
}

func TestFeedback_PromptCarriesVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Nice try! Count what is left after giving 5 away."))
	rec := &recorder{}

	fb := newService(mock, rec).Feedback(context.Background(), FeedbackInput{
		ProblemText:   apples.ProblemText,
		UserAnswer:    6.5,
		CorrectAnswer: 7,
		IsCorrect:     false,
	})
	assert.Equal(t, "Nice try! Count what is left after giving 5 away.", fb)
	assert.Empty(t, rec.calls)

	req, _ := mock.LastCall()
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "STUDENT'S ANSWER: 6.5")
	assert.Contains(t, msg, "CORRECT ANSWER: 7\n")
	assert.Contains(t, msg, "STUDENT WAS: INCORRECT")
	assert.True(t, strings.Contains(msg, "attempted to solve"))
}

func TestFeedback_FallbackMatchesVerdict(t *testing.T) {
	for _, correct := range []bool{true, false} {
		rec := &recorder{}
		mock := llm.NewMockProvider(llm.ErrorResponse(&llm.ErrProviderUnavailable{}))
		fb := newService(mock, rec).Feedback(context.Background(), FeedbackInput{
			ProblemText:   apples.ProblemText,
			UserAnswer:    7,
			CorrectAnswer: 7,
			IsCorrect:     correct,
		})
		assert.Equal(t, FallbackFeedback(correct), fb)
		assert.Equal(t, []string{llm.PurposeFeedback + ":unavailable"}, rec.calls)
	}
	assert.NotEqual(t, FallbackFeedbackCorrect, FallbackFeedbackIncorrect)
}

func TestFeedback_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}
	fb := newService(llm.NewMockProvider(llm.TextResponse("unused")), rec).Feedback(ctx, FeedbackInput{IsCorrect: true})
	assert.Equal(t, FallbackFeedbackCorrect, fb)
	assert.Equal(t, []string{llm.PurposeFeedback + ":canceled"}, rec.calls)
}

func TestPurposeIsTagged(t *testing.T) {
	var seen []string
	p := providerFunc(func(ctx context.Context, _ llm.Request) (*llm.Response, error) {
		seen = append(seen, llm.PurposeFrom(ctx))
		return &llm.Response{Content: []byte("ok")}, nil
	})
	svc := NewService(p, DefaultConfig())
	svc.Hint(context.Background(), apples)
	svc.SolutionSteps(context.Background(), apples)
	svc.Feedback(context.Background(), FeedbackInput{})
	assert.Equal(t, []string{llm.PurposeHint, llm.PurposeSolutionSteps, llm.PurposeFeedback}, seen)
}

type providerFunc func(context.Context, llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (providerFunc) ModelID() string { return "func" }
