package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func chatStub(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newChatProvider("test-key", srv.URL+"/v1", "gpt-4o-mini", nil)
}

var wordProblemSchema = &Schema{
	Name: "word-problem-test",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_text": map[string]any{"type": "string"},
			"final_answer": map[string]any{"type": "number"},
		},
		"required": []any{"problem_text", "final_answer"},
	},
}

func TestOpenAIProvider_StructuredProblem(t *testing.T) {
	var body map[string]any
	p := chatStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(
			`{"problem_text":"Mei has 3 bags of 12 apples. How many apples?","final_answer":36}`, "stop"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write word problems for Primary 5 students.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate a multiplication problem."}},
		Schema:    wordProblemSchema,
		MaxTokens: 512,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 || resp.Usage.TotalTokens != 65 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Fatalf("stop reason = %q, want %q", resp.StopReason, StopEnd)
	}

	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Fatalf("first message role = %v, want system", first["role"])
	}
	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("response_format = %v", body["response_format"])
	}
}

func TestOpenAIProvider_SchemaMismatchIsInvalid(t *testing.T) {
	p := chatStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"problem_text":"no answer given"}`, "stop"))
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Generate a problem."}},
		Schema:    wordProblemSchema,
		MaxTokens: 512,
	})
	if Kind(err) != "invalid_response" {
		t.Fatalf("Kind = %q, want invalid_response (err: %v)", Kind(err), err)
	}
}

func TestOpenAIProvider_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   string
	}{
		{http.StatusTooManyRequests, "rate_limit"},
		{http.StatusInternalServerError, "unavailable"},
		{http.StatusUnauthorized, "unavailable"},
	}
	for _, tc := range cases {
		p := chatStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tc.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "error", "message": http.StatusText(tc.status)},
			})
		})
		_, err := p.Generate(context.Background(), Request{
			Messages:  []Message{{Role: RoleUser, Content: "hint please"}},
			MaxTokens: 100,
		})
		if got := Kind(err); got != tc.kind {
			t.Errorf("status %d: Kind = %q, want %q (err: %v)", tc.status, got, tc.kind, err)
		}
	}
}

func TestOpenAIProvider_BlankAndTruncatedReplies(t *testing.T) {
	cases := []struct {
		name    string
		content string
		finish  string
		kind    string
	}{
		{"blank", "   ", "stop", "empty"},
		{"truncated", "Step 1: Multiply 3 by", "length", "max_tokens"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := chatStub(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(chatCompletion(tc.content, tc.finish))
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "steps please"}},
				MaxTokens: 8,
			})
			if got := Kind(err); got != tc.kind {
				t.Fatalf("Kind = %q, want %q (err: %v)", got, tc.kind, err)
			}
		})
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := chatStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "object": "chat.completion", "choices": []any{}})
	})
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hint please"}},
		MaxTokens: 100,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-mini"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID = %q, want gpt-4o-mini", p.ModelID())
	}
}
