package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"foo": "bar"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["foo"] != "bar" {
		t.Errorf("foo = %q, want bar", got["foo"])
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, http.StatusBadRequest, "Missing problem text")

	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusBadRequest || got["error"] != "Missing problem text" {
		t.Errorf("got %d %v", w.Code, got)
	}
}

func TestAnswerValue(t *testing.T) {
	tests := []struct {
		body    string
		want    string
		wantErr bool
	}{
		{`{"user_answer": "42"}`, "42", false},
		{`{"user_answer": " 4.5 "}`, " 4.5 ", false},
		{`{"user_answer": 42}`, "42", false},
		{`{"user_answer": -0.25}`, "-0.25", false},
		{`{"user_answer": 1e3}`, "1e3", false},
		{`{"user_answer": null}`, "", false},
		{`{}`, "", false},
		{`{"user_answer": true}`, "", true},
		{`{"user_answer": [1]}`, "", true},
		{`{"user_answer": {"v": 1}}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var req submitRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", req.UserAnswer)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(req.UserAnswer) != tt.want {
				t.Errorf("UserAnswer = %q, want %q", req.UserAnswer, tt.want)
			}
		})
	}
}
