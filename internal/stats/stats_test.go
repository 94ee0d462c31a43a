package stats

import (
	"testing"
	"time"

	"github.com/abhisek/mathbuddy/internal/store"
)

func rec(correct bool) store.HistoryRecord {
	return store.HistoryRecord{Submission: store.Submission{IsCorrect: correct}}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		total, correct, want int
	}{
		{0, 0, 0},
		{1, 1, 100},
		{3, 2, 67},
		{3, 1, 33},
		{8, 1, 13},
		{200, 1, 1},
		{400, 1, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.total, tt.correct); got != tt.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", tt.total, tt.correct, got, tt.want)
		}
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		listing []store.HistoryRecord
		want    int
	}{
		{"empty", nil, 0},
		{"newest wrong", []store.HistoryRecord{rec(false), rec(true), rec(true)}, 0},
		{"two then wrong", []store.HistoryRecord{rec(true), rec(true), rec(false), rec(true)}, 2},
		{"all correct", []store.HistoryRecord{rec(true), rec(true), rec(true)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.listing); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	listing := []store.HistoryRecord{
		{
			Submission:    store.Submission{ID: "b", UserAnswer: 7, IsCorrect: true, Feedback: "Great!", Difficulty: "easy", CreatedAt: at},
			ProblemText:   "12 - 5?",
			CorrectAnswer: 7,
		},
		{
			Submission:    store.Submission{ID: "a", UserAnswer: 3, IsCorrect: false, Feedback: "Try again", CreatedAt: at.Add(-time.Minute)},
			ProblemText:   "1 + 1?",
			CorrectAnswer: 2,
		},
	}

	r := Compute(listing, 5, 3)

	if len(r.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(r.History))
	}
	first := r.History[0]
	if first.ID != "b" || first.Score != 10 || first.ProblemText != "12 - 5?" || !first.CompletedAt.Equal(at) {
		t.Errorf("first entry = %+v", first)
	}
	if r.History[1].Score != 0 {
		t.Errorf("incorrect entry score = %d, want 0", r.History[1].Score)
	}

	want := Statistics{
		TotalProblems:  5,
		CorrectAnswers: 3,
		Accuracy:       60,
		TotalScore:     30,
		CurrentStreak:  1,
		DisplayNote:    DisplayNote,
	}
	if r.Statistics != want {
		t.Errorf("Statistics = %+v, want %+v", r.Statistics, want)
	}
}

func TestCompute_EmptyHistoryIsNotNil(t *testing.T) {
	r := Compute(nil, 0, 0)
	if r.History == nil {
		t.Error("History should be an empty slice so it encodes as []")
	}
	if r.Statistics.Accuracy != 0 || r.Statistics.CurrentStreak != 0 {
		t.Errorf("Statistics = %+v", r.Statistics)
	}
}

// The streak only sees the listing window, so a long run of correct
// answers reports at most HistoryLimit.
func TestCompute_StreakBoundedByWindow(t *testing.T) {
	listing := make([]store.HistoryRecord, HistoryLimit)
	for i := range listing {
		listing[i] = rec(true)
	}
	r := Compute(listing, 80, 80)
	if r.Statistics.CurrentStreak != HistoryLimit {
		t.Errorf("CurrentStreak = %d, want %d", r.Statistics.CurrentStreak, HistoryLimit)
	}
	if r.Statistics.TotalProblems != 80 {
		t.Errorf("TotalProblems = %d, want 80", r.Statistics.TotalProblems)
	}
}
