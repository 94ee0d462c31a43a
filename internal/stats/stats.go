// Package stats derives history listings and aggregate statistics from
// stored submissions. All numbers are recomputed on every call.
package stats

import (
	"math"
	"time"

	"github.com/abhisek/mathbuddy/internal/grading"
	"github.com/abhisek/mathbuddy/internal/store"
)

// HistoryLimit is the number of submissions included in a listing.
const HistoryLimit = 50

// DisplayNote tells clients that the listing is a window, not the full
// history.
const DisplayNote = "Showing latest 50 problems from your history"

// Entry is one listed submission.
type Entry struct {
	ID            string    `json:"id"`
	ProblemText   string    `json:"problem_text"`
	UserAnswer    float64   `json:"user_answer"`
	CorrectAnswer float64   `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Feedback      string    `json:"feedback"`
	Difficulty    string    `json:"difficulty,omitempty"`
	Score         int       `json:"score"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Statistics are the aggregate numbers shown next to the listing.
// TotalProblems and CorrectAnswers cover every submission; CurrentStreak
// only looks at the listing.
type Statistics struct {
	TotalProblems  int    `json:"total_problems"`
	CorrectAnswers int    `json:"correct_answers"`
	Accuracy       int    `json:"accuracy"`
	TotalScore     int    `json:"total_score"`
	CurrentStreak  int    `json:"current_streak"`
	DisplayNote    string `json:"display_note"`
}

// Report is a listing together with its statistics.
type Report struct {
	History    []Entry    `json:"history"`
	Statistics Statistics `json:"statistics"`
}

// ScoreSummary is the lightweight running score.
type ScoreSummary struct {
	TotalScore     int `json:"total_score"`
	CorrectAnswers int `json:"correct_answers"`
}

// Compute builds a Report from a newest-first listing and the unbounded
// total and correct counts.
func Compute(listing []store.HistoryRecord, total, correct int) Report {
	entries := make([]Entry, 0, len(listing))
	for _, rec := range listing {
		entries = append(entries, toEntry(rec))
	}
	return Report{
		History: entries,
		Statistics: Statistics{
			TotalProblems:  total,
			CorrectAnswers: correct,
			Accuracy:       Accuracy(total, correct),
			TotalScore:     TotalScore(correct),
			CurrentStreak:  Streak(listing),
			DisplayNote:    DisplayNote,
		},
	}
}

// Accuracy is the rounded percentage of correct submissions, 0 when there
// are none.
func Accuracy(total, correct int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// TotalScore converts a correct count into points.
func TotalScore(correct int) int {
	return correct * grading.PointsPerCorrect
}

// Streak counts consecutive correct submissions from the start of a
// newest-first listing.
func Streak(listing []store.HistoryRecord) int {
	n := 0
	for _, rec := range listing {
		if !rec.IsCorrect {
			break
		}
		n++
	}
	return n
}

func toEntry(rec store.HistoryRecord) Entry {
	score := 0
	if rec.IsCorrect {
		score = grading.PointsPerCorrect
	}
	return Entry{
		ID:            rec.ID,
		ProblemText:   rec.ProblemText,
		UserAnswer:    rec.UserAnswer,
		CorrectAnswer: rec.CorrectAnswer,
		IsCorrect:     rec.IsCorrect,
		Feedback:      rec.Feedback,
		Difficulty:    rec.Difficulty,
		Score:         score,
		CompletedAt:   rec.CreatedAt.UTC(),
	}
}
