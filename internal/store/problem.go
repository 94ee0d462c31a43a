package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// problemRepo implements ProblemRepo with ent's SQL builders over SQLite.
type problemRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *problemRepo) CreateSession(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now()
	}

	query, args := builder().Insert(tableSessions).
		Columns("id", "problem_text", "correct_answer", "difficulty", "problem_type", "created_at").
		Values(s.ID, s.ProblemText, s.CorrectAnswer, s.Difficulty, s.ProblemType, s.CreatedAt.UnixNano()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *problemRepo) GetSession(ctx context.Context, id string) (*Session, error) {
	b := builder()
	t := b.Table(tableSessions)
	query, args := b.Select(
		t.C("id"), t.C("problem_text"), t.C("correct_answer"),
		t.C("difficulty"), t.C("problem_type"), t.C("created_at"),
	).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Limit(1).
		Query()

	var (
		s       Session
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&s.ID, &s.ProblemText, &s.CorrectAnswer, &s.Difficulty, &s.ProblemType, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	s.CreatedAt = time.Unix(0, created)
	return &s, nil
}

func (r *problemRepo) CreateSubmission(ctx context.Context, sub *Submission) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	sub.Sequence = seqNum
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = r.now()
	}

	query, args := builder().Insert(tableSubmissions).
		Columns("id", "session_id", "user_answer", "is_correct", "feedback_text", "difficulty", "sequence", "created_at").
		Values(sub.ID, sub.SessionID, sub.UserAnswer, sub.IsCorrect, sub.Feedback, sub.Difficulty, sub.Sequence, sub.CreatedAt.UnixNano()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *problemRepo) RecentSubmissions(ctx context.Context, limit int) ([]HistoryRecord, error) {
	b := builder()
	sub := b.Table(tableSubmissions).As("s")
	ses := b.Table(tableSessions).As("p")
	sel := b.Select(
		sub.C("id"), sub.C("session_id"), sub.C("user_answer"), sub.C("is_correct"),
		sub.C("feedback_text"), sub.C("difficulty"), sub.C("sequence"), sub.C("created_at"),
		ses.C("problem_text"), ses.C("correct_answer"),
	).
		From(sub).
		Join(ses).
		On(sub.C("session_id"), ses.C("id")).
		OrderBy(entsql.Desc(sub.C("created_at")), entsql.Desc(sub.C("sequence")))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent submissions: %w", err)
	}
	defer rows.Close()

	var out []HistoryRecord
	for rows.Next() {
		var (
			rec     HistoryRecord
			created int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.UserAnswer, &rec.IsCorrect,
			&rec.Feedback, &rec.Difficulty, &rec.Sequence, &created,
			&rec.ProblemText, &rec.CorrectAnswer,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func (r *problemRepo) CountSubmissions(ctx context.Context, filter SubmissionFilter) (int, error) {
	b := builder()
	t := b.Table(tableSubmissions)
	sel := b.Select(entsql.Count("*")).From(t)
	if filter.Correct != nil {
		sel = sel.Where(entsql.EQ(t.C("is_correct"), *filter.Correct))
	}
	query, args := sel.Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
