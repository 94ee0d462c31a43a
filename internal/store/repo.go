package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match, empty for all
}

// Session is a generated problem together with its stored answer.
// Sessions are immutable once created.
type Session struct {
	ID            string
	ProblemText   string
	CorrectAnswer float64
	Difficulty    string
	ProblemType   string
	CreatedAt     time.Time
}

// Submission is one graded answer to a session.
type Submission struct {
	ID         string
	SessionID  string
	UserAnswer float64
	IsCorrect  bool
	Feedback   string
	Difficulty string
	Sequence   int64
	CreatedAt  time.Time
}

// HistoryRecord is a submission joined with its session's problem.
type HistoryRecord struct {
	Submission
	ProblemText   string
	CorrectAnswer float64
}

// SubmissionFilter narrows CountSubmissions. A nil Correct counts all rows.
type SubmissionFilter struct {
	Correct *bool
}

// ProblemRepo persists problem sessions and their submissions.
type ProblemRepo interface {
	// CreateSession inserts a session. Empty ID and zero CreatedAt are
	// filled in.
	CreateSession(ctx context.Context, s *Session) error

	// GetSession returns the session with the given id, or ErrNotFound.
	GetSession(ctx context.Context, id string) (*Session, error)

	// CreateSubmission inserts a submission and assigns its sequence.
	CreateSubmission(ctx context.Context, sub *Submission) error

	// RecentSubmissions returns up to limit submissions, newest first,
	// joined with their sessions.
	RecentSubmissions(ctx context.Context, limit int) ([]HistoryRecord, error)

	// CountSubmissions counts submissions matching the filter.
	CountSubmissions(ctx context.Context, filter SubmissionFilter) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
