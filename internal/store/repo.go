package store

import (
	"context"
	"time"

	"github.com/abhisek/cardiz/internal/stats"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// CardStatsRepo stores per-card answer counts. It is a stats.Store.
type CardStatsRepo interface {
	stats.Store

	// Reset deletes every card's stats.
	Reset(ctx context.Context) error
}

// SessionStart describes a session as it begins.
type SessionStart struct {
	ID        string
	Mode      string
	Decks     []string
	Count     int
	StartedAt time.Time
}

// SessionEnd describes how a session finished.
type SessionEnd struct {
	ID      string
	Phase   string
	Correct int
	Total   int
	EndedAt time.Time
}

// SessionRecord is one row of session history. EndedAt is zero for a
// session that never recorded its end.
type SessionRecord struct {
	SessionStart
	Phase   string
	Correct int
	Total   int
	EndedAt time.Time
}

// Duration returns how long the session lasted, 0 if it never ended.
func (r SessionRecord) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// SessionRepo records the start and end of quiz sessions.
type SessionRepo interface {
	Start(ctx context.Context, s SessionStart) error
	End(ctx context.Context, e SessionEnd) error

	// Recent returns up to limit sessions, newest first.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)
}

// AnswerEvent is one answered problem.
type AnswerEvent struct {
	Sequence     int64
	SessionID    string
	Seq          int // 1-based position within the session
	Mode         string
	CardID       string
	ChosenID     string // empty for typed answers
	QuestionFace string
	AnswerFace   string
	Question     string
	Response     string
	Correct      bool
	ElapsedMs    int64
	CreatedAt    time.Time
}

// AnswerRepo appends and reads answer events.
type AnswerRepo interface {
	Append(ctx context.Context, ev AnswerEvent) error

	// ForSession returns a session's answers in the order given.
	ForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error)
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
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
