package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type answerRepo struct {
	db  *sql.DB
	seq *eventClock
}

func (r *answerRepo) Append(ctx context.Context, ev AnswerEvent) error {
	seqNum, err := r.seq.Tick(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events (
			sequence, session_id, seq_in_session, mode, card_id, chosen_id,
			question_face, answer_face, question, response, correct, elapsed_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, ev.SessionID, ev.Seq, ev.Mode, ev.CardID, ev.ChosenID,
		ev.QuestionFace, ev.AnswerFace, ev.Question, ev.Response, ev.Correct,
		ev.ElapsedMs, ev.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *answerRepo) ForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
			sequence, session_id, seq_in_session, mode, card_id, chosen_id,
			question_face, answer_face, question, response, correct, elapsed_ms, created_at
		FROM answer_events WHERE session_id = ? ORDER BY sequence`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			ev        AnswerEvent
			createdAt int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.SessionID, &ev.Seq, &ev.Mode, &ev.CardID, &ev.ChosenID,
			&ev.QuestionFace, &ev.AnswerFace, &ev.Question, &ev.Response, &ev.Correct,
			&ev.ElapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		ev.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer events: %w", err)
	}
	return out, nil
}
