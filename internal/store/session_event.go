package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) Start(ctx context.Context, s SessionStart) error {
	decks, err := json.Marshal(s.Decks)
	if err != nil {
		return fmt.Errorf("encode decks: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, mode, decks, count, started_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.Mode, string(decks), s.Count, s.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session start: %w", err)
	}
	return nil
}

func (r *sessionRepo) End(ctx context.Context, e SessionEnd) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, phase = ?, correct = ?, total = ? WHERE id = ?`,
		e.EndedAt.UnixMilli(), e.Phase, e.Correct, e.Total, e.ID,
	)
	if err != nil {
		return fmt.Errorf("save session end: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save session end: no session %q", e.ID)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := `SELECT id, mode, decks, count, started_at, ended_at, phase, correct, total
		FROM sessions ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec       SessionRecord
			decks     string
			startedAt int64
			endedAt   sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Mode, &decks, &rec.Count, &startedAt, &endedAt,
			&rec.Phase, &rec.Correct, &rec.Total); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(decks), &rec.Decks); err != nil {
			return nil, fmt.Errorf("decode decks of session %q: %w", rec.ID, err)
		}
		rec.StartedAt = time.UnixMilli(startedAt)
		if endedAt.Valid {
			rec.EndedAt = time.UnixMilli(endedAt.Int64)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}
