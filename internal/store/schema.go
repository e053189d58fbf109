package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Timestamps are stored as Unix milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS card_stats (
		card_id   TEXT PRIMARY KEY,
		correct   INTEGER NOT NULL DEFAULT 0,
		incorrect INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		mode       TEXT NOT NULL,
		decks      TEXT NOT NULL DEFAULT '[]',
		count      INTEGER NOT NULL DEFAULT 0,
		started_at INTEGER NOT NULL,
		ended_at   INTEGER,
		phase      TEXT NOT NULL DEFAULT '',
		correct    INTEGER NOT NULL DEFAULT 0,
		total      INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		sequence      INTEGER PRIMARY KEY,
		session_id    TEXT NOT NULL,
		seq_in_session INTEGER NOT NULL,
		mode          TEXT NOT NULL,
		card_id       TEXT NOT NULL,
		chosen_id     TEXT NOT NULL DEFAULT '',
		question_face TEXT NOT NULL,
		answer_face   TEXT NOT NULL,
		question      TEXT NOT NULL,
		response      TEXT NOT NULL,
		correct       INTEGER NOT NULL,
		elapsed_ms    INTEGER NOT NULL DEFAULT 0,
		created_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		sequence      INTEGER PRIMARY KEY,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		created_at    INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
