package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/abhisek/cardiz/internal/stats"
)

type cardStatsRepo struct {
	db *sql.DB
}

func (r *cardStatsRepo) Load(ctx context.Context) (map[string]stats.CardStats, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT card_id, correct, incorrect FROM card_stats`)
	if err != nil {
		return nil, fmt.Errorf("query card stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]stats.CardStats)
	for rows.Next() {
		var (
			id string
			cs stats.CardStats
		)
		if err := rows.Scan(&id, &cs.Correct, &cs.Incorrect); err != nil {
			return nil, fmt.Errorf("scan card stats: %w", err)
		}
		out[id] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card stats: %w", err)
	}
	return out, nil
}

// Save replaces the stored stats with m in one transaction.
func (r *cardStatsRepo) Save(ctx context.Context, m map[string]stats.CardStats) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM card_stats`); err != nil {
		return fmt.Errorf("clear card stats: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO card_stats (card_id, correct, incorrect) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for id, cs := range m {
		if _, err := stmt.ExecContext(ctx, id, cs.Correct, cs.Incorrect); err != nil {
			return fmt.Errorf("insert card stats %q: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit card stats: %w", err)
	}
	return nil
}

func (r *cardStatsRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM card_stats`); err != nil {
		return fmt.Errorf("reset card stats: %w", err)
	}
	return nil
}
