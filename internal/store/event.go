package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// eventClock numbers answer and LLM events from one shared counter so a
// session's events of both kinds interleave in the order they happened.
type eventClock struct {
	mu sync.Mutex
	db *sql.DB
}

func newEventClock(db *sql.DB) (*eventClock, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS event_clock (
			id   INTEGER PRIMARY KEY CHECK (id = 1),
			last INTEGER NOT NULL DEFAULT 0
		)`,
		`INSERT OR IGNORE INTO event_clock (id, last) VALUES (1, 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init event clock: %w", err)
		}
	}
	return &eventClock{db: db}, nil
}

// Tick advances the clock and returns the new value. The first tick is 1.
func (c *eventClock) Tick(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	row := c.db.QueryRowContext(ctx, `UPDATE event_clock SET last = last + 1 WHERE id = 1 RETURNING last`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("tick event clock: %w", err)
	}
	return n, nil
}
