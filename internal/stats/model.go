package stats

import (
	"context"
	"fmt"
	"maps"
)

// Model holds the stats of every card seen so far. It is loaded once from
// a Store when a session starts and written back once when it ends.
//
// A Model is not safe for concurrent use.
type Model struct {
	store Store
	stats map[string]CardStats
}

// NewModel creates an empty Model that saves to store. store may be nil for
// a model that is never persisted.
func NewModel(store Store) *Model {
	return &Model{store: store, stats: make(map[string]CardStats)}
}

// Load creates a Model from the contents of store.
func Load(ctx context.Context, store Store) (*Model, error) {
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	m := NewModel(store)
	maps.Copy(m.stats, loaded)
	return m, nil
}

// Save writes the whole map to the backing store.
func (m *Model) Save(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, m.Snapshot()); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// Stats returns the counts for id. Unknown ids have zero counts.
func (m *Model) Stats(id string) CardStats {
	return m.stats[id]
}

// Weight returns the sampling weight for id.
func (m *Model) Weight(id string) float64 {
	return Weight(m.stats[id])
}

// RecordCorrect counts a correct answer for id and returns the new weight.
func (m *Model) RecordCorrect(id string) float64 {
	s := m.stats[id]
	s.Correct++
	m.stats[id] = s
	return Weight(s)
}

// RecordIncorrect counts an incorrect answer for id and returns the new
// weight.
func (m *Model) RecordIncorrect(id string) float64 {
	s := m.stats[id]
	s.Incorrect++
	m.stats[id] = s
	return Weight(s)
}

// Snapshot returns a copy of every card's stats.
func (m *Model) Snapshot() map[string]CardStats {
	return maps.Clone(m.stats)
}

// Len returns the number of cards with recorded stats.
func (m *Model) Len() int {
	return len(m.stats)
}

// Reset forgets all stats. The store is untouched until the next Save.
func (m *Model) Reset() {
	clear(m.stats)
}
