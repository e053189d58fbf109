// Package weighted provides a mutable list of items that can be sampled
// proportionally to a per-item weight.
package weighted

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Entry pairs an item with its sampling weight.
type Entry[T any] struct {
	Item   T
	Weight float64
}

// List is an unordered collection of weighted items. Draws scan the
// cumulative weights linearly, so weights can change in O(1) without any
// index to rebuild.
//
// A List is not safe for concurrent use.
type List[T any] struct {
	entries []Entry[T]
	total   float64
}

// New creates an empty List.
func New[T any]() *List[T] {
	return &List[T]{}
}

// WithCapacity creates an empty List with room for n entries.
func WithCapacity[T any](n int) *List[T] {
	return &List[T]{entries: make([]Entry[T], 0, n)}
}

// Add appends an item. It panics if weight is negative or NaN.
func (l *List[T]) Add(item T, weight float64) {
	mustBeValid(weight)
	l.entries = append(l.entries, Entry[T]{Item: item, Weight: weight})
	l.total += weight
}

// Len returns the number of entries.
func (l *List[T]) Len() int {
	return len(l.entries)
}

// At returns the entry at index i.
func (l *List[T]) At(i int) Entry[T] {
	return l.entries[i]
}

// Total returns the running sum of all weights.
func (l *List[T]) Total() float64 {
	return l.total
}

// SetWeight replaces the weight at index i. It panics if weight is
// negative or NaN.
func (l *List[T]) SetWeight(i int, weight float64) {
	mustBeValid(weight)
	old := l.entries[i].Weight
	l.entries[i].Weight = weight
	l.total = (l.total - old) + weight
}

// Weights returns a copy of every weight in insertion order.
func (l *List[T]) Weights() []float64 {
	out := make([]float64, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Weight
	}
	return out
}

// Random draws an item with probability proportional to its weight and
// returns it together with its index. ok is false when the list is empty.
func (l *List[T]) Random(rng *rand.Rand) (item T, index int, ok bool) {
	i := l.randomIndex(rng)
	if i < 0 {
		return item, -1, false
	}
	return l.entries[i].Item, i, true
}

// RemoveRandom draws like Random and then swap-removes the drawn entry, so
// the order of the remaining entries is not preserved.
func (l *List[T]) RemoveRandom(rng *rand.Rand) (item T, weight float64, ok bool) {
	i := l.randomIndex(rng)
	if i < 0 {
		return item, 0, false
	}
	e := l.entries[i]
	last := len(l.entries) - 1
	l.entries[i] = l.entries[last]
	l.entries = l.entries[:last]
	l.total -= e.Weight
	if len(l.entries) == 0 {
		l.total = 0
	}
	return e.Item, e.Weight, true
}

func (l *List[T]) randomIndex(rng *rand.Rand) int {
	switch len(l.entries) {
	case 0:
		return -1
	case 1:
		return 0
	}

	needle := rng.Float64() * l.total
	running := 0.0
	fallback := -1
	for i, e := range l.entries {
		running += e.Weight
		if needle < running {
			return i
		}
		if e.Weight > 0 {
			fallback = i
		}
	}

	// Rounding drift can leave the needle at or past the last crossing.
	if fallback >= 0 {
		return fallback
	}
	// All weights are zero.
	return rng.IntN(len(l.entries))
}

func mustBeValid(weight float64) {
	if weight < 0 || math.IsNaN(weight) {
		panic(fmt.Sprintf("weighted: invalid weight %v", weight))
	}
}
