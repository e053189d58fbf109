package problemgen

import (
	"slices"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/weighted"
)

// NewPool seeds a weighted pool with the cards of decks, weighting each
// card by weight(cardID). With faces, only cards that show at least one of
// the named faces are eligible; distractors still come from every deck.
func NewPool(decks []deck.Deck, weight func(id string) float64, faces ...string) *weighted.List[deck.DeckCard] {
	cards := deck.Flatten(decks)
	pool := weighted.WithCapacity[deck.DeckCard](len(cards))
	for _, dc := range cards {
		if len(faces) > 0 && !showsAny(decks, dc, faces) {
			continue
		}
		pool.Add(dc, weight(dc.ID(decks)))
	}
	return pool
}

func showsAny(decks []deck.Deck, dc deck.DeckCard, faces []string) bool {
	d, c := deck.Resolve(decks, dc)
	for _, fi := range c.Present() {
		if slices.Contains(faces, d.Faces[fi]) {
			return true
		}
	}
	return false
}
