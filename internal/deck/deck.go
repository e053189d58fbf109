// Package deck defines flashcard decks and loads them from JSON or YAML
// files.
package deck

import "slices"

// Card holds one value per deck face, index-aligned with Deck.Faces.
// Absent faces are nil.
type Card []Face

// Front returns the first present face, or nil when none is present.
func (c Card) Front() Face {
	for _, f := range c {
		if f != nil {
			return f
		}
	}
	return nil
}

// Present returns the indices of faces that hold a value.
func (c Card) Present() []int {
	idx := make([]int, 0, len(c))
	for i, f := range c {
		if f != nil {
			idx = append(idx, i)
		}
	}
	return idx
}

// Deck is a named collection of cards sharing the same face names.
type Deck struct {
	Name   string
	Faces  []string
	Cards  []Card
	Format string
	Path   string
}

// FaceIndex returns the index of the named face, or -1.
func (d *Deck) FaceIndex(name string) int {
	return slices.Index(d.Faces, name)
}

// CardID returns the persistence key for card i.
func (d *Deck) CardID(i int) string {
	return CardID(d.Name, d.Cards[i].Front())
}

// CardID builds the stable identity of a card from its deck name and the
// display string of its front face.
func CardID(deckName string, front Face) string {
	if front == nil {
		return deckName + ":"
	}
	return deckName + ":" + front.Join()
}

// DeckCard addresses a card by deck and card index into a loaded deck
// slice.
type DeckCard struct {
	Deck int
	Card int
}

// Flatten returns a DeckCard for every card of every deck.
func Flatten(decks []Deck) []DeckCard {
	var out []DeckCard
	for di := range decks {
		for ci := range decks[di].Cards {
			out = append(out, DeckCard{Deck: di, Card: ci})
		}
	}
	return out
}

// Resolve returns the deck and card a DeckCard points to.
func Resolve(decks []Deck, dc DeckCard) (*Deck, Card) {
	d := &decks[dc.Deck]
	return d, d.Cards[dc.Card]
}

// ID returns the persistence key for dc.
func (dc DeckCard) ID(decks []Deck) string {
	return decks[dc.Deck].CardID(dc.Card)
}
