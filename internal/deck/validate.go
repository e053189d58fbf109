package deck

import "fmt"

// Validate checks the deck invariants in a fixed order and returns the
// first violation as a *ValidationError.
func (d *Deck) Validate() error {
	if len(d.Faces) < 2 {
		return d.invalid(-1, ErrNotEnoughFaces, fmt.Sprintf("deck has %d, need at least 2", len(d.Faces)))
	}

	seen := make(map[string]bool, len(d.Faces))
	for _, name := range d.Faces {
		if seen[name] {
			return d.invalid(-1, ErrDuplicateFace, name)
		}
		seen[name] = true
	}

	for i, c := range d.Cards {
		switch {
		case len(c) > len(d.Faces):
			return d.invalid(i, ErrTooManyFaces, fmt.Sprintf("has %d, deck has %d", len(c), len(d.Faces)))
		case len(c) < len(d.Faces):
			return d.invalid(i, ErrNotEnoughFaces, fmt.Sprintf("has %d, deck has %d", len(c), len(d.Faces)))
		}

		present := c.Present()
		if len(present) < 2 {
			return d.invalid(i, ErrNotEnoughUsableFaces, fmt.Sprintf("has %d present", len(present)))
		}
		for _, fi := range present {
			if c[fi].Empty() {
				return d.invalid(i, ErrEmptyFace, d.Faces[fi])
			}
		}
	}

	byFront := make(map[string][]int, len(d.Cards))
	for i, c := range d.Cards {
		key := c.Front().Join()
		for _, j := range byFront[key] {
			if FacesEqual(d.Cards[j].Front(), c.Front()) {
				return d.invalid(i, ErrDuplicateFront, fmt.Sprintf("%q already used by card %d", key, j+1))
			}
		}
		byFront[key] = append(byFront[key], i)
	}

	return nil
}

// idCollisions returns pairs of cards whose fronts differ structurally but
// render the same display string, and therefore share a CardID.
func (d *Deck) idCollisions() [][2]int {
	var out [][2]int
	first := make(map[string]int, len(d.Cards))
	for i, c := range d.Cards {
		key := c.Front().Join()
		if j, ok := first[key]; ok {
			out = append(out, [2]int{j, i})
			continue
		}
		first[key] = i
	}
	return out
}

func (d *Deck) invalid(card int, kind error, detail string) *ValidationError {
	return &ValidationError{
		Path:   d.Path,
		Deck:   d.Name,
		Card:   card,
		Kind:   kind,
		Detail: detail,
	}
}

// ValidateSet checks cross-deck invariants.
func ValidateSet(decks []Deck) error {
	byName := make(map[string]int, len(decks))
	for i := range decks {
		if j, ok := byName[decks[i].Name]; ok {
			return &ValidationError{
				Path:   decks[i].Path,
				Deck:   decks[i].Name,
				Card:   -1,
				Kind:   ErrDuplicateDeckName,
				Detail: fmt.Sprintf("also defined in %s", decks[j].Path),
			}
		}
		byName[decks[i].Name] = i
	}
	return nil
}
