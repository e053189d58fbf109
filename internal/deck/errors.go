package deck

import (
	"errors"
	"fmt"
)

var (
	ErrNotEnoughFaces       = errors.New("not enough faces")
	ErrDuplicateFace        = errors.New("duplicate face")
	ErrTooManyFaces         = errors.New("too many faces")
	ErrNotEnoughUsableFaces = errors.New("not enough usable faces")
	ErrEmptyFace            = errors.New("empty face")
	ErrDuplicateFront       = errors.New("duplicate front")
	ErrDuplicateDeckName    = errors.New("duplicate deck name")
	ErrUnsupportedFormat    = errors.New("unsupported deck file format")
	ErrFormatVersion        = errors.New("unsupported deck format version")
)

// ValidationError describes a deck that breaks one of the deck invariants.
// Kind is one of the Err* sentinels above and is matched with errors.Is.
type ValidationError struct {
	Path   string
	Deck   string
	Card   int // -1 when the problem is not tied to a card
	Kind   error
	Detail string
}

func (e *ValidationError) Error() string {
	loc := fmt.Sprintf("deck %q", e.Deck)
	if e.Path != "" {
		loc = fmt.Sprintf("%s (%s)", loc, e.Path)
	}
	if e.Card >= 0 {
		loc = fmt.Sprintf("%s card %d", loc, e.Card+1)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", loc, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %v", loc, e.Kind)
}

func (e *ValidationError) Unwrap() error { return e.Kind }
