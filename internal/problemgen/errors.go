package problemgen

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolEmpty is returned when there are no cards left to draw.
	ErrPoolEmpty = errors.New("no cards to draw from")

	// ErrNoFilteredFace is returned when repeated draws found no card
	// exposing any of the requested question faces.
	ErrNoFilteredFace = errors.New("no card has any of the requested faces")
)

// DeckMismatchError is returned when the loaded decks cannot supply
// AnswersPerProblem distinct options for a question/answer face pairing.
type DeckMismatchError struct {
	Question     string
	QuestionFace string
	AnswerFace   string
	Deck         string
	Found        int
}

func (e *DeckMismatchError) Error() string {
	return fmt.Sprintf("deck mismatch: only %d distinct %q answers for %q (%s) in deck %q",
		e.Found, e.AnswerFace, e.Question, e.QuestionFace, e.Deck)
}
