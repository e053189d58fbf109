package session

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/cardiz/internal/deck"
)

// MaxMissed is the number of most-missed cards kept in a summary.
const MaxMissed = 5

// MissedCard is a card answered wrongly at least once this session.
type MissedCard struct {
	Card  deck.DeckCard
	ID    string
	Front string
	Count int
}

// Summary holds the data shown when a session ends.
type Summary struct {
	SessionID string
	Mode      Mode
	Phase     Phase
	Duration  time.Duration
	Correct   int
	Total     int
	Missed    []MissedCard

	// Err is the error that aborted the session, if any.
	Err error
}

// Summary builds the summary of the session so far.
func (s *Session) Summary() *Summary {
	decks := s.Decks()
	missed := make([]MissedCard, 0, len(s.missed))
	for dc, n := range s.missed {
		d, c := deck.Resolve(decks, dc)
		missed = append(missed, MissedCard{
			Card:  dc,
			ID:    d.CardID(dc.Card),
			Front: c.Front().Join(),
			Count: n,
		})
	}
	slices.SortFunc(missed, func(a, b MissedCard) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(missed) > MaxMissed {
		missed = missed[:MaxMissed]
	}

	return &Summary{
		SessionID: s.id,
		Mode:      s.mode,
		Phase:     s.Phase(),
		Duration:  s.now().Sub(s.startedAt),
		Correct:   s.progress.Correct,
		Total:     s.progress.Total,
		Missed:    missed,
		Err:       s.err,
	}
}

// Accuracy returns Correct/Total, 0 when nothing was answered.
func (s *Summary) Accuracy() float64 {
	return Progress{Correct: s.Correct, Total: s.Total}.Ratio()
}

// Line returns the score line, e.g. "You got 3 correct out of 4 (75.00%)".
func (s *Summary) Line() string {
	return fmt.Sprintf("You got %d correct out of %d (%.2f%%)", s.Correct, s.Total, s.Accuracy()*100)
}

// Rating returns the rating message for the score.
func (s *Summary) Rating() string {
	return Rating(s.Correct, s.Total)
}

// Rating returns a message praising a score, or "" when fewer than ten
// problems were answered.
func Rating(correct, total int) string {
	if total < 10 {
		return ""
	}
	percent := float64(correct) * 100 / float64(total)
	switch {
	case correct == total && total >= 1000:
		return "🌌🌟🚀 Out of this world! 🚀🌟🌌"
	case correct == total && total >= 100:
		return "🚀🌌 Spectacular! 🌌🚀"
	case correct == total:
		return "🌟 Perfect! 🌟"
	case percent >= 90:
		return "🥇 Excellent! 🥇"
	case percent >= 80:
		return "🥈 Well done! 🥈"
	case percent >= 70:
		return "🥉 Nice! 🥉"
	default:
		return "Keep up the practice!"
	}
}
