package session

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/store"
)

// Grade classifies a typed answer.
type Grade int

const (
	GradeWrong   Grade = iota
	GradeClose         // Within the typo tolerance; still scored wrong
	GradeCorrect
)

func (g Grade) String() string {
	switch g {
	case GradeCorrect:
		return "correct"
	case GradeClose:
		return "close"
	default:
		return "wrong"
	}
}

// TypedOutcome is the result of answering a typed problem.
type TypedOutcome struct {
	Grade Grade

	// Distance is the edit distance to the nearest accepted value.
	Distance int

	// Nearest is the accepted value closest to the input.
	Nearest string

	// Weight is the new weight of the question card.
	Weight float64
}

// Correct reports whether the answer was accepted.
func (o TypedOutcome) Correct() bool { return o.Grade == GradeCorrect }

// GradeTyped compares input with every alternative of expected. Matching
// ignores case and surrounding space. A miss within max(1, len/5) edits of
// an alternative is GradeClose.
func GradeTyped(input string, expected deck.Face) (grade Grade, distance int, nearest string) {
	if expected == nil {
		return GradeWrong, 0, ""
	}
	in := normalize(input)
	distance = -1
	for _, v := range expected.Values() {
		want := normalize(v)
		d := levenshtein.ComputeDistance(in, want)
		if distance < 0 || d < distance {
			distance, nearest = d, v
		}
	}
	switch {
	case distance < 0:
		return GradeWrong, 0, ""
	case distance == 0:
		return GradeCorrect, 0, nearest
	case distance <= closeTolerance(nearest):
		return GradeClose, distance, nearest
	default:
		return GradeWrong, distance, nearest
	}
}

func closeTolerance(s string) int {
	return max(1, utf8.RuneCountInString(s)/5)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AnswerTyped scores input against the current typed problem. Only the
// question card's stats change.
//
// AnswerTyped panics when there is no current typed problem.
func (s *Session) AnswerTyped(ctx context.Context, input string) TypedOutcome {
	p := s.prompt
	if p == nil {
		panic("session: AnswerTyped called without a current prompt")
	}
	s.prompt = nil

	grade, dist, nearest := GradeTyped(input, p.Expected)
	out := TypedOutcome{Grade: grade, Distance: dist, Nearest: nearest}
	if out.Correct() {
		out.Weight = s.recordCorrect(p.Question)
	} else {
		out.Weight = s.recordIncorrect(p.Question)
	}
	s.score(out.Correct())

	s.record(ctx, store.AnswerEvent{
		QuestionFace: p.QuestionFace,
		AnswerFace:   p.AnswerFace,
		CardID:       p.Question.Card.ID(s.Decks()),
		Question:     p.Question.Prompt,
		Response:     input,
		Correct:      out.Correct(),
	})
	return out
}

// Describe renders the outcome as a one-line message.
func (o TypedOutcome) Describe(expected deck.Face) string {
	switch o.Grade {
	case GradeCorrect:
		return "Correct!"
	case GradeClose:
		edits := "edits"
		if o.Distance == 1 {
			edits = "edit"
		}
		return fmt.Sprintf("So close! %d %s away from %q", o.Distance, edits, o.Nearest)
	default:
		return fmt.Sprintf("Incorrect. The answer was %q", expected.Join())
	}
}

