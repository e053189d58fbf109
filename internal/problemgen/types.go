package problemgen

import "github.com/abhisek/cardiz/internal/deck"

// AnswersPerProblem is the number of options shown for every match
// problem. Key bindings and the answer grid assume four.
const AnswersPerProblem = 4

// PromptCard is one displayable face value bound to the card it came from.
type PromptCard struct {
	// Prompt is the rendered face value.
	Prompt string

	// Card addresses the originating card in the loaded decks.
	Card deck.DeckCard

	// PoolIndex is the card's index in the weighted pool, or -1 when the
	// card is not part of the pool.
	PoolIndex int
}

// Answer is one option of a MatchProblem.
type Answer struct {
	PromptCard
	Correct bool
}

// MatchProblem asks which of four answer-face values belongs to the
// question-face value.
type MatchProblem struct {
	// QuestionFace and AnswerFace are the face names being matched.
	QuestionFace string
	AnswerFace   string

	// Question is the drawn card rendered on its question face.
	Question PromptCard

	// Answers holds exactly AnswersPerProblem options.
	Answers []Answer

	// CorrectIndex is the position of the correct option in Answers.
	CorrectIndex int

	// Weights is a snapshot of the pool weights, set only when the
	// generator was created WithWeights.
	Weights []float64
}

// TypeProblem asks the learner to type the answer-face value of a card.
type TypeProblem struct {
	QuestionFace string
	AnswerFace   string
	Question     PromptCard

	// Expected is the answer face. Any of its alternatives is accepted.
	Expected deck.Face

	Weights []float64
}
