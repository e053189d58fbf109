// Package explain asks a language model why a flashcard answer was wrong
// and for a mnemonic to remember the right one.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/llm"
	"github.com/abhisek/cardiz/internal/problemgen"
)

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the TUI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.4,
	}
}

// Mistake is a wrong answer worth explaining.
type Mistake struct {
	Deck         string
	QuestionFace string
	AnswerFace   string

	// Question is the prompt that was shown.
	Question string

	// Expected is the correct answer.
	Expected string

	// Given is what the learner chose or typed.
	Given string

	// GivenMeans is the question-face value of the card the learner
	// picked, when it has one.
	GivenMeans string
}

// FromMatch builds the Mistake for answering p with option chosen.
func FromMatch(decks []deck.Deck, p *problemgen.MatchProblem, chosen int) Mistake {
	d, _ := deck.Resolve(decks, p.Question.Card)
	m := Mistake{
		Deck:         d.Name,
		QuestionFace: p.QuestionFace,
		AnswerFace:   p.AnswerFace,
		Question:     p.Question.Prompt,
		Expected:     p.Answers[p.CorrectIndex].Prompt,
		Given:        p.Answers[chosen].Prompt,
	}
	cd, card := deck.Resolve(decks, p.Answers[chosen].Card)
	if i := cd.FaceIndex(p.QuestionFace); i >= 0 && card[i] != nil {
		m.GivenMeans = card[i].Join()
	}
	return m
}

// FromTyped builds the Mistake for typing input in answer to p.
func FromTyped(decks []deck.Deck, p *problemgen.TypeProblem, input string) Mistake {
	d, _ := deck.Resolve(decks, p.Question.Card)
	return Mistake{
		Deck:         d.Name,
		QuestionFace: p.QuestionFace,
		AnswerFace:   p.AnswerFace,
		Question:     p.Question.Prompt,
		Expected:     p.Expected.Join(),
		Given:        input,
	}
}

// Explanation is the model's answer.
type Explanation struct {
	Explanation string `json:"explanation"`
	Mnemonic    string `json:"mnemonic"`
}

// Markdown renders the explanation for display.
func (e *Explanation) Markdown() string {
	var b strings.Builder
	b.WriteString("## Why\n\n")
	b.WriteString(e.Explanation)
	if e.Mnemonic != "" {
		b.WriteString("\n\n## Remember\n\n> ")
		b.WriteString(strings.ReplaceAll(e.Mnemonic, "\n", "\n> "))
	}
	b.WriteString("\n")
	return b.String()
}

// Explainer explains mistakes. *Service implements it.
type Explainer interface {
	Explain(ctx context.Context, m Mistake) (*Explanation, error)
}

// Service generates explanations.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service backed by provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Explain asks the model about m. It blocks until the provider returns or
// ctx is done.
func (s *Service) Explain(ctx context.Context, m Mistake) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(m),
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("explain %q: %w", m.Question, err)
	}

	out, err := llm.Decode[Explanation](resp)
	if err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	return &out, nil
}
