package explain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/llm"
	"github.com/abhisek/cardiz/internal/problemgen"
)

func testDecks() []deck.Deck {
	return []deck.Deck{{
		Name:  "Spanish",
		Faces: []string{"English", "Spanish"},
		Cards: []deck.Card{
			{deck.Single("dog"), deck.Single("perro")},
			{deck.Single("cat"), deck.Single("gato")},
			{deck.Single("bird"), deck.Single("pájaro")},
			{deck.Single("fish"), deck.Single("pez")},
		},
	}}
}

func testProblem() *problemgen.MatchProblem {
	answer := func(card int, prompt string, correct bool) problemgen.Answer {
		return problemgen.Answer{
			PromptCard: problemgen.PromptCard{Prompt: prompt, Card: deck.DeckCard{Card: card}, PoolIndex: card},
			Correct:    correct,
		}
	}
	return &problemgen.MatchProblem{
		QuestionFace: "English",
		AnswerFace:   "Spanish",
		Question:     problemgen.PromptCard{Prompt: "dog", Card: deck.DeckCard{Card: 0}},
		Answers: []problemgen.Answer{
			answer(1, "gato", false),
			answer(0, "perro", true),
			answer(2, "pájaro", false),
			answer(3, "pez", false),
		},
		CorrectIndex: 1,
	}
}

func TestFromMatch(t *testing.T) {
	m := FromMatch(testDecks(), testProblem(), 0)
	assert.Equal(t, Mistake{
		Deck:         "Spanish",
		QuestionFace: "English",
		AnswerFace:   "Spanish",
		Question:     "dog",
		Expected:     "perro",
		Given:        "gato",
		GivenMeans:   "cat",
	}, m)
}

func TestFromTyped(t *testing.T) {
	p := &problemgen.TypeProblem{
		QuestionFace: "English",
		AnswerFace:   "Spanish",
		Question:     problemgen.PromptCard{Prompt: "dog", Card: deck.DeckCard{Card: 0}},
		Expected:     deck.Single("perro"),
	}
	m := FromTyped(testDecks(), p, "pero")
	assert.Equal(t, "perro", m.Expected)
	assert.Equal(t, "pero", m.Given)
	assert.Empty(t, m.GivenMeans)
}

func TestService_Explain(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"Perro means dog; gato is cat.","mnemonic":"A PERRO PERforms tricks."}`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Explain(context.Background(), FromMatch(testDecks(), testProblem(), 0))
	require.NoError(t, err)
	assert.Equal(t, "Perro means dog; gato is cat.", got.Explanation)
	assert.Equal(t, "A PERRO PERforms tricks.", got.Mnemonic)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	req := calls[0]
	assert.Equal(t, Schema, req.Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, req.MaxTokens)
	assert.Contains(t, req.Prompt, "Question (English): dog")
	assert.Contains(t, req.Prompt, "Correct answer (Spanish): perro")
	assert.Contains(t, req.Prompt, "actually belongs to: cat")
}

func TestService_ExplainRejectsOffSchema(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"explanation":"no mnemonic"}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), Mistake{Question: "dog"})
	var invalid *llm.InvalidResponseError
	assert.True(t, errors.As(err, &invalid), "err = %v", err)
}

func TestService_ExplainProviderError(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig())
	_, err := svc.Explain(context.Background(), Mistake{Question: "dog"})
	var unavailable *llm.UnavailableError
	assert.True(t, errors.As(err, &unavailable), "err = %v", err)
}

func TestExplanation_Markdown(t *testing.T) {
	e := &Explanation{Explanation: "Because.", Mnemonic: "line one\nline two"}
	md := e.Markdown()
	assert.True(t, strings.HasPrefix(md, "## Why\n\nBecause."))
	assert.Contains(t, md, "> line one\n> line two")

	assert.NotContains(t, (&Explanation{Explanation: "x"}).Markdown(), "Remember")
}
