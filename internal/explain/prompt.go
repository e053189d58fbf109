package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/cardiz/internal/llm"
)

const systemPrompt = `You are a friendly tutor helping someone memorize flashcards. They just answered a card wrong. Be brief and concrete.`

func buildPrompt(m Mistake) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deck: %s\n", m.Deck)
	fmt.Fprintf(&b, "Question (%s): %s\n", m.QuestionFace, m.Question)
	fmt.Fprintf(&b, "Correct answer (%s): %s\n", m.AnswerFace, m.Expected)
	fmt.Fprintf(&b, "Learner answered: %s\n", m.Given)
	if m.GivenMeans != "" {
		fmt.Fprintf(&b, "The learner's answer actually belongs to: %s\n", m.GivenMeans)
	}

	b.WriteString(`
Instructions:
1. In 2-4 sentences, explain why the correct answer matches the question and how it differs from the learner's answer.
2. Give one short mnemonic that links the question to the correct answer.
3. Use plain Markdown. No headings.`)

	return b.String()
}

// Schema is the JSON shape of an explanation.
var Schema = &llm.Schema{
	Name:        "card-explanation",
	Description: "Why a flashcard answer was wrong, with a mnemonic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "2-4 sentences on the difference between the correct and the given answer",
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "One memorable hook linking question and answer",
			},
		},
		"required":             []any{"explanation", "mnemonic"},
		"additionalProperties": false,
	},
}
