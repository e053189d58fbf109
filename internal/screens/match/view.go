package match

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/components"
	"github.com/abhisek/cardiz/internal/ui/layout"
	"github.com/abhisek/cardiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return renderLoading(width)
	case phaseError:
		return renderError(width, s.err)
	}

	p := s.problem
	inner := min(width-4, 76)
	var b strings.Builder

	progress := s.sess.Progress()
	label := progress.Label()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar(label, progress.Ratio(), inner).View()))
	b.WriteString("\n")

	if s.opts.Line && len(p.Weights) > 0 {
		line := lipgloss.NewStyle().Foreground(theme.TextDim).Render(components.Sparkline(p.Weights, inner))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, theme.Subtitle, p.QuestionFace))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Title, p.Question.Prompt))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("Which is the %s?", p.AnswerFace)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.grid.View(inner)))
	b.WriteString("\n")

	if s.phase == phaseResult {
		b.WriteString("\n")
		b.WriteString(s.renderResult(width))
	}
	return b.String()
}

func (s *Screen) renderResult(width int) string {
	p := s.problem
	var b strings.Builder

	if s.outcome.Correct {
		b.WriteString(layout.Center(width, theme.Correct, "Correct!"))
	} else {
		answer := fmt.Sprintf("Not quite. The answer is %d) %s", p.CorrectIndex+1, p.Answers[p.CorrectIndex].Prompt)
		b.WriteString(layout.Center(width, theme.Incorrect, answer))
	}
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("Press %d to continue", p.CorrectIndex+1)))

	if note := s.note.View("Asking for an explanation..."); note != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, note))
	}
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Drawing a card...")
}

func renderError(width int, err error) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %v\n\n  Press any key to see your summary.", err))
}
