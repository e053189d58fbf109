// Package summary shows the result of a finished session.
package summary

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/screen"
	"github.com/abhisek/cardiz/internal/screens/flashcards"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/ui/layout"
	"github.com/abhisek/cardiz/internal/ui/theme"
)

// Screen displays the session summary.
type Screen struct {
	summary *session.Summary
	decks   []deck.Deck
	review  key.Binding
	done    key.Binding
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a summary screen. decks lets the learner review the missed
// cards.
func New(summary *session.Summary, decks []deck.Deck) *Screen {
	return &Screen{
		summary: summary,
		decks:   decks,
		review:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review missed")),
		done:    key.NewBinding(key.WithKeys("enter", "esc", "q"), key.WithHelp("enter", "done")),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Summary"
}

func (s *Screen) KeyHints() []key.Binding {
	if len(s.summary.Missed) > 0 {
		return []key.Binding{s.review, s.done}
	}
	return []key.Binding{s.done}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.done):
		return s, router.Pop
	case key.Matches(kmsg, s.review) && len(s.summary.Missed) > 0:
		cards := make([]deck.DeckCard, len(s.summary.Missed))
		for i, m := range s.summary.Missed {
			cards[i] = m.Card
		}
		return s, router.Push(flashcards.New(s.decks, cards))
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	heading := "Session complete!"
	if sum.Phase == session.PhaseQuit {
		heading = "Session ended"
	}
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Title, heading))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, theme.Body, sum.Line()))
	b.WriteString("\n")
	if rating := sum.Rating(); rating != "" {
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), rating))
		b.WriteString("\n")
	}

	if sum.Err != nil {
		b.WriteString("\n")
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error), sum.Err.Error()))
		b.WriteString("\n")
	}

	if len(sum.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Most missed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		var rows []string
		for _, m := range sum.Missed {
			rows = append(rows, fmt.Sprintf("%s  %s",
				theme.Incorrect.Render(fmt.Sprintf("✗ %d", m.Count)),
				theme.Body.Render(m.Front)))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))
	}

	return b.String()
}
