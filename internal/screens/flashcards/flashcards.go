// Package flashcards browses cards one at a time.
package flashcards

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/screen"
	"github.com/abhisek/cardiz/internal/ui/components"
	"github.com/abhisek/cardiz/internal/ui/layout"
	"github.com/abhisek/cardiz/internal/ui/theme"
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Flip key.Binding
	Back key.Binding
}

// Screen shows a wrapping sequence of cards. Only the front is shown until
// the card is flipped.
type Screen struct {
	decks []deck.Deck
	cards []deck.DeckCard
	index int
	all   bool
	keys  keyMap
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a flashcard screen over cards, which index into decks.
func New(decks []deck.Deck, cards []deck.DeckCard) *Screen {
	return &Screen{
		decks: decks,
		cards: cards,
		keys: keyMap{
			Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
			Next: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
			Flip: key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "flip")),
			Back: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "back")),
		},
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Flashcards"
}

func (s *Screen) Status() string {
	if len(s.cards) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", s.index+1, len(s.cards))
}

func (s *Screen) KeyHints() []key.Binding {
	return []key.Binding{s.keys.Prev, s.keys.Next, s.keys.Flip, s.keys.Back}
}

// Index returns the position of the shown card.
func (s *Screen) Index() int { return s.index }

// Flipped reports whether every face is shown.
func (s *Screen) Flipped() bool { return s.all }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, s.keys.Back):
		return s, router.Pop
	case len(s.cards) == 0:
		return s, nil
	case key.Matches(kmsg, s.keys.Prev):
		s.index = (s.index - 1 + len(s.cards)) % len(s.cards)
		s.all = false
	case key.Matches(kmsg, s.keys.Next):
		s.index = (s.index + 1) % len(s.cards)
		s.all = false
	case key.Matches(kmsg, s.keys.Flip):
		s.all = !s.all
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	if len(s.cards) == 0 {
		return layout.Center(width, theme.Hint, "\n\nNo cards to show.")
	}

	d, card := deck.Resolve(s.decks, s.cards[s.index])
	var faces []components.FaceLine
	for i, f := range card {
		if f != nil {
			faces = append(faces, components.FaceLine{Name: d.Faces[i], Value: f.Join()})
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Flashcard(d.Name, faces, s.all, width)))
	b.WriteString("\n\n")
	hint := "space to reveal every face"
	if s.all {
		hint = "space to show the front only"
	}
	b.WriteString(layout.Center(width, theme.Hint, hint))
	return b.String()
}
