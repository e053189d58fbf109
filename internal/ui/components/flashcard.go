package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

// FaceLine is one named face value of a card.
type FaceLine struct {
	Name  string
	Value string
}

// Flashcard renders a card box. With all unset only the first face is
// shown.
func Flashcard(deckName string, faces []FaceLine, all bool, width int) string {
	if len(faces) == 0 {
		return ""
	}
	shown := faces[:1]
	if all {
		shown = faces
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(deckName))
	for _, f := range shown {
		b.WriteString("\n\n")
		b.WriteString(nameStyle.Render(f.Name))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render(f.Value))
	}

	return theme.Flashcard.Width(min(max(width-8, 30), 70)).Render(b.String())
}
