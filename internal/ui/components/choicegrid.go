package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

// ChoiceGrid lays out answer options in a two-column grid numbered from 1.
// Selection moves with arrow keys; the owning screen maps keys to Move and
// Choose.
type ChoiceGrid struct {
	Options      []string
	Selected     int
	Submitted    bool
	ChosenIndex  int
	CorrectIndex int
}

// NewChoiceGrid creates a grid with nothing chosen yet.
func NewChoiceGrid(options []string, correctIndex int) ChoiceGrid {
	return ChoiceGrid{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Move shifts the selection by dx columns and dy rows, staying inside the
// grid.
func (g *ChoiceGrid) Move(dx, dy int) {
	if g.Submitted || len(g.Options) == 0 {
		return
	}
	row, col := g.Selected/2, g.Selected%2
	row += dy
	col += dx
	if col < 0 || col > 1 || row < 0 {
		return
	}
	if next := row*2 + col; next < len(g.Options) {
		g.Selected = next
	}
}

// Choose submits option i.
func (g *ChoiceGrid) Choose(i int) {
	g.Submitted = true
	g.Selected = i
	g.ChosenIndex = i
}

// IsCorrect returns true if the submitted option is the correct one.
func (g ChoiceGrid) IsCorrect() bool {
	return g.Submitted && g.ChosenIndex == g.CorrectIndex
}

// View renders the grid to fit width.
func (g ChoiceGrid) View(width int) string {
	cellWidth := max((width-4)/2, 12)

	var rows []string
	for i := 0; i < len(g.Options); i += 2 {
		left := g.cell(i, cellWidth)
		right := ""
		if i+1 < len(g.Options) {
			right = g.cell(i+1, cellWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g ChoiceGrid) cell(i, width int) string {
	text := fmt.Sprintf("%d) %s", i+1, g.Options[i])

	box := theme.Card
	label := theme.Unselected
	switch {
	case g.Submitted && i == g.CorrectIndex:
		box, label = theme.CardCorrect, theme.Correct
	case g.Submitted && i == g.ChosenIndex:
		box, label = theme.CardIncorrect, theme.Incorrect
	case g.Submitted:
		label = lipgloss.NewStyle().Foreground(theme.TextDim)
	case i == g.Selected:
		box, label = theme.CardSelected, theme.Selected
	}
	return box.Width(width).Render(label.Render(text))
}
