package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

// ProgressBar displays a horizontal bar whose filled cells blend from red
// to green.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewProgressBar creates a new progress bar. percent is in [0, 1].
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	barWidth := max(p.Width-lipgloss.Width(label), 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	for i := range filled {
		t := float64(i) / float64(max(barWidth-1, 1))
		b.WriteString(lipgloss.NewStyle().Background(theme.Gradient(t)).Render(" "))
	}
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))

	return label + b.String()
}
