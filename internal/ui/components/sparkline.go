package components

import (
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as one row of block characters at most width
// cells wide. When there are more values than cells, each cell shows the
// largest value of its bucket. Heavier cells are drawn redder.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	cells := bucket(values, width)

	top := slices.Max(cells)
	var b strings.Builder
	for _, v := range cells {
		level := 0.0
		if top > 0 {
			level = v / top
		}
		idx := min(int(level*float64(len(sparkBlocks)-1)+0.5), len(sparkBlocks)-1)
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Gradient(1 - level)).
			Render(string(sparkBlocks[idx])))
	}
	return b.String()
}

func bucket(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i, v := range values {
		j := i * width / len(values)
		out[j] = max(out[j], v)
	}
	return out
}
