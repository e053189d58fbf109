package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Violet
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Gradient endpoints for progress and weight displays.
var (
	gradientLow  = colorful.Color{R: 0xF4 / 255.0, G: 0x3F / 255.0, B: 0x5E / 255.0}
	gradientHigh = colorful.Color{R: 0x22 / 255.0, G: 0xC5 / 255.0, B: 0x5E / 255.0}
)

// Gradient returns the color at t on the red to green scale. t is clamped
// to [0, 1].
func Gradient(t float64) color.Color {
	t = min(max(t, 0), 1)
	return gradientLow.BlendLab(gradientHigh, t).Clamped()
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Cards
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	CardSelected = Card.
			BorderForeground(Primary)

	CardCorrect = Card.
			BorderForeground(Success)

	CardIncorrect = Card.
			BorderForeground(Error)

	Flashcard = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Secondary).
			Padding(1, 4).
			Align(lipgloss.Center)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Close = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
