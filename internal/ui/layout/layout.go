package layout

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage tells the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("The terminal is too small for a quiz.\n\nNeed %d×%d, have %d×%d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// RenderHeader renders the title bar: the app name on the left, title in
// the middle and status, usually session progress, on the right.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  cardiz")
	progress := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// leave room for the border
	middle := max(width-4-lipgloss.Width(brand)-lipgloss.Width(progress), lipgloss.Width(title))
	heading := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(middle).
		Align(lipgloss.Center).
		Render(title)

	return bar(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, brand, heading, progress))
}

// RenderFooter renders the footer around pre-rendered key help.
func RenderFooter(help string, width int) string {
	return bar(width).Render("  " + help)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}

// Center renders s with style, centered in width.
func Center(width int, style lipgloss.Style, s string) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
