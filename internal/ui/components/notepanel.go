package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

// NotePanel shows a spinner while a note loads, then the note rendered as
// Markdown.
type NotePanel struct {
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	body     string
	err      error
}

// NewNotePanel creates an empty panel that wraps Markdown at wrap columns.
func NewNotePanel(wrap int) NotePanel {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		renderer = nil
	}
	return NotePanel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		renderer: renderer,
	}
}

// Start clears the panel and starts the spinner.
func (p *NotePanel) Start() tea.Cmd {
	p.loading = true
	p.body = ""
	p.err = nil
	s := p.spinner
	return func() tea.Msg { return s.Tick() }
}

// Finish stops the spinner and shows markdown, or err when it is set.
func (p *NotePanel) Finish(markdown string, err error) {
	p.loading = false
	if err != nil {
		p.err = err
		return
	}
	p.body = markdown
	if p.renderer != nil {
		if out, rerr := p.renderer.Render(markdown); rerr == nil {
			p.body = out
		}
	}
}

// Reset empties the panel.
func (p *NotePanel) Reset() {
	p.loading = false
	p.body = ""
	p.err = nil
}

// Loading reports whether the spinner is running.
func (p NotePanel) Loading() bool { return p.loading }

// Done reports whether a note or error is shown.
func (p NotePanel) Done() bool { return p.body != "" || p.err != nil }

// Update advances the spinner.
func (p NotePanel) Update(msg tea.Msg) (NotePanel, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || !p.loading {
		return p, nil
	}
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

// View renders the panel; label is shown beside the spinner.
func (p NotePanel) View(label string) string {
	switch {
	case p.loading:
		return p.spinner.View() + " " + theme.Hint.Render(label)
	case p.err != nil:
		return theme.Incorrect.Render("Could not load: " + p.err.Error())
	default:
		return p.body
	}
}
