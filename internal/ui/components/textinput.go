package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cardiz/internal/ui/theme"
)

// Mark is the verdict shown after a submitted answer.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkClose
	MarkWrong
)

// TextInput wraps bubbles/textinput with cardiz styling.
type TextInput struct {
	Model textinput.Model
	mark  Mark
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Input is ignored once a mark is set.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.mark != MarkNone {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input followed by its mark.
func (t TextInput) View() string {
	view := t.Model.View()
	switch t.mark {
	case MarkCorrect:
		view += " " + theme.Correct.Render("✓")
	case MarkClose:
		view += " " + theme.Close.Render("≈")
	case MarkWrong:
		view += " " + theme.Incorrect.Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit freezes the input with a verdict.
func (t *TextInput) Submit(m Mark) {
	t.mark = m
	t.Model.Blur()
}

// Submitted reports whether a verdict is shown.
func (t TextInput) Submitted() bool {
	return t.mark != MarkNone
}
