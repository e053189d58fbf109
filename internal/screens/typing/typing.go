// Package typing is the quiz screen where the learner types the answer.
package typing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cardiz/internal/explain"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/screen"
	"github.com/abhisek/cardiz/internal/screens/summary"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/ui/components"
	"github.com/abhisek/cardiz/internal/ui/layout"
	"github.com/abhisek/cardiz/internal/ui/theme"
)

const answerLimit = 80

// Options configures the screen.
type Options struct {
	// Explainer, if set, enables the explain key on wrong answers.
	Explainer explain.Explainer

	// Timeout bounds each explanation request.
	Timeout time.Duration

	// Line shows the pool weights as a sparkline.
	Line bool
}

type phase int

const (
	phaseLoading phase = iota
	phaseAsking
	phaseResult
	phaseError
)

type keyMap struct {
	Submit  key.Binding
	Next    key.Binding
	Explain key.Binding
	Quit    key.Binding
}

// Screen asks typed problems from a session until it ends.
type Screen struct {
	ctx  context.Context
	sess *session.Session
	opts Options
	keys keyMap

	phase   phase
	problem *problemgen.TypeProblem
	input   components.TextInput
	outcome session.TypedOutcome
	note    components.NotePanel
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a typing screen.
func New(ctx context.Context, sess *session.Session, opts Options) *Screen {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Screen{
		ctx:  ctx,
		sess: sess,
		opts: opts,
		keys: keyMap{
			Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			Next:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
			Explain: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "explain")),
			Quit:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		},
		input: components.NewTextInput("Type your answer...", answerLimit),
		note:  components.NewNotePanel(70),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.next()
}

func (s *Screen) Title() string {
	return "Type"
}

func (s *Screen) Status() string {
	return s.sess.Progress().Label()
}

func (s *Screen) KeyHints() []key.Binding {
	switch s.phase {
	case phaseAsking:
		return []key.Binding{s.keys.Submit, s.keys.Quit}
	case phaseResult:
		hints := []key.Binding{s.keys.Next}
		if s.canExplain() {
			hints = append(hints, s.keys.Explain)
		}
		return append(hints, s.keys.Quit)
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case promptReadyMsg:
		return s.handlePrompt(msg)

	case explainedMsg:
		if msg.problem == s.problem {
			s.note.Finish(msg.markdown, msg.err)
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.note, cmd = s.note.Update(msg)
	return s, cmd
}

func (s *Screen) handlePrompt(msg promptReadyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case errors.Is(msg.err, session.ErrCompleted),
		errors.Is(msg.err, session.ErrFinished),
		errors.Is(msg.err, problemgen.ErrPoolEmpty):
		return s, s.finish()
	case msg.err != nil:
		s.phase = phaseError
		s.err = msg.err
		return s, nil
	}

	s.problem = msg.problem
	s.input = components.NewTextInput("Type your answer...", answerLimit)
	s.note.Reset()
	s.phase = phaseAsking
	return s, s.input.Init()
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAsking:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s.quit()
		case key.Matches(msg, s.keys.Submit):
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseResult:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s.quit()
		case key.Matches(msg, s.keys.Next):
			return s, s.next()
		case key.Matches(msg, s.keys.Explain):
			if s.canExplain() {
				return s, s.explain()
			}
		}

	case phaseError:
		return s, s.finish()
	}
	return s, nil
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	answer := s.input.Value()
	if strings.TrimSpace(answer) == "" {
		return s, nil
	}
	s.outcome = s.sess.AnswerTyped(s.ctx, answer)
	switch s.outcome.Grade {
	case session.GradeCorrect:
		s.input.Submit(components.MarkCorrect)
	case session.GradeClose:
		s.input.Submit(components.MarkClose)
	default:
		s.input.Submit(components.MarkWrong)
	}
	s.phase = phaseResult
	return s, nil
}

func (s *Screen) canExplain() bool {
	return s.opts.Explainer != nil && s.phase == phaseResult && !s.outcome.Correct() &&
		!s.note.Loading() && !s.note.Done()
}

func (s *Screen) explain() tea.Cmd {
	p := s.problem
	mistake := explain.FromTyped(s.sess.Decks(), p, s.input.Value())
	explainer, ctx, timeout := s.opts.Explainer, s.ctx, s.opts.Timeout

	request := func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		e, err := explainer.Explain(ctx, mistake)
		if err != nil {
			return explainedMsg{problem: p, err: err}
		}
		return explainedMsg{problem: p, markdown: e.Markdown()}
	}
	return tea.Batch(s.note.Start(), request)
}

func (s *Screen) next() tea.Cmd {
	s.phase = phaseLoading
	sess := s.sess
	return func() tea.Msg {
		p, err := sess.NextPrompt()
		return promptReadyMsg{problem: p, err: err}
	}
}

func (s *Screen) quit() (screen.Screen, tea.Cmd) {
	s.sess.Quit()
	return s, s.finish()
}

func (s *Screen) finish() tea.Cmd {
	return router.Replace(summary.New(s.sess.Summary(), s.sess.Decks()))
}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Drawing a card...")
	case phaseError:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %v\n\n  Press any key to see your summary.", s.err))
	}

	p := s.problem
	inner := min(width-4, 76)
	var b strings.Builder

	progress := s.sess.Progress()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar(progress.Label(), progress.Ratio(), inner).View()))
	b.WriteString("\n")
	if s.opts.Line && len(p.Weights) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Sparkline(p.Weights, inner)))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(layout.Center(width, theme.Subtitle, p.QuestionFace))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Title, p.Question.Prompt))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("Type the %s:", p.AnswerFace)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n")

	if s.phase == phaseResult {
		style := theme.Incorrect
		switch s.outcome.Grade {
		case session.GradeCorrect:
			style = theme.Correct
		case session.GradeClose:
			style = theme.Close
		}
		b.WriteString("\n")
		b.WriteString(layout.Center(width, style, s.outcome.Describe(p.Expected)))
		if note := s.note.View("Asking for an explanation..."); note != "" {
			b.WriteString("\n\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, note))
		}
	}
	return b.String()
}
