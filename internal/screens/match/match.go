// Package match is the multiple-choice quiz screen.
package match

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/explain"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/screen"
	"github.com/abhisek/cardiz/internal/screens/flashcards"
	"github.com/abhisek/cardiz/internal/screens/summary"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/ui/components"
)

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

// Screen asks match problems from a session until it ends, then replaces
// itself with the summary.
type Screen struct {
	ctx  context.Context
	sess *session.Session
	opts Options
	keys keyMap

	phase   phase
	problem *problemgen.MatchProblem
	grid    components.ChoiceGrid
	outcome session.Outcome
	note    components.NotePanel
	err     error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a match screen. ctx is used for answer recording and
// explanation requests.
func New(ctx context.Context, sess *session.Session, opts Options) *Screen {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Screen{
		ctx:  ctx,
		sess: sess,
		opts: opts,
		keys: newKeyMap(),
		note: components.NewNotePanel(70),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.next()
}

func (s *Screen) Title() string {
	return "Match"
}

func (s *Screen) Status() string {
	return s.sess.Progress().Label()
}

func (s *Screen) KeyHints() []key.Binding {
	switch s.phase {
	case phaseAsking:
		return []key.Binding{s.keys.Answer, s.keys.Move, s.keys.Select, s.keys.Quit}
	case phaseResult:
		hints := []key.Binding{s.keys.Next, s.keys.Cards, s.keys.Card}
		if s.canExplain() {
			hints = append(hints, s.keys.Explain)
		}
		return append(hints, s.keys.Quit)
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemMsg:
		return s.handleProblem(msg)

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

func (s *Screen) handleProblem(msg problemMsg) (screen.Screen, tea.Cmd) {
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

	p := msg.problem
	options := make([]string, len(p.Answers))
	for i, a := range p.Answers {
		options[i] = a.Prompt
	}
	s.problem = p
	s.grid = components.NewChoiceGrid(options, p.CorrectIndex)
	s.note.Reset()
	s.phase = phaseAsking
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseAsking:
		return s.handleAskingKey(msg)
	case phaseResult:
		return s.handleResultKey(msg)
	case phaseError:
		return s, s.finish()
	}
	return s, nil
}

func (s *Screen) handleAskingKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s.quit()
	case key.Matches(msg, s.keys.Answer):
		return s.answer(digit(msg.String()))
	case key.Matches(msg, s.keys.Select):
		return s.answer(s.grid.Selected)
	case key.Matches(msg, s.keys.Move):
		switch msg.String() {
		case "up":
			s.grid.Move(0, -1)
		case "down":
			s.grid.Move(0, 1)
		case "left":
			s.grid.Move(-1, 0)
		case "right":
			s.grid.Move(1, 0)
		}
	}
	return s, nil
}

func (s *Screen) handleResultKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		return s.quit()
	case key.Matches(msg, s.keys.Next):
		if digit(msg.String()) == s.problem.CorrectIndex {
			return s, s.next()
		}
	case key.Matches(msg, s.keys.Cards):
		cards := make([]deck.DeckCard, len(s.problem.Answers))
		for i, a := range s.problem.Answers {
			cards[i] = a.Card
		}
		return s, router.Push(flashcards.New(s.sess.Decks(), cards))
	case key.Matches(msg, s.keys.Card):
		a := s.problem.Answers[shifted(msg.String())]
		return s, router.Push(flashcards.New(s.sess.Decks(), []deck.DeckCard{a.Card}))
	case key.Matches(msg, s.keys.Explain):
		if s.canExplain() {
			return s, s.explain()
		}
	}
	return s, nil
}

func (s *Screen) answer(choice int) (screen.Screen, tea.Cmd) {
	if choice < 0 || choice >= len(s.problem.Answers) {
		return s, nil
	}
	s.outcome = s.sess.Answer(s.ctx, choice)
	s.grid.Choose(choice)
	s.phase = phaseResult
	return s, nil
}

func (s *Screen) canExplain() bool {
	return s.opts.Explainer != nil && s.phase == phaseResult && !s.outcome.Correct &&
		!s.note.Loading() && !s.note.Done()
}

func (s *Screen) explain() tea.Cmd {
	p := s.problem
	mistake := explain.FromMatch(s.sess.Decks(), p, s.outcome.Chosen)
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

// next asks the session for a problem off the update loop.
func (s *Screen) next() tea.Cmd {
	s.phase = phaseLoading
	sess := s.sess
	return func() tea.Msg {
		p, err := sess.Next()
		return problemMsg{problem: p, err: err}
	}
}

func (s *Screen) quit() (screen.Screen, tea.Cmd) {
	s.sess.Quit()
	return s, s.finish()
}

func (s *Screen) finish() tea.Cmd {
	return router.Replace(summary.New(s.sess.Summary(), s.sess.Decks()))
}
