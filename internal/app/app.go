// Package app wires the quiz screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/explain"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/screen"
	"github.com/abhisek/cardiz/internal/screens/flashcards"
	"github.com/abhisek/cardiz/internal/screens/match"
	"github.com/abhisek/cardiz/internal/screens/typing"
	"github.com/abhisek/cardiz/internal/session"
	"github.com/abhisek/cardiz/internal/ui/layout"
	"github.com/abhisek/cardiz/internal/weighted"
)

// Options configures the program.
type Options struct {
	Session   *session.Session
	Explainer explain.Explainer
	Timeout   time.Duration
	Line      bool
	Logger    *log.Logger

	// Rand orders the cards in flash mode.
	Rand *rand.Rand
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *session.Session
	logger *log.Logger
	help   help.Model
	quit   key.Binding
	width  int
	height int
}

// newAppModel creates an AppModel whose first screen follows the session
// mode.
func newAppModel(ctx context.Context, opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	return AppModel{
		router: router.New(initialScreen(ctx, opts)),
		sess:   opts.Session,
		logger: opts.Logger,
		help:   h,
		quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit")),
	}
}

func initialScreen(ctx context.Context, opts Options) screen.Screen {
	sess := opts.Session
	switch sess.Mode() {
	case session.ModeType:
		return typing.New(ctx, sess, typing.Options{Explainer: opts.Explainer, Timeout: opts.Timeout, Line: opts.Line})
	case session.ModeFlash:
		rng := opts.Rand
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		return flashcards.New(sess.Decks(), flashOrder(sess.Generator().Pool(), rng))
	default:
		return match.New(ctx, sess, match.Options{Explainer: opts.Explainer, Timeout: opts.Timeout, Line: opts.Line})
	}
}

// flashOrder empties a copy of pool by weighted draws, so harder cards
// tend to come first.
func flashOrder(pool *weighted.List[deck.DeckCard], rng *rand.Rand) []deck.DeckCard {
	draw := weighted.WithCapacity[deck.DeckCard](pool.Len())
	for i := range pool.Len() {
		e := pool.At(i)
		draw.Add(e.Item, e.Weight)
	}
	cards := make([]deck.DeckCard, 0, pool.Len())
	for {
		dc, _, ok := draw.RemoveRandom(rng)
		if !ok {
			return cards
		}
		cards = append(cards, dc)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, m.quit) {
			m.sess.Quit()
			m.logger.Debug("interrupted", "session", m.sess.ID())
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	var hints []key.Binding
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}
	hints = append(hints, m.quit)

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.help.ShortHelpView(hints), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
