// Package session drives a quiz over a problem generator, feeding every
// answer back into the card stats and the pool weights.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/stats"
	"github.com/abhisek/cardiz/internal/store"
)

var (
	// ErrQuit is returned by a Presenter when the learner quits.
	ErrQuit = errors.New("quit")

	// ErrCompleted is returned by Next once the count limit is reached.
	ErrCompleted = errors.New("session completed")

	// ErrFinished is returned by Next after the session reached a
	// terminal phase.
	ErrFinished = errors.New("session is over")
)

// Presenter shows a match problem and returns the chosen answer index.
type Presenter interface {
	Present(ctx context.Context, p *problemgen.MatchProblem, progress Progress) (int, error)
}

// FeedbackPresenter is implemented by presenters that show the outcome of
// every answer.
type FeedbackPresenter interface {
	Feedback(ctx context.Context, p *problemgen.MatchProblem, out Outcome) error
}

// Recorder persists answer events. store.AnswerRepo implements it.
type Recorder interface {
	Append(ctx context.Context, ev store.AnswerEvent) error
}

// Config holds the per-session settings.
type Config struct {
	// Count limits the number of problems; 0 means unbounded.
	Count int

	Mode Mode

	// Recorder, if set, receives every answer.
	Recorder Recorder

	Logger *log.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Outcome is the result of answering a match problem.
type Outcome struct {
	Correct      bool
	Chosen       int
	CorrectIndex int

	// QuestionWeight is the new weight of the question card.
	QuestionWeight float64

	// ChosenWeight is the new weight of the wrongly chosen card, 0 when the
	// answer was correct.
	ChosenWeight float64
}

// Session is one quiz run. Apart from Quit and Phase it is not safe for
// concurrent use; the TUI only draws and answers from one tea.Cmd at a
// time, but may quit while a draw is running.
type Session struct {
	id       string
	mode     Mode
	gen      *problemgen.Generator
	model    *stats.Model
	recorder Recorder
	logger   *log.Logger
	now      func() time.Time

	mu       sync.Mutex
	phase    Phase
	progress Progress
	current  *problemgen.MatchProblem
	prompt   *problemgen.TypeProblem
	missed   map[deck.DeckCard]int
	err      error

	startedAt time.Time
	askedAt   time.Time
}

// New creates a session drawing from gen and scoring into model.
func New(gen *problemgen.Generator, model *stats.Model, cfg Config) *Session {
	if cfg.Mode == "" {
		cfg.Mode = ModeMatch
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Session{
		id:        uuid.NewString(),
		mode:      cfg.Mode,
		gen:       gen,
		model:     model,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		now:       cfg.Now,
		progress:  Progress{Limit: cfg.Count},
		missed:    make(map[deck.DeckCard]int),
		startedAt: cfg.Now(),
	}
}

// ID returns the session's uuid.
func (s *Session) ID() string { return s.id }

// Mode returns the quiz mode.
func (s *Session) Mode() Mode { return s.mode }

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// enter moves to phase p. A terminal phase is final, so enter reports
// false once the session has quit, completed or aborted.
func (s *Session) enter(p Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase.Terminal() {
		return false
	}
	s.phase = p
	return true
}

// Progress returns the running score.
func (s *Session) Progress() Progress { return s.progress }

// Decks returns the decks being quizzed.
func (s *Session) Decks() []deck.Deck { return s.gen.Decks() }

// Generator returns the underlying problem generator.
func (s *Session) Generator() *problemgen.Generator { return s.gen }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Err returns the error that aborted the session, if any.
func (s *Session) Err() error { return s.err }

// Next draws the next match problem. It returns ErrCompleted once the
// count limit is reached and problemgen.ErrPoolEmpty when there is nothing
// to draw. A *problemgen.DeckMismatchError aborts the session.
func (s *Session) Next() (*problemgen.MatchProblem, error) {
	if err := s.checkLimit(); err != nil {
		return nil, err
	}
	p, err := s.gen.Next()
	if err != nil {
		return nil, s.stop(err)
	}
	if !s.enter(PhaseRunning) {
		return nil, ErrFinished
	}
	s.current, s.prompt = p, nil
	s.askedAt = s.now()
	return p, nil
}

// NextPrompt draws the next typed problem. Errors are as for Next.
func (s *Session) NextPrompt() (*problemgen.TypeProblem, error) {
	if err := s.checkLimit(); err != nil {
		return nil, err
	}
	p, err := s.gen.NextPrompt()
	if err != nil {
		return nil, s.stop(err)
	}
	if !s.enter(PhaseRunning) {
		return nil, ErrFinished
	}
	s.prompt, s.current = p, nil
	s.askedAt = s.now()
	return p, nil
}

func (s *Session) checkLimit() error {
	if s.Phase().Terminal() {
		return ErrFinished
	}
	if s.progress.Limit > 0 && s.progress.Total >= s.progress.Limit {
		s.enter(PhaseCompleted)
		return ErrCompleted
	}
	return nil
}

func (s *Session) stop(err error) error {
	if errors.Is(err, problemgen.ErrPoolEmpty) {
		s.enter(PhaseCompleted)
		return err
	}
	if !s.enter(PhaseAborted) {
		return err
	}
	s.err = err
	s.logger.Warn("session aborted", "session", s.id, "err", err)
	return err
}

// Answer scores choice against the current match problem. A correct answer
// counts for the question card. A wrong answer counts against both the
// question card and the chosen card. Pool weights follow the new stats.
//
// Answer panics when there is no current problem or choice is out of
// range.
func (s *Session) Answer(ctx context.Context, choice int) Outcome {
	p := s.current
	if p == nil {
		panic("session: Answer called without a current problem")
	}
	if choice < 0 || choice >= len(p.Answers) {
		panic(fmt.Sprintf("session: answer %d out of range [0,%d)", choice, len(p.Answers)))
	}
	s.current = nil

	out := Outcome{
		Correct:      choice == p.CorrectIndex,
		Chosen:       choice,
		CorrectIndex: p.CorrectIndex,
	}
	chosen := p.Answers[choice]
	if out.Correct {
		out.QuestionWeight = s.recordCorrect(p.Question)
	} else {
		out.QuestionWeight = s.recordIncorrect(p.Question)
		out.ChosenWeight = s.recordIncorrect(chosen.PromptCard)
	}
	s.score(out.Correct)

	s.record(ctx, store.AnswerEvent{
		QuestionFace: p.QuestionFace,
		AnswerFace:   p.AnswerFace,
		CardID:       p.Question.Card.ID(s.Decks()),
		ChosenID:     chosen.Card.ID(s.Decks()),
		Question:     p.Question.Prompt,
		Response:     chosen.Prompt,
		Correct:      out.Correct,
	})
	return out
}

// Quit moves the session to PhaseQuit. It is a no-op on a finished session.
func (s *Session) Quit() {
	s.enter(PhaseQuit)
}

// Run is the synchronous session loop. It ends on the count limit, an
// empty pool, ErrQuit from the presenter or a cancelled ctx. A deck
// mismatch is returned as an error alongside the summary so far.
func (s *Session) Run(ctx context.Context, pr Presenter) (*Summary, error) {
	feedback, _ := pr.(FeedbackPresenter)
	for {
		if err := ctx.Err(); err != nil {
			s.Quit()
			return s.Summary(), err
		}

		p, err := s.Next()
		switch {
		case errors.Is(err, ErrCompleted), errors.Is(err, problemgen.ErrPoolEmpty):
			return s.Summary(), nil
		case err != nil:
			return s.Summary(), err
		}

		choice, err := pr.Present(ctx, p, s.progress)
		if errors.Is(err, ErrQuit) {
			s.Quit()
			return s.Summary(), nil
		}
		if err != nil {
			return s.Summary(), fmt.Errorf("present problem: %w", err)
		}

		out := s.Answer(ctx, choice)
		if feedback != nil {
			if err := feedback.Feedback(ctx, p, out); err != nil {
				if errors.Is(err, ErrQuit) {
					s.Quit()
					return s.Summary(), nil
				}
				return s.Summary(), fmt.Errorf("show feedback: %w", err)
			}
		}
	}
}

func (s *Session) score(correct bool) {
	s.progress.record(correct)
	if correct {
		s.enter(PhaseAnswerCorrect)
	} else {
		s.enter(PhaseAnswerIncorrect)
	}
}

func (s *Session) recordCorrect(pc problemgen.PromptCard) float64 {
	w := s.model.RecordCorrect(pc.Card.ID(s.Decks()))
	s.setWeight(pc.PoolIndex, w)
	return w
}

func (s *Session) recordIncorrect(pc problemgen.PromptCard) float64 {
	w := s.model.RecordIncorrect(pc.Card.ID(s.Decks()))
	s.setWeight(pc.PoolIndex, w)
	s.missed[pc.Card]++
	return w
}

func (s *Session) setWeight(poolIndex int, w float64) {
	if poolIndex >= 0 {
		s.gen.Pool().SetWeight(poolIndex, w)
	}
}

// record appends an answer event. Recorder failures are logged and do not
// interrupt the quiz.
func (s *Session) record(ctx context.Context, ev store.AnswerEvent) {
	if s.recorder == nil {
		return
	}
	now := s.now()
	ev.SessionID = s.id
	ev.Mode = string(s.mode)
	ev.Seq = s.progress.Total
	ev.ElapsedMs = now.Sub(s.askedAt).Milliseconds()
	ev.CreatedAt = now
	if err := s.recorder.Append(ctx, ev); err != nil {
		s.logger.Warn("record answer", "session", s.id, "err", err)
	}
}
