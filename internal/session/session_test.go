package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/problemgen"
	"github.com/abhisek/cardiz/internal/stats"
	"github.com/abhisek/cardiz/internal/store"
)

func testDecks() []deck.Deck {
	return []deck.Deck{{
		Name:  "Numbers",
		Faces: []string{"English", "German"},
		Cards: []deck.Card{
			{deck.Single("one"), deck.Single("eins")},
			{deck.Single("two"), deck.Single("zwei")},
			{deck.Single("three"), deck.Single("drei")},
			{deck.Single("four"), deck.Single("vier")},
			{deck.Single("five"), deck.Single("fünf")},
		},
	}}
}

func testSession(t *testing.T, decks []deck.Deck, cfg Config) (*Session, *stats.Model) {
	t.Helper()
	model := stats.NewModel(nil)
	pool := problemgen.NewPool(decks, model.Weight)
	gen := problemgen.New(decks, pool, problemgen.WithRand(rand.New(rand.NewPCG(3, 5))))
	return New(gen, model, cfg), model
}

type presenterFunc func(ctx context.Context, p *problemgen.MatchProblem, progress Progress) (int, error)

func (f presenterFunc) Present(ctx context.Context, p *problemgen.MatchProblem, progress Progress) (int, error) {
	return f(ctx, p, progress)
}

func alwaysCorrect(_ context.Context, p *problemgen.MatchProblem, _ Progress) (int, error) {
	return p.CorrectIndex, nil
}

type memRecorder struct {
	events []store.AnswerEvent
	err    error
}

func (r *memRecorder) Append(_ context.Context, ev store.AnswerEvent) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestAnswer_CorrectLowersQuestionWeight(t *testing.T) {
	decks := testDecks()
	s, model := testSession(t, decks, Config{})

	p, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	out := s.Answer(context.Background(), p.CorrectIndex)

	if !out.Correct {
		t.Fatal("Correct = false, want true")
	}
	id := p.Question.Card.ID(decks)
	if got := model.Stats(id); got != (stats.CardStats{Correct: 1}) {
		t.Errorf("stats = %+v, want {Correct:1}", got)
	}
	if out.QuestionWeight != 0.5 {
		t.Errorf("QuestionWeight = %v, want 0.5", out.QuestionWeight)
	}
	if w := s.Generator().Pool().At(p.Question.PoolIndex).Weight; w != 0.5 {
		t.Errorf("pool weight = %v, want 0.5", w)
	}
	if out.ChosenWeight != 0 {
		t.Errorf("ChosenWeight = %v, want 0", out.ChosenWeight)
	}
	if s.Phase() != PhaseAnswerCorrect {
		t.Errorf("Phase = %v, want correct", s.Phase())
	}
	if got := s.Progress(); got.Correct != 1 || got.Total != 1 {
		t.Errorf("Progress = %+v, want 1/1", got)
	}
}

func TestAnswer_IncorrectPenalizesBothCards(t *testing.T) {
	decks := testDecks()
	s, model := testSession(t, decks, Config{})

	p, err := s.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	choice := (p.CorrectIndex + 1) % len(p.Answers)
	out := s.Answer(context.Background(), choice)

	if out.Correct {
		t.Fatal("Correct = true, want false")
	}
	pool := s.Generator().Pool()
	for _, pc := range []problemgen.PromptCard{p.Question, p.Answers[choice].PromptCard} {
		id := pc.Card.ID(decks)
		if got := model.Stats(id); got != (stats.CardStats{Incorrect: 1}) {
			t.Errorf("stats[%s] = %+v, want {Incorrect:1}", id, got)
		}
		if w := pool.At(pc.PoolIndex).Weight; w != 2 {
			t.Errorf("pool weight of %s = %v, want 2", id, w)
		}
	}
	if out.QuestionWeight != 2 || out.ChosenWeight != 2 {
		t.Errorf("weights = %v/%v, want 2/2", out.QuestionWeight, out.ChosenWeight)
	}
	if s.Phase() != PhaseAnswerIncorrect {
		t.Errorf("Phase = %v, want incorrect", s.Phase())
	}

	sum := s.Summary()
	if len(sum.Missed) != 2 {
		t.Fatalf("len(Missed) = %d, want 2", len(sum.Missed))
	}
	for _, m := range sum.Missed {
		if m.Count != 1 {
			t.Errorf("Missed[%s].Count = %d, want 1", m.ID, m.Count)
		}
	}
}

func TestAnswer_WithoutProblemPanics(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.Answer(context.Background(), 0)
}

func TestAnswer_OutOfRangePanics(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.Answer(context.Background(), problemgen.AnswersPerProblem)
}

func TestRun_StopsAtCount(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{Count: 3})

	calls := 0
	sum, err := s.Run(context.Background(), presenterFunc(func(ctx context.Context, p *problemgen.MatchProblem, pr Progress) (int, error) {
		calls++
		if pr.Limit != 3 {
			t.Errorf("Limit = %d, want 3", pr.Limit)
		}
		return alwaysCorrect(ctx, p, pr)
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 3 {
		t.Errorf("presented %d problems, want 3", calls)
	}
	if sum.Total != 3 || sum.Correct != 3 {
		t.Errorf("summary %d/%d, want 3/3", sum.Correct, sum.Total)
	}
	if sum.Phase != PhaseCompleted {
		t.Errorf("Phase = %v, want completed", sum.Phase)
	}

	if _, err := s.Next(); !errors.Is(err, ErrFinished) {
		t.Errorf("Next after completion: err = %v, want ErrFinished", err)
	}
}

func TestRun_Quit(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})

	n := 0
	sum, err := s.Run(context.Background(), presenterFunc(func(ctx context.Context, p *problemgen.MatchProblem, pr Progress) (int, error) {
		if n == 2 {
			return 0, ErrQuit
		}
		n++
		return alwaysCorrect(ctx, p, pr)
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Phase != PhaseQuit {
		t.Errorf("Phase = %v, want quit", sum.Phase)
	}
	if sum.Total != 2 {
		t.Errorf("Total = %d, want 2", sum.Total)
	}
}

func TestRun_PresenterError(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})
	boom := errors.New("boom")
	_, err := s.Run(context.Background(), presenterFunc(func(context.Context, *problemgen.MatchProblem, Progress) (int, error) {
		return 0, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := s.Run(ctx, presenterFunc(alwaysCorrect))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if sum.Phase != PhaseQuit {
		t.Errorf("Phase = %v, want quit", sum.Phase)
	}
}

func TestRun_DeckMismatchAborts(t *testing.T) {
	decks := []deck.Deck{{
		Name:  "Tiny",
		Faces: []string{"Front", "Back"},
		Cards: []deck.Card{
			{deck.Single("a"), deck.Single("1")},
			{deck.Single("b"), deck.Single("2")},
			{deck.Single("c"), deck.Single("3")},
		},
	}}
	s, _ := testSession(t, decks, Config{})

	sum, err := s.Run(context.Background(), presenterFunc(alwaysCorrect))
	var mismatch *problemgen.DeckMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *DeckMismatchError", err)
	}
	if sum.Phase != PhaseAborted {
		t.Errorf("Phase = %v, want aborted", sum.Phase)
	}
	if !errors.As(sum.Err, &mismatch) {
		t.Errorf("Summary.Err = %v, want *DeckMismatchError", sum.Err)
	}
}

func TestRun_EmptyPoolCompletes(t *testing.T) {
	s, _ := testSession(t, nil, Config{})
	sum, err := s.Run(context.Background(), presenterFunc(alwaysCorrect))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Phase != PhaseCompleted || sum.Total != 0 {
		t.Errorf("summary = %+v, want completed with no answers", sum)
	}
}

func TestRecorder_ReceivesAnswers(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, _ := testSession(t, testDecks(), Config{
		Count:    2,
		Mode:     ModeMatch,
		Recorder: rec,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})

	if _, err := s.Run(context.Background(), presenterFunc(alwaysCorrect)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec.events))
	}
	for i, ev := range rec.events {
		if ev.SessionID != s.ID() {
			t.Errorf("event %d SessionID = %q, want %q", i, ev.SessionID, s.ID())
		}
		if ev.Seq != i+1 {
			t.Errorf("event %d Seq = %d, want %d", i, ev.Seq, i+1)
		}
		if ev.Mode != "match" || !ev.Correct {
			t.Errorf("event %d = %+v", i, ev)
		}
		if ev.CardID != ev.ChosenID {
			t.Errorf("event %d chose %q for %q", i, ev.ChosenID, ev.CardID)
		}
		if ev.ElapsedMs != 1000 {
			t.Errorf("event %d ElapsedMs = %d, want 1000", i, ev.ElapsedMs)
		}
	}
}

func TestQuit_IsSticky(t *testing.T) {
	s, _ := testSession(t, testDecks(), Config{})
	s.Quit()
	if _, err := s.Next(); !errors.Is(err, ErrFinished) {
		t.Errorf("err = %v, want ErrFinished", err)
	}
	if _, err := s.NextPrompt(); !errors.Is(err, ErrFinished) {
		t.Errorf("err = %v, want ErrFinished", err)
	}
}

func TestQuit_WinsOverConcurrentDraws(t *testing.T) {
	for range 50 {
		s, _ := testSession(t, testDecks(), Config{})
		start := make(chan struct{})
		done := make(chan struct{})
		go func() {
			defer close(done)
			<-start
			for range 20 {
				if _, err := s.Next(); err != nil {
					return
				}
			}
		}()
		close(start)
		s.Quit()
		<-done

		if got := s.Phase(); got != PhaseQuit {
			t.Fatalf("phase = %v, want %v", got, PhaseQuit)
		}
		if got := s.Summary().Phase; got != PhaseQuit {
			t.Fatalf("summary phase = %v, want %v", got, PhaseQuit)
		}
	}
}
