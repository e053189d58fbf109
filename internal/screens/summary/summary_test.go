package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cardiz/internal/deck"
	"github.com/abhisek/cardiz/internal/router"
	"github.com/abhisek/cardiz/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		SessionID: "test-session",
		Mode:      session.ModeMatch,
		Phase:     session.PhaseCompleted,
		Duration:  3*time.Minute + 7*time.Second,
		Correct:   9,
		Total:     10,
		Missed: []session.MissedCard{
			{Card: deck.DeckCard{Card: 1}, ID: "Animals:cat", Front: "cat", Count: 2},
		},
	}
}

func testDecks() []deck.Deck {
	return []deck.Deck{{
		Name:  "Animals",
		Faces: []string{"English", "Spanish"},
		Cards: []deck.Card{
			{deck.Single("dog"), deck.Single("perro")},
			{deck.Single("cat"), deck.Single("gato")},
		},
	}}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary(), testDecks())
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testSummary(), testDecks()).View(80, 24)
	for _, want := range []string{
		"Session complete!",
		"You got 9 correct out of 10 (90.00%)",
		"Excellent!",
		"Duration: 3:07",
		"cat",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestSummaryScreen_QuitAndError(t *testing.T) {
	sum := testSummary()
	sum.Phase = session.PhaseQuit
	sum.Total = 3
	sum.Err = errors.New("deck mismatch")

	view := New(sum, testDecks()).View(80, 24)
	if !strings.Contains(view, "Session ended") {
		t.Errorf("view lacks the quit heading:\n%s", view)
	}
	if !strings.Contains(view, "deck mismatch") {
		t.Errorf("view lacks the error:\n%s", view)
	}
	if strings.Contains(view, "Excellent") {
		t.Errorf("rating shown for fewer than 10 answers:\n%s", view)
	}
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		_, cmd := New(testSummary(), testDecks()).Update(msg)
		if cmd == nil {
			t.Fatalf("%v: expected a pop command", msg)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("%v: got %T, want router.PopScreenMsg", msg, cmd())
		}
	}
}

func TestSummaryScreen_ReviewMissed(t *testing.T) {
	s := New(testSummary(), testDecks())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.PushScreenMsg", cmd())
	}
	if push.Screen.Title() != "Flashcards" {
		t.Errorf("pushed %q, want Flashcards", push.Screen.Title())
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	if got := len(New(testSummary(), testDecks()).KeyHints()); got != 2 {
		t.Errorf("KeyHints length = %d, want 2", got)
	}

	sum := testSummary()
	sum.Missed = nil
	s := New(sum, testDecks())
	if got := len(s.KeyHints()); got != 1 {
		t.Errorf("KeyHints length without misses = %d, want 1", got)
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"}); cmd != nil {
		t.Error("review with nothing missed returned a command")
	}
}
