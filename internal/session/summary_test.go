package session

import (
	"testing"
)

func TestRating(t *testing.T) {
	tests := []struct {
		correct, total int
		want           string
	}{
		{9, 9, ""},
		{0, 0, ""},
		{10, 10, "🌟 Perfect! 🌟"},
		{100, 100, "🚀🌌 Spectacular! 🌌🚀"},
		{1000, 1000, "🌌🌟🚀 Out of this world! 🚀🌟🌌"},
		{99, 100, "🥇 Excellent! 🥇"},
		{9, 10, "🥇 Excellent! 🥇"},
		{8, 10, "🥈 Well done! 🥈"},
		{7, 10, "🥉 Nice! 🥉"},
		{69, 100, "Keep up the practice!"},
		{0, 10, "Keep up the practice!"},
	}
	for _, tt := range tests {
		if got := Rating(tt.correct, tt.total); got != tt.want {
			t.Errorf("Rating(%d, %d) = %q, want %q", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestSummary_Line(t *testing.T) {
	tests := []struct {
		sum  Summary
		want string
	}{
		{Summary{Correct: 3, Total: 4}, "You got 3 correct out of 4 (75.00%)"},
		{Summary{Correct: 1, Total: 3}, "You got 1 correct out of 3 (33.33%)"},
		{Summary{}, "You got 0 correct out of 0 (0.00%)"},
	}
	for _, tt := range tests {
		if got := tt.sum.Line(); got != tt.want {
			t.Errorf("Line() = %q, want %q", got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	p := Progress{Limit: 20}
	p.record(true)
	for range 19 {
		p.record(false)
	}
	if got := p.Label(); got != "05.00% (1/20)" {
		t.Errorf("Label() = %q", got)
	}
	if got := p.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
	if got := (Progress{}).Remaining(); got != -1 {
		t.Errorf("unbounded Remaining() = %d, want -1", got)
	}
	if got := (Progress{}).Ratio(); got != 0 {
		t.Errorf("empty Ratio() = %v, want 0", got)
	}
}

func TestPhase_Terminal(t *testing.T) {
	for _, p := range []Phase{PhaseCompleted, PhaseQuit, PhaseAborted} {
		if !p.Terminal() {
			t.Errorf("%v.Terminal() = false", p)
		}
	}
	for _, p := range []Phase{PhaseRunning, PhaseAnswerCorrect, PhaseAnswerIncorrect} {
		if p.Terminal() {
			t.Errorf("%v.Terminal() = true", p)
		}
	}
}
