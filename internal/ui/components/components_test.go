package components

import (
	"errors"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestChoiceGrid_Move(t *testing.T) {
	g := NewChoiceGrid([]string{"a", "b", "c", "d"}, 2)

	steps := []struct {
		dx, dy int
		want   int
	}{
		{1, 0, 1},  // right
		{1, 0, 1},  // wall
		{0, 1, 3},  // down
		{0, 1, 3},  // floor
		{-1, 0, 2}, // left
		{0, -1, 0}, // up
		{-1, 0, 0}, // wall
	}
	for i, s := range steps {
		g.Move(s.dx, s.dy)
		if g.Selected != s.want {
			t.Fatalf("step %d: Selected = %d, want %d", i, g.Selected, s.want)
		}
	}
}

func TestChoiceGrid_MoveSkipsMissingCell(t *testing.T) {
	g := NewChoiceGrid([]string{"a", "b", "c"}, 0)
	g.Move(1, 0)
	g.Move(0, 1)
	if g.Selected != 1 {
		t.Errorf("Selected = %d, want 1 (no option 4)", g.Selected)
	}
}

func TestChoiceGrid_Choose(t *testing.T) {
	g := NewChoiceGrid([]string{"a", "b", "c", "d"}, 2)
	if g.IsCorrect() {
		t.Fatal("IsCorrect before Choose")
	}
	g.Choose(2)
	if !g.IsCorrect() {
		t.Error("IsCorrect = false after choosing the correct option")
	}
	g.Move(1, 0)
	if g.Selected != 2 {
		t.Errorf("Move after submit changed Selected to %d", g.Selected)
	}
}

func TestChoiceGrid_View(t *testing.T) {
	g := NewChoiceGrid([]string{"perro", "gato", "pez", "oso"}, 0)
	v := g.View(76)
	for i, opt := range []string{"1) perro", "2) gato", "3) pez", "4) oso"} {
		if !strings.Contains(v, opt) {
			t.Errorf("option %d %q missing from view", i, opt)
		}
	}
	if lipgloss.Height(v) < 6 {
		t.Errorf("view height = %d, want two rows of boxes", lipgloss.Height(v))
	}
}

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{0, 0.5, 1, 1.5} {
		bar := NewProgressBar("", pct, 40).View()
		if w := lipgloss.Width(bar); w != 40 {
			t.Errorf("percent %.1f: width = %d, want 40", pct, w)
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil, 10) != "" {
		t.Error("Sparkline(nil) not empty")
	}

	s := Sparkline([]float64{0, 2, 4, 8}, 10)
	if w := lipgloss.Width(s); w != 4 {
		t.Errorf("width = %d, want 4", w)
	}
	if !strings.Contains(s, "█") || !strings.Contains(s, "▁") {
		t.Errorf("sparkline %q lacks the extremes", s)
	}
}

func TestSparkline_Buckets(t *testing.T) {
	values := make([]float64, 100)
	values[99] = 5
	s := Sparkline(values, 20)
	if w := lipgloss.Width(s); w != 20 {
		t.Errorf("width = %d, want 20", w)
	}
	got := bucket(values, 20)
	if got[19] != 5 {
		t.Errorf("last bucket = %v, want 5", got[19])
	}
}

func TestSparkline_AllZero(t *testing.T) {
	s := Sparkline([]float64{0, 0, 0}, 10)
	if strings.Count(s, "▁") != 3 {
		t.Errorf("zero weights = %q, want three low blocks", s)
	}
}

func TestTextInput_Submit(t *testing.T) {
	ti := NewTextInput("answer", 0)
	ti.Model.SetValue("perro")
	ti.Submit(MarkClose)
	if !ti.Submitted() {
		t.Fatal("Submitted = false")
	}
	if !strings.Contains(ti.View(), "≈") {
		t.Errorf("view %q lacks the close mark", ti.View())
	}
	if ti.Value() != "perro" {
		t.Errorf("Value = %q", ti.Value())
	}
}

func TestFlashcard(t *testing.T) {
	faces := []FaceLine{{"English", "dog"}, {"Spanish", "perro"}}

	front := Flashcard("Animals", faces, false, 80)
	if !strings.Contains(front, "dog") || strings.Contains(front, "perro") {
		t.Errorf("front view:\n%s", front)
	}

	all := Flashcard("Animals", faces, true, 80)
	if !strings.Contains(all, "perro") || !strings.Contains(all, "Spanish") {
		t.Errorf("full view:\n%s", all)
	}

	if Flashcard("Animals", nil, true, 80) != "" {
		t.Error("empty card rendered")
	}
}

func TestNotePanel(t *testing.T) {
	p := NewNotePanel(60)
	if p.Loading() || p.Done() {
		t.Fatal("new panel is not empty")
	}

	if cmd := p.Start(); cmd == nil {
		t.Error("Start returned no spinner command")
	}
	if !p.Loading() {
		t.Error("Loading = false after Start")
	}
	if v := p.View("Thinking"); !strings.Contains(v, "Thinking") {
		t.Errorf("loading view %q lacks the label", v)
	}

	p.Finish("**perro** means dog", nil)
	if p.Loading() || !p.Done() {
		t.Error("panel not done after Finish")
	}
	if v := p.View(""); !strings.Contains(v, "perro") {
		t.Errorf("view %q lacks the note", v)
	}

	p.Reset()
	if p.Done() {
		t.Error("Done after Reset")
	}
}

func TestNotePanel_Error(t *testing.T) {
	p := NewNotePanel(60)
	p.Start()
	p.Finish("", errors.New("timeout"))
	if v := p.View(""); !strings.Contains(v, "timeout") {
		t.Errorf("view %q lacks the error", v)
	}
}
