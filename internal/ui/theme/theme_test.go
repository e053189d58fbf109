package theme

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestGradient_Endpoints(t *testing.T) {
	low, _ := colorful.MakeColor(Gradient(0))
	high, _ := colorful.MakeColor(Gradient(1))

	if got := low.Hex(); got != "#f43f5e" {
		t.Errorf("Gradient(0) = %s, want #f43f5e", got)
	}
	if got := high.Hex(); got != "#22c55e" {
		t.Errorf("Gradient(1) = %s, want #22c55e", got)
	}
}

func TestGradient_Clamps(t *testing.T) {
	below, _ := colorful.MakeColor(Gradient(-3))
	zero, _ := colorful.MakeColor(Gradient(0))
	if below.Hex() != zero.Hex() {
		t.Errorf("Gradient(-3) = %s, want %s", below.Hex(), zero.Hex())
	}

	above, _ := colorful.MakeColor(Gradient(7))
	one, _ := colorful.MakeColor(Gradient(1))
	if above.Hex() != one.Hex() {
		t.Errorf("Gradient(7) = %s, want %s", above.Hex(), one.Hex())
	}
}

func TestGradient_MidpointIsBetween(t *testing.T) {
	mid, _ := colorful.MakeColor(Gradient(0.5))
	low, _ := colorful.MakeColor(Gradient(0))
	high, _ := colorful.MakeColor(Gradient(1))

	if mid.Hex() == low.Hex() || mid.Hex() == high.Hex() {
		t.Errorf("Gradient(0.5) = %s, want a blend", mid.Hex())
	}
}
