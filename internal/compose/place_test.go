package compose

import (
	"image"
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"card-synth/internal/sprite"
)

func TestGenerateAreaTargets(t *testing.T) {
	pool := []*sprite.Sprite{
		{Label: "wasabi"},
		{Label: "maki_roll"},
		{Label: "wasabi"},
	}

	rng := rand.New(rand.NewSource(11))
	targets := GenerateAreaTargets(rng, pool, 0.025, 0.25)

	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	for label, v := range targets {
		if v < 0.025 || v > 0.25 {
			t.Errorf("target for %q = %g, outside [0.025, 0.25]", label, v)
		}
	}
}

func TestGenerateAreaTargetsDeterministic(t *testing.T) {
	pool := []*sprite.Sprite{{Label: "a"}, {Label: "b"}, {Label: "c"}}

	first := GenerateAreaTargets(rand.New(rand.NewSource(5)), pool, 0.1, 0.2)
	second := GenerateAreaTargets(rand.New(rand.NewSource(5)), pool, 0.1, 0.2)
	for label, v := range first {
		if second[label] != v {
			t.Errorf("target for %q differs across identical seeds: %g vs %g", label, v, second[label])
		}
	}
}

func TestCountRange(t *testing.T) {
	tests := []struct {
		fraction float64
		lo, hi   int
	}{
		{0.20, 1, 5},
		{0.16, 1, 5},
		{0.15, 1, 7},
		{0.12, 1, 7},
		{0.10, 1, 10},
		{0.07, 1, 10},
		{0.05, 1, 12},
		{0.03, 1, 12},
	}

	for _, tt := range tests {
		lo, hi := countRange(tt.fraction)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("countRange(%g) = (%d, %d), want (%d, %d)", tt.fraction, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestCardCountWithinRange(t *testing.T) {
	e := NewEngine(DefaultConstraints(), 15, log.New(io.Discard))
	targets := map[string]float64{"maki_roll": 0.2}

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		n := e.cardCount(rng, targets)
		if n < 1 || n > 5 {
			t.Fatalf("card count %d outside [1, 5] for a 0.2 target", n)
		}
	}
}

func TestCardCountDeterministic(t *testing.T) {
	// Map iteration order must not leak into the draw sequence.
	e := NewEngine(DefaultConstraints(), 15, log.New(io.Discard))
	targets := map[string]float64{"a": 0.2, "b": 0.03, "c": 0.12, "d": 0.07}

	first := make([]int, 50)
	rng := rand.New(rand.NewSource(21))
	for i := range first {
		first[i] = e.cardCount(rng, targets)
	}

	rng = rand.New(rand.NewSource(21))
	for i := range first {
		if got := e.cardCount(rng, targets); got != first[i] {
			t.Fatalf("draw %d = %d, want %d", i, got, first[i])
		}
	}
}

func TestPlaceRejectsEmptyInputs(t *testing.T) {
	e := NewEngine(DefaultConstraints(), 15, log.New(io.Discard))
	canvas := image.NewNRGBA(image.Rect(0, 0, 620, 620))
	rng := rand.New(rand.NewSource(1))

	if _, err := e.Place(rng, canvas, nil, map[string]float64{"a": 0.1}); err == nil {
		t.Error("empty pool accepted")
	}

	pool := []*sprite.Sprite{{Label: "a"}}
	if _, err := e.Place(rng, canvas, pool, nil); err == nil {
		t.Error("empty targets accepted")
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(DefaultConstraints(), 0, nil)
	if e.Attempts != 1 {
		t.Errorf("Attempts = %d, want floor of 1", e.Attempts)
	}
	if e.MaxCanvasFraction != 0.9 {
		t.Errorf("MaxCanvasFraction = %g, want 0.9", e.MaxCanvasFraction)
	}
	if !e.Transform.Rotation || !e.Transform.ColorJitter || !e.Transform.Perspective {
		t.Error("default transform options should enable every step")
	}
}
