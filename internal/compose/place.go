package compose

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"card-synth/internal/sprite"
	"card-synth/internal/transform"
)

// Engine drives placement for one canvas at a time: it decides how many
// cards to try, sizes and transforms each one, searches for an offset that
// respects the coverage constraints, and blends accepted cards in. The
// engine itself is stateless across images; the canvas and placed-box list
// live only for a single Place call.
type Engine struct {
	Constraints Constraints
	// Attempts is the retry budget per card; a card that finds no
	// acceptable offset within it is skipped.
	Attempts int
	// MaxCanvasFraction caps the scaled sprite at this fraction of the
	// canvas in either dimension.
	MaxCanvasFraction float64
	// Transform selects which randomized transform steps run per card.
	Transform transform.Options

	logger *log.Logger
}

// NewEngine creates a placement engine with the given constraints and retry
// budget.
func NewEngine(constraints Constraints, attempts int, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if attempts < 1 {
		attempts = 1
	}
	return &Engine{
		Constraints:       constraints,
		Attempts:          attempts,
		MaxCanvasFraction: 0.9,
		Transform:         transform.DefaultOptions(),
		logger:            logger,
	}
}

// GenerateAreaTargets draws one target area fraction per distinct label in
// the pool, uniform in [lo, hi]. The mapping is fixed for the lifetime of
// one image's placement decisions.
func GenerateAreaTargets(rng *rand.Rand, pool []*sprite.Sprite, lo, hi float64) map[string]float64 {
	targets := make(map[string]float64)
	for _, s := range pool {
		if _, ok := targets[s.Label]; !ok {
			targets[s.Label] = lo + rng.Float64()*(hi-lo)
		}
	}
	return targets
}

// countRange maps a label's target area fraction to the card-count range for
// the image: larger cards mean fewer of them.
func countRange(areaFraction float64) (lo, hi int) {
	switch {
	case areaFraction > 0.15:
		return 1, 5
	case areaFraction > 0.10:
		return 1, 7
	case areaFraction > 0.05:
		return 1, 10
	default:
		return 1, 12
	}
}

// cardCount picks how many cards to place: one label drawn uniformly from
// the targets selects a count range, and the count is drawn from it. The
// label draw only sizes the image's card budget; it does not choose which
// cards get placed.
func (e *Engine) cardCount(rng *rand.Rand, targets map[string]float64) int {
	labels := make([]string, 0, len(targets))
	for label := range targets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	lo, hi := countRange(targets[labels[rng.Intn(len(labels))]])
	return lo + rng.Intn(hi-lo+1)
}

// Place composites randomly chosen, randomly transformed sprites from the
// pool onto the canvas and returns the canvas-space boxes of everything that
// was actually placed, clipped to the canvas, in placement order. The canvas
// is mutated in place; the pool is read-only.
func (e *Engine) Place(rng *rand.Rand, canvas *image.NRGBA, pool []*sprite.Sprite, targets map[string]float64) ([]sprite.Box, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("sprite pool is empty")
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no area targets")
	}

	bgW := canvas.Bounds().Dx()
	bgH := canvas.Bounds().Dy()
	bgArea := float64(bgW) * float64(bgH)

	var placed []sprite.Box

	count := e.cardCount(rng, targets)
	for i := 0; i < count; i++ {
		s := pool[rng.Intn(len(pool))]
		target, ok := targets[s.Label]
		if !ok {
			e.logger.Warn("no area target for label, skipping card", "label", s.Label)
			continue
		}
		if s.Area() <= 0 {
			continue
		}

		// Size the card by its desired share of the canvas, with 10%
		// wiggle, then clamp so the scaled sprite stays inside 90% of
		// the canvas in both dimensions.
		desired := target * (0.9 + rng.Float64()*0.2) * bgArea
		scale := math.Sqrt(desired / s.Area())
		scale = math.Min(scale, e.MaxCanvasFraction*float64(bgW)/float64(s.Width()))
		scale = math.Min(scale, e.MaxCanvasFraction*float64(bgH)/float64(s.Height()))

		ts, err := transform.Apply(rng, s, scale, e.Transform)
		if err != nil {
			e.logger.Warn("transform failed, skipping card", "label", s.Label, "err", err)
			continue
		}

		if !e.tryPlace(rng, canvas, ts, &placed) {
			e.logger.Warn("no valid position within retry budget, skipping card",
				"label", s.Label, "attempts", e.Attempts)
		}
	}

	return placed, nil
}

// tryPlace searches for an acceptable offset within the retry budget and, on
// success, blends the sprite and records its clipped boxes.
func (e *Engine) tryPlace(rng *rand.Rand, canvas *image.NRGBA, ts *sprite.Sprite, placed *[]sprite.Box) bool {
	bgW := canvas.Bounds().Dx()
	bgH := canvas.Bounds().Dy()
	w := ts.Width()
	h := ts.Height()

	// Rotation expansion can push a near-canvas-size card past the canvas;
	// the offset range collapses to zero and Blend clips the remainder.
	rangeX := bgW - w
	if rangeX < 0 {
		rangeX = 0
	}
	rangeY := bgH - h
	if rangeY < 0 {
		rangeY = 0
	}

	for attempt := 0; attempt < e.Attempts; attempt++ {
		x := rng.Intn(rangeX + 1)
		y := rng.Intn(rangeY + 1)

		footprint := sprite.Box{
			XMin: float64(x), YMin: float64(y),
			XMax: float64(x + w), YMax: float64(y + h),
		}
		candidates := make([]sprite.Box, len(ts.Boxes))
		for i, b := range ts.Boxes {
			candidates[i] = b.Translate(float64(x), float64(y))
		}

		if !e.Constraints.Allows(footprint, candidates, *placed) {
			continue
		}

		for _, b := range Blend(canvas, ts, x, y) {
			clipped := b.Clip(float64(bgW), float64(bgH))
			if clipped.Area() > 0 {
				*placed = append(*placed, clipped)
			}
		}
		return true
	}
	return false
}
