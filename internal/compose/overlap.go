package compose

import (
	"card-synth/internal/sprite"
)

// Constraints bound how much of any already-placed box a new placement may
// cover. Both ratios are fractions of the placed box's own area; the source
// material disagrees with itself on the exact values, so they are
// configuration rather than constants.
type Constraints struct {
	// MaxFootprintCoverage caps the fraction of a placed box that the new
	// sprite's full rectangular footprint may overlap.
	MaxFootprintCoverage float64
	// MaxBoxCoverage caps the fraction of a placed box that the new
	// sprite's candidate boxes may overlap in total.
	MaxBoxCoverage float64
}

// DefaultConstraints returns the canonical 40%/40% thresholds.
func DefaultConstraints() Constraints {
	return Constraints{MaxFootprintCoverage: 0.4, MaxBoxCoverage: 0.4}
}

// Allows reports whether placing a sprite with the given footprint and
// candidate canvas-space boxes respects the coverage limits against every
// already-placed box. Coverage is always measured against the placed box's
// area: a small candidate sitting inside a large placed box is acceptable as
// long as it hides little of it.
func (c Constraints) Allows(footprint sprite.Box, candidates []sprite.Box, placed []sprite.Box) bool {
	for _, p := range placed {
		area := p.Area()
		if area <= 0 {
			continue
		}

		if footprint.IntersectionArea(p) > c.MaxFootprintCoverage*area {
			return false
		}

		var sum float64
		for _, cand := range candidates {
			sum += cand.IntersectionArea(p)
		}
		if sum > c.MaxBoxCoverage*area {
			return false
		}
	}
	return true
}
