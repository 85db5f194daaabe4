// Package transform implements the geometric transform stage: scale,
// rotation, color jitter and perspective warp, with the sprite's bounding
// boxes carried through every step in the same coordinate frame as the
// pixels.
package transform

import (
	"fmt"
	"math"
	"math/rand"

	"card-synth/internal/imaging"
	"card-synth/internal/sprite"
	"card-synth/pkg/geometry"
)

const (
	perspectiveChance       = 0.5
	perspectiveMinIntensity = 0.05
	perspectiveMaxIntensity = 0.5
)

// Options selects which randomized steps run. Scaling always runs; the
// others can be switched off for deterministic pipelines and tests.
type Options struct {
	Rotation    bool
	ColorJitter bool
	Perspective bool
}

// DefaultOptions enables every randomized step.
func DefaultOptions() Options {
	return Options{Rotation: true, ColorJitter: true, Perspective: true}
}

// Apply produces a new sprite: resized by scaleFactor, rotated by a random
// angle with expansion, color-jittered and (with 50% probability)
// perspective-warped. The box list of the result corresponds 1:1 by position
// to the input's; boxes that lose their extent along the way are kept as
// degenerate values for downstream code to drop.
func Apply(rng *rand.Rand, s *sprite.Sprite, scaleFactor float64, opts Options) (*sprite.Sprite, error) {
	if scaleFactor <= 0 {
		return nil, fmt.Errorf("scale factor must be positive, got %g", scaleFactor)
	}

	img := s.Image
	boxes := s.CloneBoxes()

	// Scale.
	width := int(float64(s.Width()) * scaleFactor)
	height := int(float64(s.Height()) * scaleFactor)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width != s.Width() || height != s.Height() {
		scaled, err := imaging.ResizeLanczos(img, width, height)
		if err != nil {
			return nil, fmt.Errorf("scaling sprite: %w", err)
		}
		img = scaled
	}
	for i := range boxes {
		boxes[i].XMin *= scaleFactor
		boxes[i].YMin *= scaleFactor
		boxes[i].XMax *= scaleFactor
		boxes[i].YMax *= scaleFactor
	}

	// Rotate with expansion.
	if opts.Rotation {
		angle := rng.Float64() * 360
		rot, newW, newH := rotationLayout(width, height, angle)
		rotated, err := imaging.WarpAffine(img, rot, newW, newH)
		if err != nil {
			return nil, fmt.Errorf("rotating sprite: %w", err)
		}
		img = rotated
		width, height = newW, newH
		boxes = affineBoxes(boxes, rot)
	}

	// Color jitter touches pixels only.
	if opts.ColorJitter {
		img = jitter(rng, img)
	}

	// Perspective warp.
	if opts.Perspective && rng.Float64() < perspectiveChance {
		intensity := perspectiveMinIntensity + rng.Float64()*(perspectiveMaxIntensity-perspectiveMinIntensity)
		proj, ok := randomPerspective(rng, width, height, intensity)
		if ok {
			warped, err := imaging.WarpPerspective(img, proj, width, height)
			if err != nil {
				return nil, fmt.Errorf("warping sprite: %w", err)
			}
			img = warped
			boxes = projectiveBoxes(boxes, proj)
		}
	}

	return &sprite.Sprite{Image: img, Label: s.Label, Boxes: boxes}, nil
}

// rotationLayout builds the affine transform that rotates a width x height
// buffer about its center and shifts it so the rotated content starts at the
// origin, along with the expanded output dimensions.
func rotationLayout(width, height int, degrees float64) (geometry.AffineTransform, int, int) {
	w := float64(width)
	h := float64(height)
	rot := geometry.RotationAbout(degrees, geometry.Point2D{X: w / 2, Y: h / 2})

	corners := []geometry.Point2D{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}}
	for i := range corners {
		corners[i] = rot.Apply(corners[i])
	}
	min, max := geometry.BoundingBox(corners)

	full := geometry.Translation(-min.X, -min.Y).Compose(rot)
	newW := int(math.Ceil(max.X - min.X - 1e-9))
	newH := int(math.Ceil(max.Y - min.Y - 1e-9))
	return full, newW, newH
}

// randomPerspective displaces the four corners of a width x height buffer by
// uniform offsets bounded by the intensity and solves for the homography
// mapping the original corners onto the displaced ones. Returns false when
// the displaced corners are degenerate.
func randomPerspective(rng *rand.Rand, width, height int, intensity float64) (geometry.ProjectiveTransform, bool) {
	w := float64(width)
	h := float64(height)
	maxOffset := intensity * math.Min(w, h)

	jolt := func() float64 {
		return (rng.Float64() - 0.5) * maxOffset
	}

	src := [4]geometry.Point2D{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}}
	dst := [4]geometry.Point2D{}
	for i, p := range src {
		dst[i] = geometry.Point2D{X: p.X + jolt(), Y: p.Y + jolt()}
	}

	proj, err := geometry.ComputeProjective(src, dst)
	if err != nil {
		return geometry.ProjectiveTransform{}, false
	}
	return proj, true
}

// affineBoxes maps each box's four corners through t and takes the
// axis-aligned extent, preserving list order.
func affineBoxes(boxes []sprite.Box, t geometry.AffineTransform) []sprite.Box {
	out := make([]sprite.Box, len(boxes))
	for i, b := range boxes {
		out[i] = boundsOf(b, func(p geometry.Point2D) geometry.Point2D { return t.Apply(p) })
	}
	return out
}

// projectiveBoxes maps each box's four corners through the homography with
// perspective divide and takes the axis-aligned extent.
func projectiveBoxes(boxes []sprite.Box, t geometry.ProjectiveTransform) []sprite.Box {
	out := make([]sprite.Box, len(boxes))
	for i, b := range boxes {
		out[i] = boundsOf(b, func(p geometry.Point2D) geometry.Point2D { return t.Apply(p) })
	}
	return out
}

func boundsOf(b sprite.Box, apply func(geometry.Point2D) geometry.Point2D) sprite.Box {
	corners := []geometry.Point2D{
		{X: b.XMin, Y: b.YMin},
		{X: b.XMax, Y: b.YMin},
		{X: b.XMin, Y: b.YMax},
		{X: b.XMax, Y: b.YMax},
	}
	for i := range corners {
		corners[i] = apply(corners[i])
	}
	min, max := geometry.BoundingBox(corners)
	return sprite.Box{Label: b.Label, XMin: min.X, YMin: min.Y, XMax: max.X, YMax: max.Y}
}
