package transform

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"card-synth/internal/sprite"
	"card-synth/pkg/geometry"
)

func TestRotationLayoutDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		degrees    float64
		wantW, wantH int
	}{
		{"no rotation", 100, 50, 0, 100, 50},
		{"quarter turn swaps", 100, 50, 90, 50, 100},
		{"half turn keeps", 100, 50, 180, 100, 50},
		{"three quarters swaps", 100, 50, 270, 50, 100},
		{"45 degrees square", 100, 100, 45, 142, 142},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, w, h := rotationLayout(tt.w, tt.h, tt.degrees)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("rotationLayout(%d, %d, %g) = %d x %d, want %d x %d",
					tt.w, tt.h, tt.degrees, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRotationLayoutKeepsContentInside(t *testing.T) {
	for _, deg := range []float64{13, 97, 201, 359} {
		rot, newW, newH := rotationLayout(120, 80, deg)

		corners := []geometry.Point2D{{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 0, Y: 80}, {X: 120, Y: 80}}
		for _, c := range corners {
			p := rot.Apply(c)
			if p.X < -1e-6 || p.Y < -1e-6 || p.X > float64(newW)+1 || p.Y > float64(newH)+1 {
				t.Errorf("angle %g: corner %+v maps to %+v outside %d x %d", deg, c, p, newW, newH)
			}
		}
	}
}

func TestRotationLayoutBoxFollowsPixels(t *testing.T) {
	// A full-sprite box rotated a quarter turn must span the new buffer.
	rot, newW, newH := rotationLayout(100, 50, 90)
	boxes := affineBoxes([]sprite.Box{{Label: "wasabi", XMax: 100, YMax: 50}}, rot)

	b := boxes[0]
	if b.Label != "wasabi" {
		t.Errorf("label = %q, want wasabi", b.Label)
	}
	if math.Abs(b.XMin) > 1e-6 || math.Abs(b.YMin) > 1e-6 ||
		math.Abs(b.XMax-float64(newW)) > 1e-6 || math.Abs(b.YMax-float64(newH)) > 1e-6 {
		t.Errorf("rotated box = %+v, want (0, 0, %d, %d)", b, newW, newH)
	}
}

func TestAffineBoxesPreservesOrder(t *testing.T) {
	tr := geometry.Translation(10, 20)
	in := []sprite.Box{
		{Label: "a", XMin: 0, YMin: 0, XMax: 5, YMax: 5},
		{Label: "b", XMin: 1, YMin: 1, XMax: 2, YMax: 2},
	}

	out := affineBoxes(in, tr)
	if len(out) != 2 || out[0].Label != "a" || out[1].Label != "b" {
		t.Fatalf("order not preserved: %+v", out)
	}
	if out[0].XMin != 10 || out[0].YMin != 20 || out[0].XMax != 15 || out[0].YMax != 25 {
		t.Errorf("translated box = %+v", out[0])
	}
}

func TestProjectiveBoxesIdentity(t *testing.T) {
	in := []sprite.Box{{Label: "x", XMin: 3, YMin: 4, XMax: 30, YMax: 40}}
	out := projectiveBoxes(in, geometry.IdentityProjective())
	if out[0] != in[0] {
		t.Errorf("identity homography changed box: %+v", out[0])
	}
}

func TestRandomPerspectiveBoundedDisplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		intensity := perspectiveMinIntensity + rng.Float64()*(perspectiveMaxIntensity-perspectiveMinIntensity)
		proj, ok := randomPerspective(rng, 200, 100, intensity)
		if !ok {
			continue
		}

		// Corner displacement is bounded by half the intensity-scaled
		// shorter side in each axis.
		maxOffset := intensity * 100
		corners := [4]geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 0}, {X: 0, Y: 100}, {X: 200, Y: 100}}
		for _, c := range corners {
			p := proj.Apply(c)
			if math.Abs(p.X-c.X) > maxOffset/2+1e-6 || math.Abs(p.Y-c.Y) > maxOffset/2+1e-6 {
				t.Errorf("corner %+v displaced to %+v, beyond %g", c, p, maxOffset/2)
			}
		}
	}
}

func TestApplyIdentity(t *testing.T) {
	// Scale 1 with every randomized step disabled is a no-op for both the
	// buffer and the boxes.
	rng := rand.New(rand.NewSource(2))
	s := &sprite.Sprite{
		Image: image.NewNRGBA(image.Rect(0, 0, 40, 30)),
		Label: "wasabi",
		Boxes: []sprite.Box{{Label: "wasabi", XMin: 5, YMin: 6, XMax: 20, YMax: 25}},
	}

	out, err := Apply(rng, s, 1.0, Options{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Width() != 40 || out.Height() != 30 {
		t.Errorf("dimensions = %d x %d, want 40 x 30", out.Width(), out.Height())
	}
	if len(out.Boxes) != 1 || out.Boxes[0] != s.Boxes[0] {
		t.Errorf("boxes changed: %+v", out.Boxes)
	}
	if &out.Boxes[0] == &s.Boxes[0] {
		t.Error("output shares box storage with the input sprite")
	}
}

func TestQuarterTurnBoxInvariance(t *testing.T) {
	// A full-extent box on a square sprite survives any multiple of 90
	// degrees unchanged once the corners are re-boxed.
	for _, deg := range []float64{90, 180, 270} {
		rot, newW, newH := rotationLayout(80, 80, deg)
		if newW != 80 || newH != 80 {
			t.Errorf("angle %g: dimensions = %d x %d, want 80 x 80", deg, newW, newH)
			continue
		}

		boxes := affineBoxes([]sprite.Box{{XMax: 80, YMax: 80}}, rot)
		b := boxes[0]
		if math.Abs(b.XMin) > 1e-6 || math.Abs(b.YMin) > 1e-6 ||
			math.Abs(b.XMax-80) > 1e-6 || math.Abs(b.YMax-80) > 1e-6 {
			t.Errorf("angle %g: box = %+v, want (0, 0, 80, 80)", deg, b)
		}
	}
}

func TestApplyRejectsNonPositiveScale(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := &sprite.Sprite{Label: "wasabi"}

	for _, scale := range []float64{0, -1} {
		if _, err := Apply(rng, s, scale, Options{}); err == nil {
			t.Errorf("scale %g accepted", scale)
		}
	}
}
