package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func pointsClose(a, b Point2D, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

func TestPoint2DOps(t *testing.T) {
	p := NewPoint2D(3, 4)

	if got := p.Distance(Point2D{}); math.Abs(got-5) > epsilon {
		t.Errorf("Distance = %g, want 5", got)
	}
	if got := p.Add(Point2D{X: 1, Y: -1}); got != (Point2D{X: 4, Y: 3}) {
		t.Errorf("Add = %+v", got)
	}
	if got := p.Sub(Point2D{X: 1, Y: 1}); got != (Point2D{X: 2, Y: 3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := p.Scale(2); got != (Point2D{X: 6, Y: 8}) {
		t.Errorf("Scale = %+v", got)
	}
}

func TestAffineApply(t *testing.T) {
	tests := []struct {
		name  string
		t     AffineTransform
		in    Point2D
		want  Point2D
	}{
		{"identity", Identity(), Point2D{X: 3, Y: 7}, Point2D{X: 3, Y: 7}},
		{"translation", Translation(10, -5), Point2D{X: 1, Y: 2}, Point2D{X: 11, Y: -3}},
		{"scaling", Scaling(2, 3), Point2D{X: 4, Y: 5}, Point2D{X: 8, Y: 15}},
		// 90 degrees counter-clockwise in y-down coordinates.
		{"rotate90", Rotation(90), Point2D{X: 1, Y: 0}, Point2D{X: 0, Y: -1}},
		{"rotate180", Rotation(180), Point2D{X: 1, Y: 2}, Point2D{X: -1, Y: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.t.Apply(tt.in)
			if !pointsClose(got, tt.want, 1e-9) {
				t.Errorf("Apply(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotationAboutFixesCenter(t *testing.T) {
	center := Point2D{X: 50, Y: 25}
	for _, deg := range []float64{0, 33, 90, 180, 271.5} {
		rot := RotationAbout(deg, center)
		if got := rot.Apply(center); !pointsClose(got, center, 1e-9) {
			t.Errorf("RotationAbout(%g) moved the center to %+v", deg, got)
		}
	}
}

func TestRotationPreservesDistance(t *testing.T) {
	rot := RotationAbout(37, Point2D{X: 10, Y: 20})
	a := Point2D{X: 1, Y: 2}
	b := Point2D{X: -4, Y: 9}

	before := a.Distance(b)
	after := rot.Apply(a).Distance(rot.Apply(b))
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("distance changed from %g to %g", before, after)
	}
}

func TestAffineCompose(t *testing.T) {
	// Compose is right-to-left: the inner transform applies first.
	tr := Translation(5, 0).Compose(Scaling(2, 2))
	got := tr.Apply(Point2D{X: 3, Y: 4})
	want := Point2D{X: 11, Y: 8}
	if !pointsClose(got, want, 1e-9) {
		t.Errorf("composed transform = %+v, want %+v", got, want)
	}
}

func TestAffineInverse(t *testing.T) {
	tr := Translation(7, -3).Compose(Rotation(42)).Compose(Scaling(2, 0.5))
	inv, ok := tr.Inverse()
	if !ok {
		t.Fatal("invertible transform reported as singular")
	}

	p := Point2D{X: 13, Y: -8}
	got := inv.Apply(tr.Apply(p))
	if !pointsClose(got, p, 1e-9) {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}

func TestAffineInverseSingular(t *testing.T) {
	if _, ok := Scaling(0, 1).Inverse(); ok {
		t.Error("singular transform reported as invertible")
	}
}

func TestBoundingBox(t *testing.T) {
	min, max := BoundingBox([]Point2D{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 0, Y: 0}})
	if min != (Point2D{X: -2, Y: -1}) || max != (Point2D{X: 3, Y: 4}) {
		t.Errorf("BoundingBox = %+v, %+v", min, max)
	}

	min, max = BoundingBox(nil)
	if min != (Point2D{}) || max != (Point2D{}) {
		t.Errorf("empty BoundingBox = %+v, %+v", min, max)
	}
}
