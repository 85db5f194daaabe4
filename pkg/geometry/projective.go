package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ProjectiveTransform represents a 3x3 projective (homography) matrix.
// Points are mapped in homogeneous coordinates and divided by the third
// component.
type ProjectiveTransform struct {
	M [3][3]float64
}

// IdentityProjective returns the identity projective transform.
func IdentityProjective() ProjectiveTransform {
	return ProjectiveTransform{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Apply maps a point through the homography. If the homogeneous weight is
// zero the undivided coordinates are returned, mirroring the degenerate-point
// handling of the corner propagation (downstream code drops degenerate boxes).
func (t ProjectiveTransform) Apply(p Point2D) Point2D {
	x := t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]
	y := t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]
	w := t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]
	if w == 0 {
		return Point2D{X: x, Y: y}
	}
	return Point2D{X: x / w, Y: y / w}
}

// ToMatrix returns the homography as a [3][3]float64 array.
func (t ProjectiveTransform) ToMatrix() [3][3]float64 {
	return t.M
}

// ComputeProjective computes the unique projective transform mapping four
// source points onto four destination points. It builds the standard 8x8
// linear system (the ninth matrix entry is fixed at 1) and solves it with
// gonum.
func ComputeProjective(src, dst [4]Point2D) (ProjectiveTransform, error) {
	// For each correspondence (x,y) -> (x',y'):
	//   a*x + b*y + c - g*x*x' - h*y*x' = x'
	//   d*x + e*y + f - g*x*y' - h*y*y' = y'
	A := mat.NewDense(8, 8, nil)
	B := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -x*xp)
		A.Set(i*2, 7, -y*xp)
		B.SetVec(i*2, xp)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -x*yp)
		A.Set(i*2+1, 7, -y*yp)
		B.SetVec(i*2+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		return ProjectiveTransform{}, fmt.Errorf("degenerate point configuration: %w", err)
	}

	t := ProjectiveTransform{M: [3][3]float64{
		{params.AtVec(0), params.AtVec(1), params.AtVec(2)},
		{params.AtVec(3), params.AtVec(4), params.AtVec(5)},
		{params.AtVec(6), params.AtVec(7), 1},
	}}

	for i := range t.M {
		for j := range t.M[i] {
			if math.IsNaN(t.M[i][j]) || math.IsInf(t.M[i][j], 0) {
				return ProjectiveTransform{}, fmt.Errorf("unstable homography solution")
			}
		}
	}

	return t, nil
}
