// Package homography estimates and applies the 3x3 projective transform that
// maps the four operator-marked board points onto the canonical anchors.
package homography

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// ErrDegenerateConfiguration is returned when the correspondences do not
// define a unique invertible transform: three or more points are collinear,
// points coincide, or the linear system is singular.
var ErrDegenerateConfiguration = errors.New("homography: degenerate point configuration")

// denominatorEpsilon is the smallest |w| accepted when dividing out the
// homogeneous coordinate.
const denominatorEpsilon = 1e-12

// Matrix is a row-major 3x3 projective transform:
//
//	[h0 h1 h2]
//	[h3 h4 h5]
//	[h6 h7 h8]
//
// Estimate always returns matrices normalised so that h8 == 1.
type Matrix [9]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Estimate computes H such that H·[src, 1]ᵗ ∝ [dst, 1]ᵗ for each of the four
// correspondences.
//
// The eight unknowns h0..h7 (h8 fixed at 1) satisfy, for each pair
// (X, Y) -> (x, y):
//
//	h0·X + h1·Y + h2 - h6·X·x - h7·Y·x = x
//	h3·X + h4·Y + h5 - h6·X·y - h7·Y·y = y
//
// which stack into an 8x8 system solved with gonum's LU-backed Solve.
//
// # Errors
//
// Returns ErrDegenerateConfiguration when any three source or destination
// points are collinear, when the system is singular or ill-conditioned, or
// when the solution is not finite.
func Estimate(src, dst [4]geometry.Point2D) (Matrix, error) {
	if geometry.AnyThreeCollinear(src[:]) {
		return Matrix{}, fmt.Errorf("%w: three or more source points are collinear", ErrDegenerateConfiguration)
	}
	if geometry.AnyThreeCollinear(dst[:]) {
		return Matrix{}, fmt.Errorf("%w: three or more destination points are collinear", ErrDegenerateConfiguration)
	}

	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		X, Y := src[i].X, src[i].Y
		x, y := dst[i].X, dst[i].Y
		r := 2 * i

		A.Set(r, 0, X)
		A.Set(r, 1, Y)
		A.Set(r, 2, 1)
		A.Set(r, 6, -X*x)
		A.Set(r, 7, -Y*x)
		b.SetVec(r, x)

		A.Set(r+1, 3, X)
		A.Set(r+1, 4, Y)
		A.Set(r+1, 5, 1)
		A.Set(r+1, 6, -X*y)
		A.Set(r+1, 7, -Y*y)
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(A, b); err != nil {
		return Matrix{}, fmt.Errorf("%w: %v", ErrDegenerateConfiguration, err)
	}

	var m Matrix
	for i := 0; i < 8; i++ {
		v := h.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Matrix{}, fmt.Errorf("%w: non-finite coefficient", ErrDegenerateConfiguration)
		}
		m[i] = v
	}
	m[8] = 1

	return m, nil
}

// Apply maps p through the transform. The boolean is false when p maps to
// the line at infinity.
func (m Matrix) Apply(p geometry.Point2D) (geometry.Point2D, bool) {
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if math.Abs(w) < denominatorEpsilon {
		return geometry.Point2D{}, false
	}
	return geometry.Point2D{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}, true
}

// Inverse returns the inverse transform, normalised so the bottom-right
// entry is 1 when possible.
func (m Matrix) Inverse() (Matrix, error) {
	d := mat.NewDense(3, 3, m[:])
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return Matrix{}, fmt.Errorf("%w: transform is not invertible: %v", ErrDegenerateConfiguration, err)
	}

	var out Matrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c)
		}
	}
	if s := out[8]; math.Abs(s) > denominatorEpsilon {
		for i := range out {
			out[i] /= s
		}
	}
	return out, nil
}

// Rows returns the matrix as nested rows for JSON output.
func (m Matrix) Rows() [3][3]float64 {
	return [3][3]float64{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{m[6], m[7], m[8]},
	}
}

// IsIdentity reports whether m equals the identity within tol.
func (m Matrix) IsIdentity(tol float64) bool {
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) > tol {
			return false
		}
	}
	return true
}
