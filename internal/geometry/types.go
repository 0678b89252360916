// Package geometry provides the small set of planar types shared by the
// calibration, homography and scoring packages.
//
// Coordinates follow the image convention used throughout the server:
// origin at the top-left, X increasing rightward and Y increasing downward.
// Angles are therefore measured from the +X axis and grow clockwise on screen.
package geometry

import (
	"math"
)

// collinearTolerance is the largest |sin θ| between two edges from a common
// vertex that still counts as collinear.
const collinearTolerance = 1e-9

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Polar returns the point at the given distance and angle (radians) from
// origin.
func Polar(origin Point2D, radius, angle float64) Point2D {
	return Point2D{
		X: origin.X + math.Cos(angle)*radius,
		Y: origin.Y + math.Sin(angle)*radius,
	}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the direction from p to other in radians, in (-π, π].
func (p Point2D) Angle(other Point2D) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point2D) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Round returns the nearest integer point.
func (p Point2D) Round() PointInt {
	return PointInt{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// Collinear reports whether a, b and c lie on one line. Coincident points
// are collinear. The test is relative to the edge lengths so it behaves the
// same for pixel and millimetre scales.
func Collinear(a, b, c Point2D) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	lab := math.Hypot(ab.X, ab.Y)
	lac := math.Hypot(ac.X, ac.Y)
	if lab == 0 || lac == 0 {
		return true
	}
	cross := ab.X*ac.Y - ab.Y*ac.X
	return math.Abs(cross) <= collinearTolerance*lab*lac
}

// AnyThreeCollinear reports whether any three of the given points are
// collinear.
func AnyThreeCollinear(pts []Point2D) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if Collinear(pts[i], pts[j], pts[k]) {
					return true
				}
			}
		}
	}
	return false
}
