// Package calibration collects the four operator-marked board points and
// turns them into a rectifying transform.
package calibration

import (
	"errors"
	"fmt"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// PointCount is the number of points a calibration needs.
const PointCount = 4

// ErrIncompleteCalibration is returned when a transform or the full point set
// is requested before four points have been collected.
var ErrIncompleteCalibration = errors.New("calibration: fewer than four points collected")

// Role names the board position a calibration point marks. Points must be
// supplied in Role order.
type Role int

const (
	RoleTop Role = iota
	RoleRight
	RoleBottom
	RoleLeft
)

var roleNames = [PointCount]string{"top", "right", "bottom", "left"}

func (r Role) String() string {
	if r < RoleTop || r > RoleLeft {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

// MarshalText lets roles appear by name in JSON output.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// LabeledPoint is a calibration point tagged with the board position it marks.
type LabeledPoint struct {
	Role  Role             `json:"role"`
	Point geometry.Point2D `json:"point"`
}

// Collector accumulates up to four calibration points. The zero value is an
// empty collector ready for use.
type Collector struct {
	points [PointCount]geometry.Point2D
	n      int
}

// Reset clears all collected points.
func (c *Collector) Reset() {
	*c = Collector{}
}

// AddPoint appends p while fewer than four points are held and reports the
// updated count and whether the set is complete. Once four points are held
// further calls change nothing.
func (c *Collector) AddPoint(p geometry.Point2D) (count int, ready bool) {
	if c.n < PointCount {
		c.points[c.n] = p
		c.n++
	}
	return c.n, c.n == PointCount
}

// Len returns the number of points collected.
func (c *Collector) Len() int {
	return c.n
}

// Ready reports whether four points have been collected.
func (c *Collector) Ready() bool {
	return c.n == PointCount
}

// NextRole returns the role the next point will be assigned. The boolean is
// false once the set is complete.
func (c *Collector) NextRole() (Role, bool) {
	if c.n >= PointCount {
		return 0, false
	}
	return Role(c.n), true
}

// Collected returns the points gathered so far, in the order added.
func (c *Collector) Collected() []LabeledPoint {
	out := make([]LabeledPoint, c.n)
	for i := 0; i < c.n; i++ {
		out[i] = LabeledPoint{Role: Role(i), Point: c.points[i]}
	}
	return out
}

// Points returns the complete labelled point set.
func (c *Collector) Points() ([PointCount]LabeledPoint, error) {
	var out [PointCount]LabeledPoint
	if c.n < PointCount {
		return out, fmt.Errorf("%w: have %d", ErrIncompleteCalibration, c.n)
	}
	for i := range out {
		out[i] = LabeledPoint{Role: Role(i), Point: c.points[i]}
	}
	return out, nil
}

// Raw returns the four points in Top, Right, Bottom, Left order.
func (c *Collector) Raw() ([PointCount]geometry.Point2D, error) {
	if c.n < PointCount {
		return [PointCount]geometry.Point2D{}, fmt.Errorf("%w: have %d", ErrIncompleteCalibration, c.n)
	}
	return c.points, nil
}
