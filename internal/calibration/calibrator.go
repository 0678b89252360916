package calibration

import (
	"fmt"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
	"github.com/ironsheep/dartboard-mcp/internal/homography"
)

// Progress reports the outcome of adding a point.
type Progress struct {
	Count int  `json:"count"`
	Ready bool `json:"ready"`
	// Next is the role of the point expected next; nil once four are held.
	Next *Role `json:"next,omitempty"`
}

// Calibrator pairs a Collector with the canonical anchors and estimates the
// transform as soon as the fourth point arrives.
type Calibrator struct {
	anchors   [PointCount]geometry.Point2D
	collector Collector
	transform homography.Matrix
	hasH      bool
}

// NewCalibrator returns a calibrator that maps points onto anchors, given in
// Top, Right, Bottom, Left order.
func NewCalibrator(anchors [PointCount]geometry.Point2D) *Calibrator {
	return &Calibrator{anchors: anchors}
}

// Reset discards all points and any transform. It is safe to call at any
// time.
func (c *Calibrator) Reset() {
	c.collector.Reset()
	c.transform = homography.Matrix{}
	c.hasH = false
}

// AddPoint records p. When p completes the set the transform is estimated;
// if the points are degenerate the error wraps
// homography.ErrDegenerateConfiguration, the four points are kept and the
// calibrator stays uncalibrated until Reset. Calls after the set is complete
// are no-ops.
func (c *Calibrator) AddPoint(p geometry.Point2D) (Progress, error) {
	if c.collector.Ready() {
		return c.progress(), nil
	}

	_, ready := c.collector.AddPoint(p)
	if !ready {
		return c.progress(), nil
	}

	src, err := c.collector.Raw()
	if err != nil {
		return c.progress(), err
	}
	h, err := homography.Estimate(src, c.anchors)
	if err != nil {
		return c.progress(), fmt.Errorf("failed to estimate transform: %w", err)
	}
	c.transform = h
	c.hasH = true
	return c.progress(), nil
}

func (c *Calibrator) progress() Progress {
	p := Progress{Count: c.collector.Len(), Ready: c.collector.Ready()}
	if r, ok := c.collector.NextRole(); ok {
		p.Next = &r
	}
	return p
}

// IsComplete reports whether a valid transform is available.
func (c *Calibrator) IsComplete() bool {
	return c.hasH
}

// Transform returns the estimated transform, or ErrIncompleteCalibration when
// none is available (fewer than four points or a degenerate set).
func (c *Calibrator) Transform() (homography.Matrix, error) {
	if !c.hasH {
		return homography.Matrix{}, fmt.Errorf("%w: have %d", ErrIncompleteCalibration, c.collector.Len())
	}
	return c.transform, nil
}

// Anchors returns the canonical destination points.
func (c *Calibrator) Anchors() [PointCount]geometry.Point2D {
	return c.anchors
}

// State returns the current calibration state.
func (c *Calibrator) State() State {
	switch {
	case c.hasH:
		pts, _ := c.collector.Points()
		return Calibrated{Points: pts, Transform: c.transform}
	case c.collector.Len() == 0:
		return Empty{}
	default:
		return Collecting{N: c.collector.Len(), Points: c.collector.Collected()}
	}
}
