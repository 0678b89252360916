// Package session holds the state of one calibration workflow: the loaded
// photo, the points collected so far, the resulting transform and the
// rectified board derived from them.
//
// A Session is not safe for concurrent use; the MCP server handles one
// request at a time.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/dartboard-mcp/internal/board"
	"github.com/ironsheep/dartboard-mcp/internal/calibration"
	"github.com/ironsheep/dartboard-mcp/internal/geometry"
	"github.com/ironsheep/dartboard-mcp/internal/homography"
	"github.com/ironsheep/dartboard-mcp/internal/imaging"
)

// ErrNoImage is returned when an operation needs a photo and none is loaded.
var ErrNoImage = errors.New("session: no image loaded")

// Session ties a board geometry to one photo and its calibration.
type Session struct {
	geom       *board.Geometry
	calibrator *calibration.Calibrator
	rectifyOpt imaging.RectifyOptions

	source    image.Image
	rectified *image.RGBA
}

// New returns an empty session for geom.
func New(geom *board.Geometry) *Session {
	return &Session{
		geom:       geom,
		calibrator: calibration.NewCalibrator(geom.Anchors()),
	}
}

// SetRectifyOptions changes how Rectify samples the photo. A cached
// rectified image is discarded when the options differ.
func (s *Session) SetRectifyOptions(opts imaging.RectifyOptions) {
	if opts == s.rectifyOpt {
		return
	}
	s.rectifyOpt = opts
	s.rectified = nil
}

// Geometry returns the board geometry the session scores against.
func (s *Session) Geometry() *board.Geometry {
	return s.geom
}

// LoadImage replaces the photo, scaling it to the render size, and starts a
// fresh calibration. It reports whether the photo was resized.
func (s *Session) LoadImage(img image.Image) bool {
	normalized, resized := imaging.Normalize(img, s.geom.Width(), s.geom.Height())
	s.source = normalized
	s.Reset()
	return resized
}

// HasImage reports whether a photo is loaded.
func (s *Session) HasImage() bool {
	return s.source != nil
}

// Source returns the normalised photo, or nil.
func (s *Session) Source() image.Image {
	return s.source
}

// Reset discards the calibration points, the transform and the rectified
// image. The photo stays loaded.
func (s *Session) Reset() {
	s.calibrator.Reset()
	s.rectified = nil
}

// AddCalibrationPoint records the next point in Top, Right, Bottom, Left
// order. The fourth point triggers estimation; a degenerate set returns an
// error wrapping homography.ErrDegenerateConfiguration and must be cleared
// with Reset.
func (s *Session) AddCalibrationPoint(x, y float64) (calibration.Progress, error) {
	p := geometry.NewPoint2D(x, y)
	if !p.IsFinite() {
		return calibration.Progress{}, fmt.Errorf("calibration point (%v, %v) is not finite", x, y)
	}
	prog, err := s.calibrator.AddPoint(p)
	s.rectified = nil
	return prog, err
}

// IsCalibrationComplete reports whether a transform is available.
func (s *Session) IsCalibrationComplete() bool {
	return s.calibrator.IsComplete()
}

// State returns the calibration state.
func (s *Session) State() calibration.State {
	return s.calibrator.State()
}

// Transform returns the calibration transform.
func (s *Session) Transform() (homography.Matrix, error) {
	return s.calibrator.Transform()
}

// Rectify returns the photo warped into the canonical frame. The result is
// cached until the calibration or photo changes; callers must not modify it.
func (s *Session) Rectify() (*image.RGBA, error) {
	if s.source == nil {
		return nil, ErrNoImage
	}
	if s.rectified != nil {
		return s.rectified, nil
	}

	h, err := s.calibrator.Transform()
	if err != nil {
		return nil, err
	}
	out, err := imaging.Rectify(s.source, h, s.geom.Width(), s.geom.Height(), s.rectifyOpt)
	if err != nil {
		return nil, fmt.Errorf("failed to rectify image: %w", err)
	}
	s.rectified = out
	return out, nil
}

// ScoreAt scores a point given in rectified-image coordinates. It requires a
// completed calibration so that coordinates refer to a rectified board.
func (s *Session) ScoreAt(x, y float64) (board.Hit, error) {
	if !s.calibrator.IsComplete() {
		_, err := s.calibrator.Transform()
		return board.Hit{}, err
	}
	return s.geom.Classify(x, y), nil
}

// OverlayGeometry returns the rings, spokes and labels for the board.
func (s *Session) OverlayGeometry() board.Overlay {
	return s.geom.Overlay()
}

// CalibrationPoints returns the points collected so far.
func (s *Session) CalibrationPoints() []geometry.Point2D {
	var pts []calibration.LabeledPoint
	switch st := s.calibrator.State().(type) {
	case calibration.Collecting:
		pts = st.Points
	case calibration.Calibrated:
		pts = st.Points[:]
	}
	out := make([]geometry.Point2D, len(pts))
	for i, lp := range pts {
		out[i] = lp.Point
	}
	return out
}
