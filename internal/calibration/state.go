package calibration

import "github.com/ironsheep/dartboard-mcp/internal/homography"

// Phase names a calibration state for display and JSON output.
type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseCollecting Phase = "collecting"
	PhaseCalibrated Phase = "calibrated"
)

// State is one of Empty, Collecting or Calibrated.
type State interface {
	Phase() Phase
	isState()
}

// Empty means no points have been collected since the last reset.
type Empty struct{}

// Collecting holds N points, 1 <= N <= 4. N is 4 only when the fourth point
// produced a degenerate configuration and the operator has yet to reset.
type Collecting struct {
	N      int
	Points []LabeledPoint
}

// Calibrated holds the complete point set and the transform they produced.
type Calibrated struct {
	Points    [PointCount]LabeledPoint
	Transform homography.Matrix
}

func (Empty) Phase() Phase      { return PhaseEmpty }
func (Collecting) Phase() Phase { return PhaseCollecting }
func (Calibrated) Phase() Phase { return PhaseCalibrated }

func (Empty) isState()      {}
func (Collecting) isState() {}
func (Calibrated) isState() {}
