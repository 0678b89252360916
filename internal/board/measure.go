package board

import (
	"math"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// Measurement contains the distance between two points on the rectified
// board, in pixels and in board millimetres.
type Measurement struct {
	DistancePixels float64 `json:"distance_pixels"`
	DistanceMM     float64 `json:"distance_mm"`
	DeltaX         float64 `json:"delta_x"`
	DeltaY         float64 `json:"delta_y"`
	AngleDegrees   float64 `json:"angle_degrees"`
}

// Measure calculates the distance between two rectified-image points.
// The angle is 0 for horizontal-right and 90 for straight down.
func (g *Geometry) Measure(a, b geometry.Point2D) Measurement {
	d := b.Sub(a)
	distance := a.Distance(b)
	angle := a.Angle(b) * 180 / math.Pi

	return Measurement{
		DistancePixels: math.Round(distance*100) / 100,
		DistanceMM:     math.Round(distance/g.scale*100) / 100,
		DeltaX:         d.X,
		DeltaY:         d.Y,
		AngleDegrees:   math.Round(angle*10) / 10,
	}
}
