// Package board holds the dartboard model: the physical ring measurements,
// the canonical render layout derived from them, the score calculator and
// the verification overlay geometry.
//
// A Geometry is built once from a Config and is read-only afterward, so a
// single value may be shared by any number of sessions and goroutines.
//
// # Coordinate System
//
// All positions are in rectified-image pixels: origin at the top-left, X
// increasing rightward, Y increasing downward. Angles are measured from the
// +X axis and increase clockwise on screen, so 90° points down and 270°
// points up.
//
// # Scoring
//
// Score and Classify evaluate the rings from the innermost outward and stop
// at the first match:
//
//	distance <= bullseye                    -> 50
//	distance <= outer bull                  -> 25
//	triple inner < distance <= triple outer -> base × 3
//	double inner < distance <= double outer -> base × 2
//	distance <= double outer                -> base
//	otherwise                               -> 0
//
// A point lying exactly on a ring boundary therefore belongs to the inner
// band. The sector index is floor(angle / 18°) over the sector table, with
// the sector offset subtracted from the angle first.
package board
