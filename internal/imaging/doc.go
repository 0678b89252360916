// Package imaging loads board photos, rectifies them through a calibration
// transform and renders the verification overlay and score annotations.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. A pixel's integer
// coordinate names its centre for sampling purposes, so the identity
// transform reproduces the source exactly.
//
// # Rendering
//
// Rings, spokes and markers are filled as anti-aliased polygons with
// golang.org/x/image/vector; text uses the fixed 7x13 basicfont face.
// Colours are given as hex strings ("#rgb", "#rrggbb" or "#rrggbbaa").
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The drawing functions mutate the
// image they are given and must not be called concurrently on the same
// image. Rectify never mutates its source.
package imaging
