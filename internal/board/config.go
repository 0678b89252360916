package board

import (
	"errors"
	"fmt"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// ErrInvalidConfig is returned by NewGeometry when the physical or render
// spec cannot produce a usable board layout.
var ErrInvalidConfig = errors.New("board: invalid configuration")

// PhysicalSpec describes a dartboard in millimetres.
type PhysicalSpec struct {
	DiameterMM          float64 `json:"diameter_mm"`
	BullseyeRadiusMM    float64 `json:"bullseye_radius_mm"`
	OuterBullRadiusMM   float64 `json:"outer_bull_radius_mm"`
	TripleInnerRadiusMM float64 `json:"triple_inner_radius_mm"`
	TripleOuterRadiusMM float64 `json:"triple_outer_radius_mm"`
	DoubleInnerRadiusMM float64 `json:"double_inner_radius_mm"`
	DoubleOuterRadiusMM float64 `json:"double_outer_radius_mm"`
}

// StandardPhysicalSpec returns the measurements of a regulation bristle board.
func StandardPhysicalSpec() PhysicalSpec {
	return PhysicalSpec{
		DiameterMM:          451,
		BullseyeRadiusMM:    6.35,
		OuterBullRadiusMM:   15.9,
		TripleInnerRadiusMM: 99,
		TripleOuterRadiusMM: 107,
		DoubleInnerRadiusMM: 162,
		DoubleOuterRadiusMM: 170,
	}
}

// RenderSpec is the size of the canonical rectified image.
type RenderSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultRenderSpec returns the 1280x720 canonical layout.
func DefaultRenderSpec() RenderSpec {
	return RenderSpec{Width: 1280, Height: 720}
}

// Config bundles everything a Geometry is derived from.
type Config struct {
	Physical PhysicalSpec `json:"physical"`
	Render   RenderSpec   `json:"render"`

	// SectorOffsetDegrees rotates the sector layout clockwise. Scoring and
	// overlay spokes use the same offset. Zero places the first sector table
	// entry in [0°, 18°); 9 centres the "6" sector on the +X axis as on a
	// physical board.
	SectorOffsetDegrees float64 `json:"sector_offset_degrees"`
}

// DefaultConfig returns the standard board rendered at 1280x720 with no
// sector offset.
func DefaultConfig() Config {
	return Config{
		Physical: StandardPhysicalSpec(),
		Render:   DefaultRenderSpec(),
	}
}

// RingRadii are the ring boundaries in whole pixels.
type RingRadii struct {
	Bullseye    int `json:"bullseye"`
	OuterBull   int `json:"outer_bull"`
	TripleInner int `json:"triple_inner"`
	TripleOuter int `json:"triple_outer"`
	DoubleInner int `json:"double_inner"`
	DoubleOuter int `json:"double_outer"`
}

// ascending returns the radii from the bullseye outward.
func (r RingRadii) ascending() [6]int {
	return [6]int{r.Bullseye, r.OuterBull, r.TripleInner, r.TripleOuter, r.DoubleInner, r.DoubleOuter}
}

// Geometry is the immutable board layout derived from a Config.
type Geometry struct {
	cfg     Config
	scale   float64
	radii   RingRadii
	center  geometry.Point2D
	anchors [4]geometry.Point2D
}

// NewGeometry converts the physical measurements to pixel space.
//
// The scale factor is Render.Height / Physical.DiameterMM. Each radius is
// scaled and truncated to a whole pixel. The centre is (Width/2, Height/2)
// using integer division, and the four anchors sit on the double-outer ring
// at 270°, 0°, 90° and 180° (Top, Right, Bottom, Left).
//
// # Errors
//
//   - Width, Height or DiameterMM not positive
//   - Pixel radii not strictly increasing from bullseye to double outer
func NewGeometry(cfg Config) (*Geometry, error) {
	if cfg.Render.Width <= 0 || cfg.Render.Height <= 0 {
		return nil, fmt.Errorf("%w: render size %dx%d must be positive",
			ErrInvalidConfig, cfg.Render.Width, cfg.Render.Height)
	}
	if !(cfg.Physical.DiameterMM > 0) {
		return nil, fmt.Errorf("%w: diameter %v must be positive", ErrInvalidConfig, cfg.Physical.DiameterMM)
	}

	scale := float64(cfg.Render.Height) / cfg.Physical.DiameterMM
	p := cfg.Physical
	radii := RingRadii{
		Bullseye:    int(p.BullseyeRadiusMM * scale),
		OuterBull:   int(p.OuterBullRadiusMM * scale),
		TripleInner: int(p.TripleInnerRadiusMM * scale),
		TripleOuter: int(p.TripleOuterRadiusMM * scale),
		DoubleInner: int(p.DoubleInnerRadiusMM * scale),
		DoubleOuter: int(p.DoubleOuterRadiusMM * scale),
	}

	asc := radii.ascending()
	if asc[0] < 0 {
		return nil, fmt.Errorf("%w: negative bullseye radius", ErrInvalidConfig)
	}
	for i := 1; i < len(asc); i++ {
		if asc[i] <= asc[i-1] {
			return nil, fmt.Errorf("%w: ring radii %v are not strictly increasing at %dx%d",
				ErrInvalidConfig, asc, cfg.Render.Width, cfg.Render.Height)
		}
	}

	center := geometry.Point2D{
		X: float64(cfg.Render.Width / 2),
		Y: float64(cfg.Render.Height / 2),
	}
	r := float64(radii.DoubleOuter)

	return &Geometry{
		cfg:    cfg,
		scale:  scale,
		radii:  radii,
		center: center,
		anchors: [4]geometry.Point2D{
			{X: center.X, Y: center.Y - r}, // Top
			{X: center.X + r, Y: center.Y}, // Right
			{X: center.X, Y: center.Y + r}, // Bottom
			{X: center.X - r, Y: center.Y}, // Left
		},
	}, nil
}

// MustGeometry is NewGeometry for configurations known to be valid.
func MustGeometry(cfg Config) *Geometry {
	g, err := NewGeometry(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

// Config returns the configuration the geometry was built from.
func (g *Geometry) Config() Config { return g.cfg }

// Width returns the canonical image width in pixels.
func (g *Geometry) Width() int { return g.cfg.Render.Width }

// Height returns the canonical image height in pixels.
func (g *Geometry) Height() int { return g.cfg.Render.Height }

// PixelsPerMM returns the render scale factor.
func (g *Geometry) PixelsPerMM() float64 { return g.scale }

// Radii returns the pixel ring radii.
func (g *Geometry) Radii() RingRadii { return g.radii }

// Center returns the canonical board centre.
func (g *Geometry) Center() geometry.Point2D { return g.center }

// Anchors returns the canonical destinations for the Top, Right, Bottom and
// Left calibration points, in that order.
func (g *Geometry) Anchors() [4]geometry.Point2D { return g.anchors }

// Summary is the JSON view of a Geometry.
type Summary struct {
	Width               int                `json:"width"`
	Height              int                `json:"height"`
	PixelsPerMM         float64            `json:"pixels_per_mm"`
	Center              geometry.Point2D   `json:"center"`
	Radii               RingRadii          `json:"radii"`
	Anchors             []geometry.Point2D `json:"anchors"`
	SectorTable         []int              `json:"sector_table"`
	SectorOffsetDegrees float64            `json:"sector_offset_degrees"`
	Physical            PhysicalSpec       `json:"physical"`
}

// Summary describes the derived layout.
func (g *Geometry) Summary() Summary {
	sectors := Sectors()
	anchors := g.anchors
	return Summary{
		Width:               g.Width(),
		Height:              g.Height(),
		PixelsPerMM:         g.scale,
		Center:              g.center,
		Radii:               g.radii,
		Anchors:             anchors[:],
		SectorTable:         sectors[:],
		SectorOffsetDegrees: g.cfg.SectorOffsetDegrees,
		Physical:            g.cfg.Physical,
	}
}
