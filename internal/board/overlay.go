package board

import (
	"math"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// Circle is one ring boundary.
type Circle struct {
	Name   string           `json:"name"`
	Center geometry.Point2D `json:"center"`
	Radius int              `json:"radius"`
}

// Segment is one radial spoke. Spoke i lies on the boundary between sector
// i-1 and sector i.
type Segment struct {
	Index        int              `json:"index"`
	AngleDegrees float64          `json:"angle_degrees"`
	From         geometry.Point2D `json:"from"`
	To           geometry.Point2D `json:"to"`
}

// Label marks where the value of a sector is printed, at the angular middle
// of the wedge just outside the double ring.
type Label struct {
	Sector int              `json:"sector"`
	Value  int              `json:"value"`
	At     geometry.Point2D `json:"at"`
}

// Overlay is the verification geometry drawn over a rectified board.
type Overlay struct {
	Circles []Circle  `json:"circles"`
	Spokes  []Segment `json:"spokes"`
	Labels  []Label   `json:"labels"`
}

// Overlay computes the ring circles, the twenty sector spokes and the sector
// label positions. Spokes run from the outer-bull radius to the double-outer
// radius at offset + i·18°, the same angles at which Classify changes
// sector.
func (g *Geometry) Overlay() Overlay {
	r := g.radii
	c := g.center

	circles := []Circle{
		{Name: "double_outer", Center: c, Radius: r.DoubleOuter},
		{Name: "double_inner", Center: c, Radius: r.DoubleInner},
		{Name: "triple_outer", Center: c, Radius: r.TripleOuter},
		{Name: "triple_inner", Center: c, Radius: r.TripleInner},
		{Name: "outer_bull", Center: c, Radius: r.OuterBull},
		{Name: "bullseye", Center: c, Radius: r.Bullseye},
	}

	offset := g.cfg.SectorOffsetDegrees
	labelRadius := g.LabelRadius()

	spokes := make([]Segment, SectorCount)
	labels := make([]Label, SectorCount)
	for i := 0; i < SectorCount; i++ {
		deg := offset + float64(i)*SectorWidthDegrees
		theta := deg * math.Pi / 180
		spokes[i] = Segment{
			Index:        i,
			AngleDegrees: deg,
			From:         geometry.Polar(c, float64(r.OuterBull), theta),
			To:           geometry.Polar(c, float64(r.DoubleOuter), theta),
		}

		mid := (deg + SectorWidthDegrees/2) * math.Pi / 180
		labels[i] = Label{
			Sector: i,
			Value:  sectorTable[i],
			At:     geometry.Polar(c, labelRadius, mid),
		}
	}

	return Overlay{Circles: circles, Spokes: spokes, Labels: labels}
}

// LabelRadius is halfway between the double ring and the board edge, where
// sector numbers are printed.
func (g *Geometry) LabelRadius() float64 {
	edge := g.cfg.Physical.DiameterMM / 2 * g.scale
	return (float64(g.radii.DoubleOuter) + edge) / 2
}
