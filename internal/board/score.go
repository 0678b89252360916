package board

import (
	"math"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// SectorCount is the number of angular wedges on the board.
const SectorCount = 20

// SectorWidthDegrees is the angular width of one wedge.
const SectorWidthDegrees = 360.0 / SectorCount

const (
	bullseyeScore  = 50
	outerBullScore = 25
)

// sectorTable lists base values clockwise starting at the sector offset.
var sectorTable = [SectorCount]int{
	10, 15, 2, 17, 3, 19, 7, 16, 8, 11,
	14, 9, 12, 5, 20, 1, 18, 4, 13, 6,
}

// Sectors returns a copy of the sector table.
func Sectors() [SectorCount]int {
	return sectorTable
}

// Ring identifies the scoring band a point falls in.
type Ring int

const (
	RingMiss Ring = iota
	RingSingle
	RingTriple
	RingDouble
	RingOuterBull
	RingBullseye
)

func (r Ring) String() string {
	switch r {
	case RingMiss:
		return "miss"
	case RingSingle:
		return "single"
	case RingTriple:
		return "triple"
	case RingDouble:
		return "double"
	case RingOuterBull:
		return "outer_bull"
	case RingBullseye:
		return "bullseye"
	default:
		return "unknown"
	}
}

// MarshalText renders the ring name in JSON output.
func (r Ring) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Hit is the full classification of one coordinate.
type Hit struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Score is the points awarded: 0, 1-20, doubles, triples, 25 or 50.
	Score int  `json:"score"`
	Ring  Ring `json:"ring"`

	// Sector is the index into the sector table, or -1 for non-finite input.
	Sector int `json:"sector"`

	// Base is the sector value before the ring multiplier.
	Base int `json:"base"`

	// Multiplier is 1, 2 or 3 for single, double and triple; 0 otherwise.
	Multiplier int `json:"multiplier"`

	Distance     float64 `json:"distance"`
	AngleDegrees float64 `json:"angle_degrees"`
}

// Score returns the points for a coordinate in the rectified image.
// It never fails: every finite coordinate maps to a valid score and
// non-finite input scores 0.
func (g *Geometry) Score(x, y float64) int {
	return g.Classify(x, y).Score
}

// Classify locates a coordinate on the board.
func (g *Geometry) Classify(x, y float64) Hit {
	p := geometry.Point2D{X: x, Y: y}
	if !p.IsFinite() {
		return Hit{X: x, Y: y, Ring: RingMiss, Sector: -1}
	}

	dx := x - g.center.X
	dy := y - g.center.Y
	distance := math.Sqrt(dx*dx + dy*dy)

	angle := normalizeAngle(math.Atan2(dy, dx) - g.offsetRadians())
	sector := sectorIndex(angle)
	base := sectorTable[sector]

	hit := Hit{
		X:            x,
		Y:            y,
		Sector:       sector,
		Base:         base,
		Distance:     distance,
		AngleDegrees: angle * 180 / math.Pi,
	}

	r := g.radii
	switch {
	case distance <= float64(r.Bullseye):
		hit.Ring, hit.Score = RingBullseye, bullseyeScore
	case distance <= float64(r.OuterBull):
		hit.Ring, hit.Score = RingOuterBull, outerBullScore
	case distance > float64(r.TripleInner) && distance <= float64(r.TripleOuter):
		hit.Ring, hit.Multiplier = RingTriple, 3
	case distance > float64(r.DoubleInner) && distance <= float64(r.DoubleOuter):
		hit.Ring, hit.Multiplier = RingDouble, 2
	case distance <= float64(r.DoubleOuter):
		hit.Ring, hit.Multiplier = RingSingle, 1
	default:
		hit.Ring = RingMiss
	}
	if hit.Multiplier > 0 {
		hit.Score = base * hit.Multiplier
	}
	return hit
}

// SectorValueAt returns the base value of the sector containing the given
// screen angle in degrees (0° = +X, clockwise).
func (g *Geometry) SectorValueAt(angleDegrees float64) int {
	angle := normalizeAngle(angleDegrees*math.Pi/180 - g.offsetRadians())
	return sectorTable[sectorIndex(angle)]
}

func (g *Geometry) offsetRadians() float64 {
	return g.cfg.SectorOffsetDegrees * math.Pi / 180
}

// normalizeAngle maps an angle into [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// sectorIndex maps a normalised angle to a table index clamped to [0, 19].
func sectorIndex(angle float64) int {
	i := int(math.Floor(angle / (2 * math.Pi) * SectorCount))
	if i < 0 {
		return 0
	}
	if i >= SectorCount {
		return SectorCount - 1
	}
	return i
}
