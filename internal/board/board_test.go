package board

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

func defaultGeometry(t *testing.T) *Geometry {
	t.Helper()
	g, err := NewGeometry(DefaultConfig())
	if err != nil {
		t.Fatalf("NewGeometry failed: %v", err)
	}
	return g
}

// pointAt returns the coordinate at radius r and screen angle deg from the centre.
func pointAt(g *Geometry, r, deg float64) (float64, float64) {
	p := geometry.Polar(g.Center(), r, deg*math.Pi/180)
	return p.X, p.Y
}

func TestNewGeometry_Default(t *testing.T) {
	g := defaultGeometry(t)

	want := RingRadii{
		Bullseye:    10,
		OuterBull:   25,
		TripleInner: 158,
		TripleOuter: 170,
		DoubleInner: 258,
		DoubleOuter: 271,
	}
	if got := g.Radii(); got != want {
		t.Errorf("Radii: got %+v, want %+v", got, want)
	}

	if c := g.Center(); c.X != 640 || c.Y != 360 {
		t.Errorf("Center: got %+v, want (640,360)", c)
	}

	if s := g.PixelsPerMM(); math.Abs(s-720.0/451.0) > 1e-12 {
		t.Errorf("PixelsPerMM: got %v", s)
	}
}

func TestNewGeometry_Anchors(t *testing.T) {
	g := defaultGeometry(t)
	anchors := g.Anchors()

	want := [4]geometry.Point2D{
		{X: 640, Y: 89},  // Top
		{X: 911, Y: 360}, // Right
		{X: 640, Y: 631}, // Bottom
		{X: 369, Y: 360}, // Left
	}
	if anchors != want {
		t.Errorf("Anchors: got %+v, want %+v", anchors, want)
	}
}

func TestNewGeometry_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"negative height", func(c *Config) { c.Render.Height = -720 }},
		{"zero diameter", func(c *Config) { c.Physical.DiameterMM = 0 }},
		{"too small to resolve rings", func(c *Config) { c.Render.Height = 10 }},
		{"rings out of order", func(c *Config) { c.Physical.TripleInnerRadiusMM = 120 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			_, err := NewGeometry(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMustGeometry_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGeometry did not panic on invalid config")
		}
	}()
	cfg := DefaultConfig()
	cfg.Render.Width = 0
	MustGeometry(cfg)
}

func TestScore_Center(t *testing.T) {
	g := defaultGeometry(t)
	if got := g.Score(640, 360); got != 50 {
		t.Errorf("Score at center: got %d, want 50", got)
	}
}

func TestScore_RingBoundaries(t *testing.T) {
	g := defaultGeometry(t)
	cx, cy := 640.0, 360.0

	// Along +X the angle is 0°, which is sector 0 (value 10).
	tests := []struct {
		name string
		dx   float64
		want int
	}{
		{"bullseye edge", 10, 50},
		{"just past bullseye", 10.001, 25},
		{"outer bull edge", 25, 25},
		{"just past outer bull", 25.001, 10},
		{"triple inner edge is single", 158, 10},
		{"inside triple", 158.001, 30},
		{"triple outer edge", 170, 30},
		{"just past triple", 170.001, 10},
		{"double inner edge is single", 258, 10},
		{"inside double", 258.001, 20},
		{"double outer edge", 271, 20},
		{"one pixel past the board", 272, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Score(cx+tt.dx, cy); got != tt.want {
				t.Errorf("Score(center.x+%v): got %d, want %d", tt.dx, got, tt.want)
			}
		})
	}
}

func TestScore_Sectors(t *testing.T) {
	g := defaultGeometry(t)

	// Mid-sector angles in the single band.
	for i, want := range Sectors() {
		deg := float64(i)*SectorWidthDegrees + SectorWidthDegrees/2
		x, y := pointAt(g, 200, deg)
		hit := g.Classify(x, y)
		if hit.Sector != i {
			t.Errorf("angle %v°: sector %d, want %d", deg, hit.Sector, i)
		}
		if hit.Score != want || hit.Ring != RingSingle || hit.Multiplier != 1 {
			t.Errorf("angle %v°: got %+v, want single %d", deg, hit, want)
		}
	}
}

func TestScore_TopOfBoard(t *testing.T) {
	g := defaultGeometry(t)

	// 20 occupies [252°, 270°) and 1 occupies [270°, 288°).
	x, y := pointAt(g, 200, 261)
	if got := g.Score(x, y); got != 20 {
		t.Errorf("261°: got %d, want 20", got)
	}
	x, y = pointAt(g, 200, 279)
	if got := g.Score(x, y); got != 1 {
		t.Errorf("279°: got %d, want 1", got)
	}
	if got := g.SectorValueAt(270); got != 1 {
		t.Errorf("SectorValueAt(270): got %d, want 1", got)
	}
}

func TestScore_SectorOffset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SectorOffsetDegrees = 9
	g, err := NewGeometry(cfg)
	if err != nil {
		t.Fatalf("NewGeometry failed: %v", err)
	}

	tests := []struct {
		deg  float64
		want int
	}{
		{0, 6},
		{90, 3},
		{180, 11},
		{270, 20},
		{18, 10},
	}

	for _, tt := range tests {
		x, y := pointAt(g, 200, tt.deg)
		if got := g.Score(x, y); got != tt.want {
			t.Errorf("offset 9, %v°: got %d, want %d", tt.deg, got, tt.want)
		}
		if got := g.SectorValueAt(tt.deg); got != tt.want {
			t.Errorf("SectorValueAt(%v): got %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func TestScore_MissAtAnyAngle(t *testing.T) {
	g := defaultGeometry(t)
	for deg := 0.0; deg < 360; deg += 7.5 {
		x, y := pointAt(g, 271.5, deg)
		if got := g.Score(x, y); got != 0 {
			t.Errorf("%v° beyond double outer: got %d, want 0", deg, got)
		}
	}
}

func TestScore_Total(t *testing.T) {
	g := defaultGeometry(t)

	valid := map[int]bool{0: true, 25: true, 50: true}
	for v := 1; v <= 20; v++ {
		valid[v] = true
		valid[v*2] = true
		valid[v*3] = true
	}

	for y := -50.0; y < 800; y += 13.7 {
		for x := -50.0; x < 1350; x += 11.3 {
			s := g.Score(x, y)
			if !valid[s] {
				t.Fatalf("Score(%v,%v) = %d is not a dartboard score", x, y, s)
			}
		}
	}
}

func TestScore_NonFinite(t *testing.T) {
	g := defaultGeometry(t)

	inputs := [][2]float64{
		{math.NaN(), 360},
		{640, math.Inf(1)},
		{math.Inf(-1), math.NaN()},
	}
	for _, in := range inputs {
		hit := g.Classify(in[0], in[1])
		if hit.Score != 0 || hit.Ring != RingMiss || hit.Sector != -1 {
			t.Errorf("Classify(%v,%v): got %+v, want miss", in[0], in[1], hit)
		}
	}
}

func TestSectors_Copy(t *testing.T) {
	s := Sectors()
	s[0] = 99
	if Sectors()[0] != 10 {
		t.Error("Sectors returned a reference to the shared table")
	}
}

func TestRing_String(t *testing.T) {
	tests := []struct {
		ring Ring
		want string
	}{
		{RingMiss, "miss"},
		{RingSingle, "single"},
		{RingTriple, "triple"},
		{RingDouble, "double"},
		{RingOuterBull, "outer_bull"},
		{RingBullseye, "bullseye"},
		{Ring(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.ring.String(); got != tt.want {
			t.Errorf("Ring(%d).String(): got %s, want %s", tt.ring, got, tt.want)
		}
	}
}

func TestOverlay_Structure(t *testing.T) {
	g := defaultGeometry(t)
	ov := g.Overlay()

	if len(ov.Circles) != 6 {
		t.Fatalf("Circles: got %d, want 6", len(ov.Circles))
	}
	if len(ov.Spokes) != SectorCount {
		t.Fatalf("Spokes: got %d, want %d", len(ov.Spokes), SectorCount)
	}
	if len(ov.Labels) != SectorCount {
		t.Fatalf("Labels: got %d, want %d", len(ov.Labels), SectorCount)
	}

	radii := map[int]bool{10: true, 25: true, 158: true, 170: true, 258: true, 271: true}
	for _, c := range ov.Circles {
		if !radii[c.Radius] {
			t.Errorf("unexpected circle radius %d (%s)", c.Radius, c.Name)
		}
		if c.Center != g.Center() {
			t.Errorf("circle %s not centred", c.Name)
		}
	}

	for i, s := range ov.Spokes {
		if want := float64(i) * 18; math.Abs(s.AngleDegrees-want) > 1e-9 {
			t.Errorf("spoke %d angle: got %v, want %v", i, s.AngleDegrees, want)
		}
		if d := g.Center().Distance(s.From); math.Abs(d-25) > 1e-9 {
			t.Errorf("spoke %d starts at radius %v, want 25", i, d)
		}
		if d := g.Center().Distance(s.To); math.Abs(d-271) > 1e-9 {
			t.Errorf("spoke %d ends at radius %v, want 271", i, d)
		}
	}
}

func TestOverlay_SpokesMatchSectorBoundaries(t *testing.T) {
	for _, offset := range []float64{0, 9} {
		cfg := DefaultConfig()
		cfg.SectorOffsetDegrees = offset
		g := MustGeometry(cfg)

		for _, s := range g.Overlay().Spokes {
			after := g.Classify(pointAt(g, 200, s.AngleDegrees+0.5))
			before := g.Classify(pointAt(g, 200, s.AngleDegrees-0.5))

			if after.Sector != s.Index {
				t.Errorf("offset %v spoke %d: clockwise side is sector %d", offset, s.Index, after.Sector)
			}
			if want := (s.Index + SectorCount - 1) % SectorCount; before.Sector != want {
				t.Errorf("offset %v spoke %d: counter-clockwise side is sector %d, want %d",
					offset, s.Index, before.Sector, want)
			}
		}
	}
}

func TestOverlay_LabelsMatchScores(t *testing.T) {
	g := defaultGeometry(t)
	for _, l := range g.Overlay().Labels {
		// Project the label back inside the single band along the same ray.
		deg := g.Center().Angle(l.At) * 180 / math.Pi
		x, y := pointAt(g, 200, deg)
		if got := g.Score(x, y); got != l.Value {
			t.Errorf("label %d (value %d) sits over a wedge scoring %d", l.Sector, l.Value, got)
		}
		if d := g.Center().Distance(l.At); d <= 271 {
			t.Errorf("label %d inside the double ring (r=%v)", l.Sector, d)
		}
	}
}

func TestMeasure(t *testing.T) {
	g := defaultGeometry(t)
	a := g.Anchors()

	m := g.Measure(a[3], a[1])
	if m.DistancePixels != 542 {
		t.Errorf("DistancePixels: got %v, want 542", m.DistancePixels)
	}
	if math.Abs(m.DistanceMM-340) > 1 {
		t.Errorf("DistanceMM: got %v, want about 340", m.DistanceMM)
	}
	if m.AngleDegrees != 0 {
		t.Errorf("AngleDegrees: got %v, want 0", m.AngleDegrees)
	}

	down := g.Measure(a[0], a[2])
	if down.AngleDegrees != 90 || down.DeltaY != 542 || down.DeltaX != 0 {
		t.Errorf("vertical measure: got %+v", down)
	}
}

func TestSummary(t *testing.T) {
	g := defaultGeometry(t)
	s := g.Summary()

	if s.Width != 1280 || s.Height != 720 {
		t.Errorf("size: got %dx%d", s.Width, s.Height)
	}
	if len(s.Anchors) != 4 || len(s.SectorTable) != SectorCount {
		t.Errorf("summary lengths: anchors %d, sectors %d", len(s.Anchors), len(s.SectorTable))
	}

	s.Anchors[0].X = -1
	if g.Anchors()[0].X == -1 {
		t.Error("Summary exposed the geometry's anchor array")
	}
}
