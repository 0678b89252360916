package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/dartboard-mcp/internal/board"
	"github.com/ironsheep/dartboard-mcp/internal/geometry"
)

// circleSegments is the polygon resolution used for rings and dots.
const circleSegments = 180

// OverlayStyle controls how the verification overlay is drawn.
type OverlayStyle struct {
	LineColor  string  `json:"line_color"`
	LabelColor string  `json:"label_color"`
	LineWidth  float64 `json:"line_width"`
	ShowLabels bool    `json:"show_labels"`
}

// DefaultOverlayStyle draws black rings and spokes two pixels wide with
// white sector numbers.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		LineColor:  DefaultLineColor,
		LabelColor: DefaultLabelColor,
		LineWidth:  2,
		ShowLabels: true,
	}
}

// RenderOverlay draws the ring circles, sector spokes and, when enabled,
// sector labels onto img.
func RenderOverlay(img draw.Image, ov board.Overlay, style OverlayStyle) {
	width := style.LineWidth
	if width <= 0 {
		width = 2
	}
	half := width / 2

	p := newPainter(img)
	for _, c := range ov.Circles {
		p.annulus(c.Center, float64(c.Radius)-half, float64(c.Radius)+half)
	}
	for _, s := range ov.Spokes {
		p.segment(s.From, s.To, width)
	}
	p.flush(mustColor(style.LineColor, DefaultLineColor))

	if style.ShowLabels {
		fg := mustColor(style.LabelColor, DefaultLabelColor)
		for _, l := range ov.Labels {
			drawCenteredText(img, l.At, strconv.Itoa(l.Value), fg)
		}
	}
}

// DrawMarker fills a dot of the given radius centred on at.
func DrawMarker(img draw.Image, at geometry.Point2D, radius float64, hex string) {
	p := newPainter(img)
	p.disc(at, radius)
	p.flush(mustColor(hex, DefaultMarkerColor))
}

// DrawCalibrationMarkers marks each collected calibration point with a green
// dot of radius 5.
func DrawCalibrationMarkers(img draw.Image, points []geometry.Point2D) {
	p := newPainter(img)
	for _, pt := range points {
		p.disc(pt, 5)
	}
	p.flush(mustColor(DefaultMarkerColor, DefaultMarkerColor))
}

// DrawText writes text with its baseline starting at (x, y).
func DrawText(img draw.Image, x, y int, text, hex string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(mustColor(hex, DefaultScoreColor)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// AnnotateScore returns a copy of img with a red dot at the hit and the score
// written up and to the right of it.
func AnnotateScore(img image.Image, at geometry.Point2D, score int) *image.NRGBA {
	out := imaging.Clone(img)
	DrawMarker(out, at, 5, DefaultScoreColor)
	px := at.Round()
	DrawText(out, px.X+10, px.Y-10, strconv.Itoa(score), DefaultScoreColor)
	return out
}

func drawCenteredText(img draw.Image, at geometry.Point2D, text string, c color.Color) {
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	w := d.MeasureString(text).Round()
	ascent := face.Metrics().Ascent.Round()
	d.Dot = fixed.P(int(math.Round(at.X))-w/2, int(math.Round(at.Y))+ascent/2)
	d.DrawString(text)
}

// painter accumulates filled shapes into a coverage mask and composites them
// in one colour. Shapes are rasterised one at a time so that overlapping
// contours never cancel.
type painter struct {
	dst  draw.Image
	mask *image.Alpha
	z    *vector.Rasterizer
}

func newPainter(dst draw.Image) *painter {
	b := dst.Bounds()
	return &painter{
		dst:  dst,
		mask: image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy())),
		z:    vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Shape coordinates are pixel centres, so (x, y) maps to (x+0.5, y+0.5) in
// the rasteriser's continuous space.
func (p *painter) begin() {
	b := p.mask.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
}

func (p *painter) end() {
	p.z.Draw(p.mask, p.mask.Bounds(), image.Opaque, image.Point{})
}

func (p *painter) circle(c geometry.Point2D, r float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		k := i
		if reverse {
			k = circleSegments - i
		}
		theta := 2 * math.Pi * float64(k) / circleSegments
		pt := geometry.Polar(c, r, theta)
		x, y := float32(pt.X+0.5), float32(pt.Y+0.5)
		if i == 0 {
			p.z.MoveTo(x, y)
		} else {
			p.z.LineTo(x, y)
		}
	}
	p.z.ClosePath()
}

func (p *painter) disc(c geometry.Point2D, r float64) {
	if r <= 0 {
		return
	}
	p.begin()
	p.circle(c, r, false)
	p.end()
}

func (p *painter) annulus(c geometry.Point2D, inner, outer float64) {
	if outer <= 0 {
		return
	}
	p.begin()
	p.circle(c, outer, false)
	if inner > 0 {
		p.circle(c, inner, true)
	}
	p.end()
}

func (p *painter) segment(a, b geometry.Point2D, width float64) {
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return
	}
	n := geometry.Point2D{X: -d.Y / length, Y: d.X / length}.Scale(width / 2)
	corners := []geometry.Point2D{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}

	p.begin()
	for i, c := range corners {
		x, y := float32(c.X+0.5), float32(c.Y+0.5)
		if i == 0 {
			p.z.MoveTo(x, y)
		} else {
			p.z.LineTo(x, y)
		}
	}
	p.z.ClosePath()
	p.end()
}

func (p *painter) flush(c color.Color) {
	b := p.dst.Bounds()
	draw.DrawMask(p.dst, b, image.NewUniform(c), image.Point{}, p.mask, image.Point{}, draw.Over)
}
