package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
	"github.com/ironsheep/dartboard-mcp/internal/homography"
)

// Interpolation selects how source pixels are sampled.
type Interpolation int

const (
	// Bilinear blends the four nearest source pixels.
	Bilinear Interpolation = iota
	// Nearest takes the closest source pixel.
	Nearest
)

// RectifyOptions tunes Rectify. The zero value samples bilinearly onto an
// opaque black background.
type RectifyOptions struct {
	Interpolation Interpolation
	// Background fills output pixels whose preimage lies outside the source.
	// Nil means opaque black.
	Background color.Color
}

func (o RectifyOptions) background() color.RGBA {
	if o.Background == nil {
		return color.RGBA{A: 255}
	}
	return color.RGBAModel.Convert(o.Background).(color.RGBA)
}

// Rectify warps src into a width x height image in which h has moved the
// calibration points onto the canonical anchors. Each output pixel (x, y)
// samples src at H⁻¹·(x, y). src is never modified.
//
// # Errors
//
// Returns an error when the output size is not positive or when h is not
// invertible (wrapping homography.ErrDegenerateConfiguration).
func Rectify(src image.Image, h homography.Matrix, width, height int, opts RectifyOptions) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", width, height)
	}

	inv, err := h.Inverse()
	if err != nil {
		return nil, fmt.Errorf("failed to invert transform: %w", err)
	}

	in := clone.AsRGBA(src)
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	bg := opts.background()

	sample := sampleBilinear
	if opts.Interpolation == Nearest {
		sample = sampleNearest
	}

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				c := bg
				if p, ok := inv.Apply(geometry.Point2D{X: float64(x), Y: float64(y)}); ok {
					if s, inside := sample(in, p.X, p.Y); inside {
						c = s
					}
				}
				i := out.PixOffset(x, y)
				out.Pix[i+0] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
				out.Pix[i+3] = c.A
			}
		}
	})

	return out, nil
}

// sampleNearest reads the pixel whose centre is closest to (fx, fy), given
// relative to the image origin.
func sampleNearest(img *image.RGBA, fx, fy float64) (color.RGBA, bool) {
	b := img.Bounds()
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return color.RGBA{}, false
	}
	x := int(math.Floor(fx + 0.5))
	y := int(math.Floor(fy + 0.5))
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return color.RGBA{}, false
	}
	return img.RGBAAt(b.Min.X+x, b.Min.Y+y), true
}

// sampleBilinear blends the four pixels around (fx, fy). Points beyond the
// outermost pixel centres are outside.
func sampleBilinear(img *image.RGBA, fx, fy float64) (color.RGBA, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if !(fx >= 0 && fy >= 0 && fx <= float64(w-1) && fy <= float64(h-1)) {
		return color.RGBA{}, false
	}

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	o00 := img.PixOffset(b.Min.X+x0, b.Min.Y+y0)
	o10 := img.PixOffset(b.Min.X+x1, b.Min.Y+y0)
	o01 := img.PixOffset(b.Min.X+x0, b.Min.Y+y1)
	o11 := img.PixOffset(b.Min.X+x1, b.Min.Y+y1)

	var c [4]uint8
	for k := 0; k < 4; k++ {
		top := float64(img.Pix[o00+k])*(1-tx) + float64(img.Pix[o10+k])*tx
		bottom := float64(img.Pix[o01+k])*(1-tx) + float64(img.Pix[o11+k])*tx
		v := math.Round(top*(1-ty) + bottom*ty)
		if v > 255 {
			v = 255
		}
		c[k] = uint8(v)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, true
}
