package ocr

import (
	"errors"
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/dartboard-mcp/internal/board"
)

// ErrOCRUnavailable is returned when the binary was built without Tesseract
// support.
var ErrOCRUnavailable = errors.New("ocr: tesseract support not compiled in (build with -tags tesseract)")

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

const (
	upscaleFactor  = 3
	contrastChange = 0.5
	thresholdLevel = 128
)

var digitsPattern = regexp.MustCompile(`\d+`)

// Bounds is a rectangle in rectified-image pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

func boundsOf(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}

// OrientationResult reports what was read at the top of the board.
type OrientationResult struct {
	// Expected is the sector value the scorer assigns straight up.
	Expected int `json:"expected"`
	// Detected is the first integer read, or -1 when none was found.
	Detected   int     `json:"detected"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Matches    bool    `json:"matches"`
	Region     Bounds  `json:"region"`
}

// TopLabelRegion returns the strip above the board centre where the top
// sector's number is printed, clipped to the image.
func TopLabelRegion(geom *board.Geometry) image.Rectangle {
	c := geom.Center()
	r := geom.Radii()
	edge := geom.Config().Physical.DiameterMM / 2 * geom.PixelsPerMM()
	half := edge * math.Sin(board.SectorWidthDegrees/2*math.Pi/180)

	rect := image.Rect(
		int(math.Floor(c.X-half)),
		int(math.Floor(c.Y-edge)),
		int(math.Ceil(c.X+half)),
		int(c.Y)-r.DoubleOuter,
	)
	return rect.Intersect(image.Rect(0, 0, geom.Width(), geom.Height()))
}

// Preprocess prepares a label crop for recognition: upscaled, contrast
// boosted and thresholded to dark digits on a light background.
func Preprocess(img image.Image) *image.Gray {
	b := img.Bounds()
	big := imaging.Resize(img, b.Dx()*upscaleFactor, b.Dy()*upscaleFactor, imaging.Lanczos)
	gray := effect.Grayscale(big)
	boosted := adjust.Contrast(gray, contrastChange)
	bw := segment.Threshold(boosted, thresholdLevel)

	// Board numbers are light on a dark ring; Tesseract wants the reverse.
	if darkFraction(bw) > 0.5 {
		bw = segment.Threshold(effect.Invert(bw), thresholdLevel)
	}
	return bw
}

func darkFraction(g *image.Gray) float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	dark := 0
	for _, v := range g.Pix {
		if v < thresholdLevel {
			dark++
		}
	}
	return float64(dark) / float64(len(g.Pix))
}

// ParseSectorNumber returns the first integer in text.
func ParseSectorNumber(text string) (int, bool) {
	m := digitsPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckOrientation reads the top label of a rectified board and compares it
// with geom.SectorValueAt(270), the value scored straight up.
//
// # Errors
//
// Returns ErrOCRUnavailable in builds without the tesseract tag, and an
// error when the label region is empty or recognition fails.
func CheckOrientation(rectified image.Image, geom *board.Geometry, language string) (*OrientationResult, error) {
	if language == "" {
		language = DefaultLanguage
	}

	region := TopLabelRegion(geom).Intersect(rectified.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("label region is outside the image")
	}

	prepared := Preprocess(imaging.Crop(rectified, region))
	text, confidence, err := recognizeDigits(prepared, language)
	if err != nil {
		return nil, err
	}

	result := &OrientationResult{
		Expected:   geom.SectorValueAt(270),
		Detected:   -1,
		Text:       text,
		Confidence: confidence,
		Region:     boundsOf(region),
	}
	if n, ok := ParseSectorNumber(text); ok {
		result.Detected = n
		result.Matches = n == result.Expected
	}
	return result, nil
}
