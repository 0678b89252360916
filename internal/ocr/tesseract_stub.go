//go:build !tesseract

package ocr

import "image"

// Available reports whether Tesseract support is compiled in.
func Available() bool { return false }

func recognizeDigits(image.Image, string) (string, float64, error) {
	return "", 0, ErrOCRUnavailable
}
