// Package ocr reads the sector number printed at the top of a rectified board
// to confirm the board was calibrated the right way up.
//
// # Prerequisites
//
// Recognition uses Tesseract through gosseract/v2 and is compiled only with
// the "tesseract" build tag:
//
//	go build -tags tesseract ./...
//
// Tesseract and its language data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// TESSDATA_PREFIX is honoured as usual. Without the tag CheckOrientation
// returns ErrOCRUnavailable; region selection and preprocessing work in every
// build.
//
// # Method
//
// After rectification the top sector's number sits straight above the centre,
// between the double ring and the board edge. That strip is cropped,
// upscaled, converted to black digits on white and read as a single line
// restricted to digits. The first integer found is compared with the value
// the scorer assigns to the top of the board.
package ocr
