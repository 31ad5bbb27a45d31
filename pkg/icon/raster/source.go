// Package raster provides the Source implementations the icon encoders pull
// PNG buffers from: an SVG renderer and a bitmap rescaler.
package raster

import (
	"bytes"
	"fmt"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

// Source renders the image at exactly width x height and returns PNG bytes.
// Implementations must be safe for concurrent use.
type Source interface {
	Rasterize(width, height int) ([]byte, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(width, height int) ([]byte, error)

// Rasterize calls f(width, height).
func (f SourceFunc) Rasterize(width, height int) ([]byte, error) {
	return f(width, height)
}

func checkDimensions(width, height int) error {
	if width <= 0 {
		return &iconerrors.InvalidSizeError{Index: -1, Size: width, Reason: "width must be positive"}
	}
	if height <= 0 {
		return &iconerrors.InvalidSizeError{Index: -1, Size: height, Reason: "height must be positive"}
	}
	return nil
}

// IsSVG reports whether data looks like an SVG document rather than a bitmap.
func IsSVG(data []byte) bool {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	head = bytes.TrimPrefix(head, []byte("\xef\xbb\xbf"))
	head = bytes.TrimSpace(head)
	if !bytes.HasPrefix(head, []byte("<")) {
		return false
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// FitDimensions resolves output dimensions against a natural size. A missing
// (zero) target dimension is derived from the natural aspect ratio; with
// neither given the natural size is used. A natural size that is unknown
// falls back to 100x100.
func FitDimensions(naturalW, naturalH float64, width, height int) (int, int, error) {
	if width < 0 || height < 0 {
		return 0, 0, &iconerrors.InvalidSizeError{Index: -1, Size: min(width, height), Reason: "dimensions must not be negative"}
	}
	if naturalW <= 0 || naturalH <= 0 {
		naturalW, naturalH = 100, 100
	}

	switch {
	case width > 0 && height > 0:
		return width, height, nil
	case width > 0:
		return width, atLeastOne(float64(width) / naturalW * naturalH), nil
	case height > 0:
		return atLeastOne(float64(height) / naturalH * naturalW), height, nil
	default:
		return atLeastOne(naturalW), atLeastOne(naturalH), nil
	}
}

func atLeastOne(v float64) int {
	n := int(v + 0.5)
	if n < 1 {
		return 1
	}
	return n
}

// fitRect returns the largest w x h rectangle with the source aspect ratio
// that fits in the target, and its centered origin.
func fitRect(srcW, srcH float64, width, height int) (x, y, w, h int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, width, height
	}
	scale := min(float64(width)/srcW, float64(height)/srcH)
	w = atLeastOne(srcW * scale)
	h = atLeastOne(srcH * scale)
	w = min(w, width)
	h = min(h, height)
	return (width - w) / 2, (height - h) / 2, w, h
}

func describe(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}
