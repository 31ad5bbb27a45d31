package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGSource renders an SVG document. The document is re-parsed on every
// Rasterize call because oksvg mutates the icon when targeting a size.
type SVGSource struct {
	data        []byte
	viewW       float64
	viewH       float64
	errMode     oksvg.ErrorMode
	compression png.CompressionLevel
}

// SVGOption configures an SVGSource.
type SVGOption func(*SVGSource)

// WithStrictParsing fails on SVG elements the renderer does not support
// instead of skipping them.
func WithStrictParsing() SVGOption {
	return func(s *SVGSource) {
		s.errMode = oksvg.StrictErrorMode
	}
}

// WithSVGCompression sets the PNG compression level of rendered buffers.
func WithSVGCompression(level png.CompressionLevel) SVGOption {
	return func(s *SVGSource) {
		s.compression = level
	}
}

// NewSVGSource parses data once to validate it and record its viewBox.
func NewSVGSource(data []byte, opts ...SVGOption) (*SVGSource, error) {
	s := &SVGSource{
		data:        append([]byte(nil), data...),
		errMode:     oksvg.IgnoreErrorMode,
		compression: png.DefaultCompression,
	}
	for _, opt := range opts {
		opt(s)
	}

	icon, err := s.parse()
	if err != nil {
		return nil, err
	}
	s.viewW, s.viewH = icon.ViewBox.W, icon.ViewBox.H
	return s, nil
}

// NaturalSize returns the viewBox dimensions, or 100x100 when the document
// does not declare a usable one.
func (s *SVGSource) NaturalSize() (float64, float64) {
	if s.viewW <= 0 || s.viewH <= 0 {
		return 100, 100
	}
	return s.viewW, s.viewH
}

// Rasterize renders the document centered inside width x height, preserving
// its aspect ratio, on a transparent background.
func (s *SVGSource) Rasterize(width, height int) ([]byte, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	icon, err := s.parse()
	if err != nil {
		return nil, err
	}

	natW, natH := s.NaturalSize()
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		// No viewBox and no width/height: draw in a 0 0 100 100 user space.
		icon.ViewBox.X, icon.ViewBox.Y = 0, 0
		icon.ViewBox.W, icon.ViewBox.H = natW, natH
	}
	x, y, w, h := fitRect(natW, natH, width, height)
	icon.SetTarget(float64(x), float64(y), float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	dasher := rasterx.NewDasher(width, height, scanner)
	icon.Draw(dasher, 1.0)

	out, err := encodePNG(img, s.compression)
	if err != nil {
		return nil, fmt.Errorf("rendering SVG at %s: %w", describe(width, height), err)
	}
	return out, nil
}

func (s *SVGSource) parse() (*oksvg.SvgIcon, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(s.data), s.errMode)
	if err != nil {
		return nil, fmt.Errorf("parsing SVG: %w", err)
	}
	return icon, nil
}
