package raster

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// BitmapSource rescales a decoded master image. The master is only read, so
// one BitmapSource can serve concurrent encoders.
type BitmapSource struct {
	master      image.Image
	scaler      Scaler
	compression png.CompressionLevel
}

// NewBitmapSource wraps img. A nil scaler selects CatmullRom.
func NewBitmapSource(img image.Image, scaler Scaler) *BitmapSource {
	if scaler == nil {
		scaler = CatmullRom
	}
	return &BitmapSource{
		master:      img,
		scaler:      scaler,
		compression: png.DefaultCompression,
	}
}

// DecodeBitmap decodes a PNG, JPEG, GIF, BMP, TIFF or WebP master image.
func DecodeBitmap(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decoding bitmap: %w", err)
	}
	return img, format, nil
}

// SetCompression sets the PNG compression level of produced buffers.
func (b *BitmapSource) SetCompression(level png.CompressionLevel) {
	b.compression = level
}

// NaturalSize returns the master image dimensions.
func (b *BitmapSource) NaturalSize() (float64, float64) {
	bounds := b.master.Bounds()
	return float64(bounds.Dx()), float64(bounds.Dy())
}

// Rasterize scales the master to fit inside width x height, centered, on a
// transparent background.
func (b *BitmapSource) Rasterize(width, height int) ([]byte, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	natW, natH := b.NaturalSize()
	if natW == 0 || natH == 0 {
		return nil, fmt.Errorf("master image is empty, cannot scale to %s", describe(width, height))
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	x, y, w, h := fitRect(natW, natH, width, height)
	b.scaler.Scale(dst, image.Rect(x, y, x+w, y+h), b.master)

	return encodePNG(dst, b.compression)
}
