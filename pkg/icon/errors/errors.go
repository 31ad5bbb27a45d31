package errors

import (
	"errors"
	"fmt"
)

var (
	// Encoding errors 🎨
	ErrRasterization     = errors.New("❌ rasterization failed")
	ErrInvalidSize       = errors.New("❌ invalid icon size")
	ErrContainerTooLarge = errors.New("❌ container exceeds 32-bit offsets")

	// Container decoding errors 📦
	ErrInvalidHeader    = errors.New("❌ invalid ICO header")
	ErrInvalidMagic     = errors.New("❌ invalid ICNS magic")
	ErrTruncated        = errors.New("❌ truncated container")
	ErrOffsetOutOfRange = errors.New("❌ payload offset out of range")
	ErrOverlap          = errors.New("❌ overlapping payloads")
	ErrLengthMismatch   = errors.New("❌ declared length does not match data")
)

// RasterizationError reports a failed rasterize call for one target dimension.
type RasterizationError struct {
	Width  int
	Height int
	Err    error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("%v at %dx%d: %v", ErrRasterization, e.Width, e.Height, e.Err)
}

func (e *RasterizationError) Unwrap() []error {
	return []error{ErrRasterization, e.Err}
}

// InvalidSizeError reports a size the caller supplied that cannot be encoded.
// Index is the position in the caller's size list, or -1 when not applicable.
type InvalidSizeError struct {
	Index  int
	Size   int
	Reason string
}

func (e *InvalidSizeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v %d: %s", ErrInvalidSize, e.Size, e.Reason)
	}
	return fmt.Sprintf("%v %d at position %d: %s", ErrInvalidSize, e.Size, e.Index, e.Reason)
}

func (e *InvalidSizeError) Unwrap() error {
	return ErrInvalidSize
}

// Rasterization wraps err as a RasterizationError unless it already is one.
func Rasterization(width, height int, err error) error {
	var re *RasterizationError
	if errors.As(err, &re) {
		return err
	}
	return &RasterizationError{Width: width, Height: height, Err: err}
}
