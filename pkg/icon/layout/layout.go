// Package layout holds the offset bookkeeping shared by the ICO and ICNS
// encoders: size validation, running payload offsets and single-allocation
// concatenation.
package layout

import (
	"fmt"
	"math"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

// ValidateSizes rejects non-positive sizes and, when max > 0, sizes above max.
func ValidateSizes(sizes []int, max int) error {
	for i, size := range sizes {
		if size <= 0 {
			return &iconerrors.InvalidSizeError{Index: i, Size: size, Reason: "must be positive"}
		}
		if max > 0 && size > max {
			return &iconerrors.InvalidSizeError{Index: i, Size: size, Reason: fmt.Sprintf("exceeds maximum %d", max)}
		}
	}
	return nil
}

// Offsets returns the absolute offset of each payload when the payloads are
// laid out contiguously starting at base, along with the total length.
func Offsets(base int, payloads [][]byte) ([]uint32, int, error) {
	offsets := make([]uint32, len(payloads))
	current := int64(base)
	for i, p := range payloads {
		if current > math.MaxUint32 {
			return nil, 0, fmt.Errorf("%w: payload %d starts at %d", iconerrors.ErrContainerTooLarge, i, current)
		}
		offsets[i] = uint32(current)
		current += int64(len(p))
	}
	if current > math.MaxUint32 {
		return nil, 0, fmt.Errorf("%w: total %d bytes", iconerrors.ErrContainerTooLarge, current)
	}
	return offsets, int(current), nil
}

// Concat joins parts into one buffer of capacity total.
func Concat(total int, parts ...[]byte) []byte {
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
