// Package icns encodes and decodes macOS ICNS containers holding PNG payloads.
package icns

import "fmt"

const (
	// Fixed sizes - part of the ICNS format
	HeaderSize      = 8
	BlockHeaderSize = 8
)

// Magic opens every ICNS file.
var Magic = TypeCode{'i', 'c', 'n', 's'}

// DefaultSizes is used when the caller supplies no sizes.
var DefaultSizes = []int{16, 32, 64, 128, 256, 512}

// TypeCode is the 4-byte OSType tagging an icon block.
type TypeCode [4]byte

func (c TypeCode) String() string { return string(c[:]) }

// ParseTypeCode converts a 4-character string to a TypeCode.
func ParseTypeCode(s string) (TypeCode, error) {
	var c TypeCode
	if len(s) != 4 {
		return c, fmt.Errorf("type code %q must be 4 bytes", s)
	}
	copy(c[:], s)
	return c, nil
}

// Variant pairs the 1x and 2x codes for one nominal size.
type Variant struct {
	Standard TypeCode
	Retina   TypeCode
}

// PNG-bearing icon types by nominal size. Read-only after init.
var iconTypes = map[int]Variant{
	16:  {Standard: TypeCode{'i', 'c', '0', '4'}, Retina: TypeCode{'i', 'c', '1', '1'}},
	32:  {Standard: TypeCode{'i', 'c', '0', '5'}, Retina: TypeCode{'i', 'c', '1', '2'}},
	64:  {Standard: TypeCode{'i', 'c', '0', '7'}, Retina: TypeCode{'i', 'c', '1', '3'}},
	128: {Standard: TypeCode{'i', 'c', '0', '8'}, Retina: TypeCode{'i', 'c', '1', '4'}},
	256: {Standard: TypeCode{'i', 'c', '0', '9'}, Retina: TypeCode{'i', 'c', '1', '5'}},
	512: {Standard: TypeCode{'i', 'c', '1', '0'}, Retina: TypeCode{'i', 'c', '1', '6'}},
}

// Lookup returns the type codes for a nominal size.
func Lookup(size int) (Variant, bool) {
	v, ok := iconTypes[size]
	return v, ok
}

// SizeOf reports the nominal size and scale (1 or 2) a type code encodes.
func SizeOf(code TypeCode) (size int, scale int, ok bool) {
	for s, v := range iconTypes {
		switch code {
		case v.Standard:
			return s, 1, true
		case v.Retina:
			return s, 2, true
		}
	}
	return 0, 0, false
}
