package icns

import (
	"encoding/binary"
	"fmt"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

// File is a decoded ICNS container. Block payloads alias the parsed buffer.
type File struct {
	Length uint32
	Blocks []Block
}

// Parse decodes data, requiring the declared total to equal len(data) and
// every block to lie inside it.
func Parse(data []byte) (*File, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", iconerrors.ErrTruncated, HeaderSize, len(data))
	}
	var magic TypeCode
	copy(magic[:], data[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("%w: %q", iconerrors.ErrInvalidMagic, magic.String())
	}

	f := &File{Length: binary.BigEndian.Uint32(data[4:8])}
	if int64(f.Length) != int64(len(data)) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d", iconerrors.ErrLengthMismatch, f.Length, len(data))
	}

	pos := HeaderSize
	for pos < len(data) {
		if len(data)-pos < BlockHeaderSize {
			return nil, fmt.Errorf("%w: %d trailing bytes at %d", iconerrors.ErrTruncated, len(data)-pos, pos)
		}
		var code TypeCode
		copy(code[:], data[pos:pos+4])
		length := int64(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		if length < BlockHeaderSize {
			return nil, fmt.Errorf("%w: block %s at %d declares %d bytes", iconerrors.ErrLengthMismatch, code, pos, length)
		}
		end := int64(pos) + length
		if end > int64(len(data)) {
			return nil, fmt.Errorf("%w: block %s at %d runs to %d past %d", iconerrors.ErrTruncated, code, pos, end, len(data))
		}

		f.Blocks = append(f.Blocks, Block{Type: code, Data: data[pos+BlockHeaderSize : end]})
		pos = int(end)
	}
	return f, nil
}
