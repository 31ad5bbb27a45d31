package icns

import (
	"encoding/binary"
	"fmt"
	"math"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

// Block is one icon element: type, big-endian length including its own
// 8-byte header, and the payload.
type Block struct {
	Type TypeCode
	Data []byte
}

// Len returns the declared block length.
func (b *Block) Len() int {
	return BlockHeaderSize + len(b.Data)
}

// Pack serializes the block header followed by its payload
func (b *Block) Pack() ([]byte, error) {
	if int64(b.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: block %s is %d bytes", iconerrors.ErrContainerTooLarge, b.Type, b.Len())
	}
	buf := make([]byte, b.Len())
	copy(buf[0:4], b.Type[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(b.Len()))
	copy(buf[8:], b.Data)
	return buf, nil
}

func packHeader(total int) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(total))
	return buf
}
