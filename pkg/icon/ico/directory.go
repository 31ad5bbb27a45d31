// Package ico encodes and decodes Windows ICO containers holding PNG payloads.
package ico

import (
	"encoding/binary"
	"fmt"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

const (
	// Fixed sizes - part of the ICO format
	HeaderSize   = 6
	DirEntrySize = 16

	TypeIcon = 1

	// MaxSize is the largest dimension the 1-byte width/height fields carry
	// (256 is written as 0).
	MaxSize = 256

	// MaxImages is bounded by the u16 image count.
	MaxImages = 0xFFFF

	// Every entry declares a 32bpp single-plane true-color image.
	Planes       = 1
	BitsPerPixel = 32
)

// DefaultSizes is used when the caller supplies no sizes.
var DefaultSizes = []int{16, 24, 32, 48, 64, 128, 256}

// Header is the 6-byte ICONDIR header.
type Header struct {
	Reserved uint16 // Must be 0
	Type     uint16 // 1 for icons
	Count    uint16 // Number of directory entries
}

// Pack serializes the header to 6 bytes
func (h *Header) Pack() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.Reserved)
	binary.LittleEndian.PutUint16(buf[2:4], h.Type)
	binary.LittleEndian.PutUint16(buf[4:6], h.Count)
	return buf
}

// UnpackHeader deserializes and validates the header.
func UnpackHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", iconerrors.ErrTruncated, HeaderSize, len(data))
	}
	h := &Header{
		Reserved: binary.LittleEndian.Uint16(data[0:2]),
		Type:     binary.LittleEndian.Uint16(data[2:4]),
		Count:    binary.LittleEndian.Uint16(data[4:6]),
	}
	if h.Reserved != 0 {
		return nil, fmt.Errorf("%w: reserved = %d", iconerrors.ErrInvalidHeader, h.Reserved)
	}
	if h.Type != TypeIcon {
		return nil, fmt.Errorf("%w: type = %d, want %d", iconerrors.ErrInvalidHeader, h.Type, TypeIcon)
	}
	return h, nil
}

// DirEntry is the 16-byte ICONDIRENTRY record.
type DirEntry struct {
	WidthByte    uint8  // Width in pixels, 0 means 256
	HeightByte   uint8  // Height in pixels, 0 means 256
	ColorCount   uint8  // 0 for true color
	Reserved     uint8  // Must be 0
	Planes       uint16 // Color planes
	BitsPerPixel uint16 // Bits per pixel
	DataSize     uint32 // Payload length
	DataOffset   uint32 // Payload offset from start of file
}

// NewDirEntry builds the entry for a square image of size pixels.
func NewDirEntry(size int, dataSize, dataOffset uint32) DirEntry {
	return DirEntry{
		WidthByte:    encodeDimension(size),
		HeightByte:   encodeDimension(size),
		Planes:       Planes,
		BitsPerPixel: BitsPerPixel,
		DataSize:     dataSize,
		DataOffset:   dataOffset,
	}
}

func encodeDimension(v int) uint8 {
	if v == MaxSize {
		return 0
	}
	return uint8(v)
}

func decodeDimension(b uint8) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}

// Width returns the pixel width, mapping 0 back to 256.
func (e DirEntry) Width() int { return decodeDimension(e.WidthByte) }

// Height returns the pixel height, mapping 0 back to 256.
func (e DirEntry) Height() int { return decodeDimension(e.HeightByte) }

// Pack serializes the entry to exactly 16 bytes
func (e *DirEntry) Pack() []byte {
	buf := make([]byte, DirEntrySize)
	buf[0] = e.WidthByte
	buf[1] = e.HeightByte
	buf[2] = e.ColorCount
	buf[3] = e.Reserved
	binary.LittleEndian.PutUint16(buf[4:6], e.Planes)
	binary.LittleEndian.PutUint16(buf[6:8], e.BitsPerPixel)
	binary.LittleEndian.PutUint32(buf[8:12], e.DataSize)
	binary.LittleEndian.PutUint32(buf[12:16], e.DataOffset)
	return buf
}

// UnpackDirEntry deserializes an entry from 16 bytes
func UnpackDirEntry(data []byte) (*DirEntry, error) {
	if len(data) != DirEntrySize {
		return nil, fmt.Errorf("invalid directory entry size: expected %d, got %d", DirEntrySize, len(data))
	}
	return &DirEntry{
		WidthByte:    data[0],
		HeightByte:   data[1],
		ColorCount:   data[2],
		Reserved:     data[3],
		Planes:       binary.LittleEndian.Uint16(data[4:6]),
		BitsPerPixel: binary.LittleEndian.Uint16(data[6:8]),
		DataSize:     binary.LittleEndian.Uint32(data[8:12]),
		DataOffset:   binary.LittleEndian.Uint32(data[12:16]),
	}, nil
}
