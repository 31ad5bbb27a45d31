package ico

import (
	"fmt"
	"sort"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
)

// File is a decoded ICO container. Images[i] is the payload of Entries[i]
// and aliases the parsed buffer.
type File struct {
	Header  Header
	Entries []DirEntry
	Images  [][]byte
}

// Parse decodes data and checks that every entry points at its own in-bounds,
// non-overlapping payload.
func Parse(data []byte) (*File, error) {
	header, err := UnpackHeader(data)
	if err != nil {
		return nil, err
	}

	count := int(header.Count)
	dirEnd := HeaderSize + DirEntrySize*count
	if len(data) < dirEnd {
		return nil, fmt.Errorf("%w: directory of %d entries needs %d bytes, got %d",
			iconerrors.ErrTruncated, count, dirEnd, len(data))
	}

	f := &File{
		Header:  *header,
		Entries: make([]DirEntry, count),
		Images:  make([][]byte, count),
	}

	for i := 0; i < count; i++ {
		start := HeaderSize + DirEntrySize*i
		entry, err := UnpackDirEntry(data[start : start+DirEntrySize])
		if err != nil {
			return nil, err
		}

		begin := int64(entry.DataOffset)
		end := begin + int64(entry.DataSize)
		if begin < int64(dirEnd) || end > int64(len(data)) {
			return nil, fmt.Errorf("%w: entry %d spans [%d,%d) outside [%d,%d)",
				iconerrors.ErrOffsetOutOfRange, i, begin, end, dirEnd, len(data))
		}

		f.Entries[i] = *entry
		f.Images[i] = data[begin:end]
	}

	if err := checkOverlap(f.Entries); err != nil {
		return nil, err
	}
	return f, nil
}

func checkOverlap(entries []DirEntry) error {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return entries[order[a]].DataOffset < entries[order[b]].DataOffset
	})

	for k := 1; k < len(order); k++ {
		prev, cur := entries[order[k-1]], entries[order[k]]
		if int64(prev.DataOffset)+int64(prev.DataSize) > int64(cur.DataOffset) {
			return fmt.Errorf("%w: entries %d and %d", iconerrors.ErrOverlap, order[k-1], order[k])
		}
	}
	return nil
}
