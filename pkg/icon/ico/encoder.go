package ico

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	iconerrors "github.com/provide-io/svgicon/pkg/icon/errors"
	"github.com/provide-io/svgicon/pkg/icon/layout"
	"github.com/provide-io/svgicon/pkg/icon/raster"
)

// Encoder builds ICO containers from a raster source.
type Encoder struct {
	logger hclog.Logger
}

// NewEncoder creates an encoder that logs to logger (nil discards).
func NewEncoder(logger hclog.Logger) *Encoder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Encoder{logger: logger}
}

// Encode builds an ICO with a default, silent encoder.
func Encode(src raster.Source, sizes []int) ([]byte, error) {
	return NewEncoder(nil).Encode(src, sizes)
}

// Write encodes the whole container before touching w, so a failed
// rasterization never leaves partial output behind.
func Write(w io.Writer, src raster.Source, sizes []int) error {
	data, err := Encode(src, sizes)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing ICO: %w", err)
	}
	return nil
}

// Encode rasterizes one PNG per size, in order, and lays them out behind the
// header and directory. Empty sizes selects DefaultSizes. Duplicate sizes are
// encoded as separate entries.
func (e *Encoder) Encode(src raster.Source, sizes []int) ([]byte, error) {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	if len(sizes) > MaxImages {
		return nil, fmt.Errorf("%w: %d images exceeds the ICO limit of %d", iconerrors.ErrInvalidSize, len(sizes), MaxImages)
	}
	if err := layout.ValidateSizes(sizes, MaxSize); err != nil {
		return nil, err
	}

	e.logger.Debug("🎨 Rasterizing ICO images", "sizes", sizes)

	payloads := make([][]byte, len(sizes))
	for i, size := range sizes {
		data, err := src.Rasterize(size, size)
		if err != nil {
			e.logger.Error("❌ Rasterization failed", "size", size, "error", err)
			return nil, iconerrors.Rasterization(size, size, err)
		}
		e.logger.Trace("Rasterized image", "index", i, "size", size, "bytes", len(data))
		payloads[i] = data
	}

	base := HeaderSize + DirEntrySize*len(sizes)
	offsets, total, err := layout.Offsets(base, payloads)
	if err != nil {
		return nil, err
	}

	header := Header{Type: TypeIcon, Count: uint16(len(sizes))}
	parts := make([][]byte, 0, 1+2*len(sizes))
	parts = append(parts, header.Pack())
	for i, size := range sizes {
		entry := NewDirEntry(size, uint32(len(payloads[i])), offsets[i])
		parts = append(parts, entry.Pack())
	}
	parts = append(parts, payloads...)

	out := layout.Concat(total, parts...)

	e.logger.Info("✅ Encoded ICO", "images", len(sizes), "bytes", len(out))
	return out, nil
}
